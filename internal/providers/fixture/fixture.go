package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/teams"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
)

// Fixture game ids. The live game advances on every LiveScores call until it goes final.
const (
	FinalGameID    = "1001"
	LiveGameID     = "1002"
	UpcomingGameID = "1003"

	liveTicksToFinal = 12
)

var (
	celtics  = teams.Team{ID: 2, Abbreviation: "BOS", Name: "Celtics", FullName: "Boston Celtics", City: "Boston"}
	lakers   = teams.Team{ID: 14, Abbreviation: "LAL", Name: "Lakers", FullName: "Los Angeles Lakers", City: "Los Angeles"}
	warriors = teams.Team{ID: 10, Abbreviation: "GSW", Name: "Warriors", FullName: "Golden State Warriors", City: "Golden State"}
	heat     = teams.Team{ID: 16, Abbreviation: "MIA", Name: "Heat", FullName: "Miami Heat", City: "Miami"}
	knicks   = teams.Team{ID: 20, Abbreviation: "NYK", Name: "Knicks", FullName: "New York Knicks", City: "New York"}
	bulls    = teams.Team{ID: 5, Abbreviation: "CHI", Name: "Bulls", FullName: "Chicago Bulls", City: "Chicago"}
)

// Provider serves a deterministic slate for offline use: one final, one live and one upcoming game.
type Provider struct {
	now func() time.Time

	mu    sync.Mutex
	ticks int
}

var _ providers.API = (*Provider)(nil)

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// Games returns the fixture slate for date; an empty or invalid date means today (UTC).
func (p *Provider) Games(ctx context.Context, date string) ([]games.Game, error) {
	_ = ctx
	return p.slate(p.resolveDate(date)), nil
}

// Game returns one fixture game, or nil for an unknown id.
func (p *Provider) Game(ctx context.Context, id, date string) (*games.Game, error) {
	_ = ctx
	for _, g := range p.slate(p.resolveDate(date)) {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, nil
}

// BoxScore returns two rows per team for known games and nothing otherwise.
func (p *Provider) BoxScore(ctx context.Context, id string) ([]players.StatLine, error) {
	_ = ctx
	var home, visitor teams.Team
	switch id {
	case FinalGameID:
		home, visitor = celtics, lakers
	case LiveGameID:
		home, visitor = warriors, heat
	default:
		return []players.StatLine{}, nil
	}
	return []players.StatLine{
		statLine(101, "Alex", "Guard", visitor, 12, 0.417),
		statLine(102, "Blake", "Forward", home, 27, 0.556),
		statLine(103, "", "Center", home, 9, 0.5),
		{Player: players.Player{ID: 104, FirstName: "Dana"}, Team: visitor},
	}, nil
}

// LiveScores advances the live game one step and returns the snapshot for all of today's games.
func (p *Provider) LiveScores(ctx context.Context) ([]games.LiveScore, error) {
	_ = ctx
	p.mu.Lock()
	p.ticks++
	p.mu.Unlock()

	slate := p.slate(p.resolveDate(""))
	out := make([]games.LiveScore, 0, len(slate))
	for _, g := range slate {
		out = append(out, games.LiveScore{
			ID:               g.ID,
			HomeTeamScore:    g.HomeTeamScore,
			VisitorTeamScore: g.VisitorTeamScore,
			Status:           g.Status,
			Period:           g.Period,
		})
	}
	return out, nil
}

// WinProbability derives a stable pair from the team ids.
func (p *Provider) WinProbability(ctx context.Context, homeTeamID, visitorTeamID int) (games.WinProbability, error) {
	_ = ctx
	if homeTeamID <= 0 || visitorTeamID <= 0 {
		return games.WinProbability{}, fmt.Errorf("fixture: team ids required")
	}
	edge := float64((homeTeamID*7+visitorTeamID*3)%21-10) / 100
	return games.WinProbability{Home: 0.55 + edge, Visitor: 0.45 - edge}, nil
}

func (p *Provider) resolveDate(date string) string {
	if timeutil.IsDate(date) {
		return date
	}
	return timeutil.FormatDate(p.now().UTC())
}

func (p *Provider) slate(date string) []games.Game {
	p.mu.Lock()
	ticks := p.ticks
	p.mu.Unlock()

	final := games.Game{
		ID:               FinalGameID,
		Date:             date,
		Datetime:         date + "T00:00:00Z",
		Status:           "Final",
		Period:           4,
		HomeTeam:         celtics,
		VisitorTeam:      lakers,
		HomeTeamScore:    games.Score(114),
		VisitorTeamScore: games.Score(105),
		PeriodScores: []games.PeriodScore{
			{PeriodName: "Q1", HomeScore: games.Score(30), VisitorScore: games.Score(24)},
			{PeriodName: "Q2", HomeScore: games.Score(28), VisitorScore: games.Score(27)},
			{PeriodName: "Q3", HomeScore: games.Score(26), VisitorScore: games.Score(31)},
			{PeriodName: "Q4", HomeScore: games.Score(30), VisitorScore: games.Score(23)},
			{PeriodName: "OT1", HomeScore: games.Score(0), VisitorScore: games.Score(0)},
		},
	}

	live := liveGame(date, ticks)

	upcoming := games.Game{
		ID:          UpcomingGameID,
		Date:        date,
		Datetime:    date + "T23:30:00Z",
		Status:      "7:30 PM ET",
		HomeTeam:    knicks,
		VisitorTeam: bulls,
	}

	return []games.Game{final, live, upcoming}
}

func liveGame(date string, ticks int) games.Game {
	period := 1 + ticks/3
	status := fmt.Sprintf("Q%d %d:00", min(period, 4), 12-(ticks%3)*4)
	if ticks >= liveTicksToFinal {
		period = 4
		status = "Final"
	}
	return games.Game{
		ID:               LiveGameID,
		Date:             date,
		Datetime:         date + "T19:00:00Z",
		Status:           status,
		Period:           min(period, 4),
		HomeTeam:         warriors,
		VisitorTeam:      heat,
		HomeTeamScore:    games.Score(10 + 5*ticks),
		VisitorTeamScore: games.Score(8 + 4*ticks + ticks%2),
	}
}

func statLine(id int, first, last string, team teams.Team, pts int, pct float64) players.StatLine {
	return players.StatLine{
		Player: players.Player{ID: id, FirstName: first, LastName: last},
		Team:   team,
		Min:    "30:00",
		Pts:    games.Score(pts),
		Reb:    games.Score(pts / 3),
		Ast:    games.Score(pts / 4),
		Fgm:    games.Score(pts / 2),
		Fga:    games.Score(pts),
		FgPct:  &pct,
	}
}

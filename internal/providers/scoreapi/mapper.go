package scoreapi

import (
	"strings"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/teams"
)

func mapGames(in []gameResponse) []games.Game {
	out := make([]games.Game, 0, len(in))
	for _, g := range in {
		out = append(out, mapGame(g))
	}
	return out
}

func mapGame(g gameResponse) games.Game {
	return games.Game{
		ID:               string(g.ID),
		Date:             trimDate(g.Date),
		Datetime:         strings.TrimSpace(g.Datetime),
		Status:           strings.TrimSpace(g.Status),
		Period:           g.Period,
		HomeTeam:         mapTeam(g.HomeTeam),
		VisitorTeam:      mapTeam(g.VisitorTeam),
		HomeTeamScore:    g.HomeTeamScore,
		VisitorTeamScore: g.VisitorTeamScore,
		PeriodScores:     mapPeriodScores(g.PeriodScores),
	}
}

func mapTeam(t teamResponse) teams.Team {
	return teams.Team{
		ID:           t.ID,
		Abbreviation: t.Abbreviation,
		Name:         t.Name,
		FullName:     t.FullName,
		City:         t.City,
	}
}

func mapPeriodScores(in []periodScoreResponse) []games.PeriodScore {
	if len(in) == 0 {
		return nil
	}
	out := make([]games.PeriodScore, 0, len(in))
	for _, p := range in {
		out = append(out, games.PeriodScore{
			PeriodName:   p.PeriodName,
			HomeScore:    p.HomeScore,
			VisitorScore: p.VisitorScore,
		})
	}
	return out
}

func mapLiveScores(in []liveScoreResponse) []games.LiveScore {
	out := make([]games.LiveScore, 0, len(in))
	for _, l := range in {
		if l.ID == "" {
			continue
		}
		out = append(out, games.LiveScore{
			ID:               string(l.ID),
			HomeTeamScore:    l.HomeTeamScore,
			VisitorTeamScore: l.VisitorTeamScore,
			Status:           strings.TrimSpace(l.Status),
			Period:           l.Period,
		})
	}
	return out
}

func mapStatLines(in []statLineResponse) []players.StatLine {
	out := make([]players.StatLine, 0, len(in))
	for _, s := range in {
		line := players.StatLine{
			Player: players.Player{
				ID:        s.Player.ID,
				FirstName: s.Player.FirstName,
				LastName:  s.Player.LastName,
			},
			Team:  mapTeam(s.Team),
			Pts:   s.Pts,
			Reb:   s.Reb,
			Ast:   s.Ast,
			Fgm:   s.Fgm,
			Fga:   s.Fga,
			FgPct: s.FgPct,
		}
		if s.Min != nil {
			line.Min = strings.TrimSpace(*s.Min)
		}
		out = append(out, line)
	}
	return out
}

// trimDate keeps the calendar part of "2024-01-15" or "2024-01-15T00:00:00Z".
func trimDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		return raw[:i]
	}
	return raw
}

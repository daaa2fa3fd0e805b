package testutil

import (
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/teams"
)

// Team returns a team fixture with the given id and abbreviation.
func Team(id int, abbr string) teams.Team {
	return teams.Team{ID: id, Abbreviation: abbr, Name: abbr + " Name", FullName: abbr + " Full Name", City: abbr + " City"}
}

// ScheduledGame returns a not-yet-started game between teams 1 (home, BOS) and 2 (visitor, LAL).
func ScheduledGame(id, datetime string) games.Game {
	date := datetime
	if len(date) > 10 {
		date = date[:10]
	}
	return games.Game{
		ID:          id,
		Date:        date,
		Datetime:    datetime,
		Status:      "7:30 PM ET",
		HomeTeam:    Team(1, "BOS"),
		VisitorTeam: Team(2, "LAL"),
	}
}

// LiveGame returns a game in progress with the given scores.
func LiveGame(id string, period, home, visitor int) games.Game {
	g := ScheduledGame(id, "2024-01-15T00:30:00Z")
	g.Status = "Q" + string(rune('0'+min(period, 4)))
	g.Period = period
	g.HomeTeamScore = games.Score(home)
	g.VisitorTeamScore = games.Score(visitor)
	return g
}

// FinalGame returns a finished game with the given scores and a regulation period table.
func FinalGame(id string, home, visitor int) games.Game {
	g := LiveGame(id, 4, home, visitor)
	g.Status = "Final"
	g.PeriodScores = []games.PeriodScore{
		{PeriodName: "Q1", HomeScore: games.Score(25), VisitorScore: games.Score(20)},
		{PeriodName: "Q2", HomeScore: games.Score(30), VisitorScore: games.Score(28)},
		{PeriodName: "Q3", HomeScore: games.Score(22), VisitorScore: games.Score(27)},
		{PeriodName: "Q4", HomeScore: games.Score(home - 77), VisitorScore: games.Score(visitor - 75)},
		{PeriodName: "OT1", HomeScore: games.Score(0), VisitorScore: games.Score(0)},
	}
	return g
}

// StatLine returns a box score row for the given player and team abbreviation.
func StatLine(playerID int, first, last, teamAbbr string, pts int) players.StatLine {
	return players.StatLine{
		Player: players.Player{ID: playerID, FirstName: first, LastName: last},
		Team:   teams.Team{Abbreviation: teamAbbr},
		Min:    "32:10",
		Pts:    games.Score(pts),
		Reb:    games.Score(5),
		Ast:    games.Score(4),
		Fgm:    games.Score(8),
		Fga:    games.Score(16),
	}
}

package players

import (
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/teams"
)

// Player identifies the athlete on a box score row.
type Player struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// StatLine is a single per-player box score row. Nil stats mean "not reported".
type StatLine struct {
	Player Player     `json:"player"`
	Team   teams.Team `json:"team"`
	Min    string     `json:"min"`
	Pts    *int       `json:"pts"`
	Reb    *int       `json:"reb"`
	Ast    *int       `json:"ast"`
	Fgm    *int       `json:"fgm"`
	Fga    *int       `json:"fga"`
	FgPct  *float64   `json:"fgPct"`
}

// Points returns pts, treating a missing value as -1 so unreported rows sort last.
func (s StatLine) Points() int {
	if s.Pts == nil {
		return -1
	}
	return *s.Pts
}

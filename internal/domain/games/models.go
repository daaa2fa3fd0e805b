package games

import (
	"strings"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/teams"
)

// PeriodScore is one quarter or overtime subtotal. Populated for completed games only.
type PeriodScore struct {
	PeriodName   string `json:"periodName"`
	HomeScore    *int   `json:"homeScore"`
	VisitorScore *int   `json:"visitorScore"`
}

// Game is the canonical game record as received from the scoreboard API.
// Values are treated as read-only snapshots; updates produce copies.
type Game struct {
	ID               string        `json:"id"`
	Date             string        `json:"date"`
	Datetime         string        `json:"datetime"`
	Status           string        `json:"status"`
	Period           int           `json:"period"`
	HomeTeam         teams.Team    `json:"homeTeam"`
	VisitorTeam      teams.Team    `json:"visitorTeam"`
	HomeTeamScore    *int          `json:"homeTeamScore"`
	VisitorTeamScore *int          `json:"visitorTeamScore"`
	PeriodScores     []PeriodScore `json:"periodScores,omitempty"`
}

// CalendarDate returns the game's own YYYY-MM-DD date, dropping any time suffix.
func (g Game) CalendarDate() string {
	date, _, _ := strings.Cut(strings.TrimSpace(g.Date), "T")
	return date
}

// HasTeamIDs reports whether both team ids are known.
func (g Game) HasTeamIDs() bool {
	return g.HomeTeam.ID != 0 && g.VisitorTeam.ID != 0
}

// LiveScore is the partial game carried by the live-scores snapshot.
type LiveScore struct {
	ID               string `json:"id"`
	HomeTeamScore    *int   `json:"homeTeamScore"`
	VisitorTeamScore *int   `json:"visitorTeamScore"`
	Status           string `json:"status"`
	Period           int    `json:"period"`
}

// WinProbability is the upstream prediction for a matchup. Values are rendered
// independently and are not required to sum to 1.
type WinProbability struct {
	Home    float64 `json:"homeWinProbability"`
	Visitor float64 `json:"visitorWinProbability"`
}

// Score returns a pointer to v; handy for building nullable scores.
func Score(v int) *int {
	return &v
}

// SameScore compares two nullable scores.
func SameScore(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

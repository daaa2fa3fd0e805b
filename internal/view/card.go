// Package view derives render-ready models from game records. Each builder
// reads one game value once, so every field of a model agrees with the same
// classification.
package view

import (
	"strconv"
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/teams"
	"github.com/preston-bernstein/nba-scoreboard/internal/gamestatus"
)

// Placeholder is rendered wherever a value is missing.
const Placeholder = "-"

// Side is one team's half of a card.
type Side struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Logo     string `json:"logo,omitempty"`
	Score    string `json:"score"`
	Winner   bool   `json:"winner"`
	Dimmed   bool   `json:"dimmed"`
}

// Card is the list entry for a single game. Prediction is only filled by
// list surfaces that run a per-card prediction set.
type Card struct {
	ID         string                    `json:"id"`
	Date       string                    `json:"date"`
	Status     gamestatus.Classification `json:"status"`
	Label      string                    `json:"label"`
	Home       Side                      `json:"home"`
	Visitor    Side                      `json:"visitor"`
	ShowScores bool                      `json:"showScores"`
	Upcoming   bool                      `json:"upcoming"`
	Prediction *Prediction               `json:"prediction,omitempty"`
}

// NewCard classifies g against now and fills both sides.
func NewCard(g games.Game, now time.Time, loc *time.Location) Card {
	c := gamestatus.Classify(g, now, loc)
	winner := gamestatus.DecideWinner(g, c)
	show := gamestatus.ShowScores(c)

	return Card{
		ID:         g.ID,
		Date:       g.CalendarDate(),
		Status:     c,
		Label:      c.ShortLabel(),
		Home:       side(g.HomeTeam, g.HomeTeamScore, gamestatus.SideHome, winner, c, show),
		Visitor:    side(g.VisitorTeam, g.VisitorTeamScore, gamestatus.SideVisitor, winner, c, show),
		ShowScores: show,
		Upcoming:   gamestatus.Upcoming(g),
	}
}

// Cards builds a card per game, preserving order.
func Cards(list []games.Game, now time.Time, loc *time.Location) []Card {
	out := make([]Card, 0, len(list))
	for _, g := range list {
		out = append(out, NewCard(g, now, loc))
	}
	return out
}

func side(t teams.Team, score *int, which, winner gamestatus.Side, c gamestatus.Classification, show bool) Side {
	s := Side{
		Name:     t.DisplayName(),
		FullName: t.HeaderName(),
		Logo:     t.LogoPath(),
		Score:    Placeholder,
		Winner:   winner != gamestatus.SideNone && which == winner,
		Dimmed:   gamestatus.Dimmed(which, winner, c),
	}
	if s.FullName == "" {
		s.FullName = s.Name
	}
	if show {
		s.Score = intOrPlaceholder(score)
	}
	return s
}

func intOrPlaceholder(v *int) string {
	if v == nil {
		return Placeholder
	}
	return strconv.Itoa(*v)
}

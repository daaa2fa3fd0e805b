package view

import (
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/app/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/gamestatus"
)

// Prediction is the formatted win probability pair.
type Prediction struct {
	Home    string `json:"home"`
	Visitor string `json:"visitor"`
}

// Detail is the full single-game view.
type Detail struct {
	Card       Card        `json:"card"`
	Header     string      `json:"header"`
	ScoreLine  string      `json:"scoreLine,omitempty"`
	StatusText string      `json:"statusText,omitempty"`
	Periods    []PeriodRow `json:"periods,omitempty"`
	Visitor    []PlayerRow `json:"visitor"`
	Home       []PlayerRow `json:"home"`
	Prediction *Prediction `json:"prediction,omitempty"`
}

// NewDetail assembles the detail view. A nil prediction, or one offered for a
// game that is no longer upcoming, is left out.
func NewDetail(g games.Game, box players.BoxScore, pred *games.WinProbability, now time.Time, loc *time.Location) Detail {
	card := NewCard(g, now, loc)
	d := Detail{
		Card:    card,
		Header:  card.Visitor.FullName + " @ " + card.Home.FullName,
		Periods: PeriodTable(g, card.Status),
		Visitor: PlayerRows(box.Visitor),
		Home:    PlayerRows(box.Home),
	}
	if card.ShowScores {
		d.ScoreLine = card.Visitor.Score + " - " + card.Home.Score
		if card.Status.IsFinal() {
			d.ScoreLine += " " + gamestatus.LabelFinal
		}
	} else {
		d.StatusText = g.Status
		if d.StatusText == "" {
			d.StatusText = card.Status.Label
		}
	}
	if pred != nil && card.Upcoming {
		d.Prediction = FormatPrediction(*pred)
	}
	return d
}

// FormatPrediction renders each side independently.
func FormatPrediction(p games.WinProbability) *Prediction {
	home, visitor := p.Home, p.Visitor
	return &Prediction{Home: Percent(&home), Visitor: Percent(&visitor)}
}

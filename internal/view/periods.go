package view

import (
	"strings"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/gamestatus"
)

// PeriodRow is one column of the quarter table.
type PeriodRow struct {
	Name    string `json:"name"`
	Home    string `json:"home"`
	Visitor string `json:"visitor"`
}

// PeriodTable returns the per-period subtotals of a Final game. Quarters are
// always kept; an overtime is kept only when either side scored in it. Any
// other game yields nil.
func PeriodTable(g games.Game, c gamestatus.Classification) []PeriodRow {
	if !c.IsFinal() || len(g.PeriodScores) == 0 {
		return nil
	}
	rows := make([]PeriodRow, 0, len(g.PeriodScores))
	for _, p := range g.PeriodScores {
		name := strings.TrimSpace(p.PeriodName)
		upper := strings.ToUpper(name)
		switch {
		case strings.HasPrefix(upper, "Q"):
		case strings.HasPrefix(upper, "OT"):
			if !scored(p.HomeScore) && !scored(p.VisitorScore) {
				continue
			}
		default:
			continue
		}
		rows = append(rows, PeriodRow{
			Name:    name,
			Home:    intOrPlaceholder(p.HomeScore),
			Visitor: intOrPlaceholder(p.VisitorScore),
		})
	}
	return rows
}

func scored(v *int) bool {
	return v != nil && *v > 0
}

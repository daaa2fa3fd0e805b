package poller

import (
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/gamestatus"
)

// ShouldPoll reports whether live polling is worthwhile: the board shows today
// and at least one game has not finished.
func ShouldPoll(selectedDate, today string, board []*games.Game) bool {
	if selectedDate == "" || selectedDate != today {
		return false
	}
	for _, g := range board {
		if g != nil && !gamestatus.IsFinalStatus(g.Status) {
			return true
		}
	}
	return false
}

// Merge folds a live snapshot into board. Entries whose scores, status or
// period changed are replaced by updated copies; every other pointer is
// reused. When nothing changed, board itself is returned with false.
func Merge(board []*games.Game, snapshot []games.LiveScore) ([]*games.Game, bool) {
	next, changed := merge(board, snapshot)
	return next, changed > 0
}

func merge(board []*games.Game, snapshot []games.LiveScore) ([]*games.Game, int) {
	if len(board) == 0 || len(snapshot) == 0 {
		return board, 0
	}

	byID := make(map[string]games.LiveScore, len(snapshot))
	for _, live := range snapshot {
		if live.ID != "" {
			byID[live.ID] = live
		}
	}

	var next []*games.Game
	changed := 0
	for i, g := range board {
		if g == nil {
			continue
		}
		live, ok := byID[g.ID]
		if !ok || !differs(g, live) {
			continue
		}
		if next == nil {
			next = make([]*games.Game, len(board))
			copy(next, board)
		}
		updated := *g
		updated.HomeTeamScore = live.HomeTeamScore
		updated.VisitorTeamScore = live.VisitorTeamScore
		updated.Status = live.Status
		updated.Period = live.Period
		next[i] = &updated
		changed++
	}
	if changed == 0 {
		return board, 0
	}
	return next, changed
}

func differs(g *games.Game, live games.LiveScore) bool {
	return !games.SameScore(g.HomeTeamScore, live.HomeTeamScore) ||
		!games.SameScore(g.VisitorTeamScore, live.VisitorTeamScore) ||
		g.Status != live.Status ||
		g.Period != live.Period
}

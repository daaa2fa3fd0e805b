package poller

import (
	"testing"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/testutil"
)

func board(gs ...games.Game) []*games.Game {
	out := make([]*games.Game, len(gs))
	for i := range gs {
		g := gs[i]
		out[i] = &g
	}
	return out
}

func TestMergeUnrelatedSnapshotKeepsSameSlice(t *testing.T) {
	prev := board(testutil.LiveGame("a", 2, 50, 48), testutil.FinalGame("b", 110, 100))
	snapshot := []games.LiveScore{{ID: "zzz", HomeTeamScore: games.Score(1), Status: "Q1", Period: 1}}

	next, changed := Merge(prev, snapshot)
	if changed {
		t.Fatalf("expected no change")
	}
	if len(next) != len(prev) || &next[0] != &prev[0] {
		t.Fatalf("expected the very same slice back")
	}
}

func TestMergeIdenticalSnapshotIsNoChange(t *testing.T) {
	prev := board(testutil.LiveGame("a", 2, 50, 48))
	g := prev[0]
	snapshot := []games.LiveScore{{ID: "a", HomeTeamScore: games.Score(50), VisitorTeamScore: games.Score(48), Status: g.Status, Period: 2}}

	next, changed := Merge(prev, snapshot)
	if changed || next[0] != g {
		t.Fatalf("expected identical snapshot to be a no-op")
	}
}

func TestMergeChangedEntryTouchesOnlyFourFields(t *testing.T) {
	live := testutil.LiveGame("a", 2, 50, 48)
	live.PeriodScores = []games.PeriodScore{{PeriodName: "Q1", HomeScore: games.Score(25)}}
	other := testutil.ScheduledGame("b", "2024-01-15T23:30:00Z")
	prev := board(live, other)
	origA := prev[0]

	snapshot := []games.LiveScore{{ID: "a", HomeTeamScore: games.Score(53), VisitorTeamScore: games.Score(48), Status: "Q3 11:40", Period: 3}}
	next, changed := Merge(prev, snapshot)
	if !changed {
		t.Fatalf("expected change")
	}
	if &next[0] == &prev[0] {
		t.Fatalf("expected a new slice when something changed")
	}
	if next[1] != prev[1] {
		t.Fatalf("expected unchanged entry pointer reused")
	}
	if next[0] == origA {
		t.Fatalf("expected changed entry to be a new value")
	}

	got := next[0]
	if *got.HomeTeamScore != 53 || got.Status != "Q3 11:40" || got.Period != 3 {
		t.Fatalf("expected merged fields, got %+v", got)
	}
	if got.ID != origA.ID || got.Datetime != origA.Datetime || got.HomeTeam != origA.HomeTeam || len(got.PeriodScores) != 1 {
		t.Fatalf("expected untouched fields preserved, got %+v", got)
	}
	if *origA.HomeTeamScore != 50 || origA.Period != 2 {
		t.Fatalf("expected previous value not mutated, got %+v", origA)
	}
}

func TestMergeNullScoreCountsAsChange(t *testing.T) {
	prev := board(testutil.LiveGame("a", 1, 2, 0))
	snapshot := []games.LiveScore{{ID: "a", HomeTeamScore: nil, VisitorTeamScore: games.Score(0), Status: prev[0].Status, Period: 1}}

	next, changed := Merge(prev, snapshot)
	if !changed || next[0].HomeTeamScore != nil {
		t.Fatalf("expected nil score to replace a value, got %+v", next[0])
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	prev := board(testutil.LiveGame("a", 1, 2, 0))
	if next, changed := Merge(prev, nil); changed || &next[0] != &prev[0] {
		t.Fatalf("expected nil snapshot to be a no-op")
	}
	if next, changed := Merge(nil, []games.LiveScore{{ID: "a"}}); changed || next != nil {
		t.Fatalf("expected empty board to stay empty")
	}
}

func TestShouldPoll(t *testing.T) {
	live := board(testutil.LiveGame("a", 1, 2, 0), testutil.FinalGame("b", 100, 90))
	allFinal := board(testutil.FinalGame("b", 100, 90))

	cases := []struct {
		name     string
		selected string
		board    []*games.Game
		want     bool
	}{
		{"today with live game", "2024-01-15", live, true},
		{"other day", "2024-01-14", live, false},
		{"all final", "2024-01-15", allFinal, false},
		{"empty board", "2024-01-15", nil, false},
		{"no selection", "", live, false},
	}
	for _, tc := range cases {
		if got := ShouldPoll(tc.selected, "2024-01-15", tc.board); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

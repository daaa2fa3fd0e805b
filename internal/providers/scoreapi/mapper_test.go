package scoreapi

import (
	"encoding/json"
	"testing"
)

func TestFlexIDAcceptsNumbersAndStrings(t *testing.T) {
	cases := map[string]flexID{
		`12`:           "12",
		`"0022300001"`: "0022300001",
		`" 5 "`:        "5",
		`null`:         "",
	}
	for raw, want := range cases {
		var got flexID
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if got != want {
			t.Fatalf("raw %s: expected %q, got %q", raw, want, got)
		}
	}

	var bad flexID
	if err := json.Unmarshal([]byte(`{}`), &bad); err == nil {
		t.Fatalf("expected error for object id")
	}
}

func TestTrimDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-15":           "2024-01-15",
		"2024-01-15T00:00:00Z": "2024-01-15",
		" 2024-01-15 ":         "2024-01-15",
		"":                     "",
	}
	for in, want := range cases {
		if got := trimDate(in); got != want {
			t.Fatalf("trimDate(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestMapStatLinesKeepsNulls(t *testing.T) {
	var rows []statLineResponse
	body := `[
		{"player": {"id": 1, "first_name": "Jayson", "last_name": "Tatum"}, "team": {"abbreviation": "BOS"},
		 "min": "36:12", "pts": 31, "reb": null, "ast": 5, "fgm": 11, "fga": 20, "fg_pct": 0.55},
		{"player": {"id": 2, "first_name": "", "last_name": ""}, "team": {"abbreviation": "LAL"}, "min": null}
	]`
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := mapStatLines(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Player.LastName != "Tatum" || got[0].Team.Abbreviation != "BOS" || got[0].Min != "36:12" {
		t.Fatalf("unexpected first row %+v", got[0])
	}
	if got[0].Reb != nil || *got[0].FgPct != 0.55 {
		t.Fatalf("expected null reb and fg_pct kept")
	}
	if got[1].Min != "" || got[1].Pts != nil {
		t.Fatalf("expected empty second row, got %+v", got[1])
	}
}

func TestMapPeriodScoresEmptyIsNil(t *testing.T) {
	if got := mapPeriodScores(nil); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

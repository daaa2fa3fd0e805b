package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func testViper(t *testing.T, values map[string]string) *viper.Viper {
	t.Helper()
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestBoolOrDefault(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"no", true, false},
		{"0", true, false},
		{"maybe", true, true},
	}
	for _, tc := range cases {
		v := testViper(t, map[string]string{"flag": tc.raw})
		if got := boolOrDefault(v, "flag", tc.def); got != tc.want {
			t.Fatalf("raw %q default %v: expected %v, got %v", tc.raw, tc.def, tc.want, got)
		}
	}
}

func TestIntOrDefault(t *testing.T) {
	if got := intOrDefault(testViper(t, map[string]string{"n": "12"}), "n", 3); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := intOrDefault(testViper(t, map[string]string{"n": "-1"}), "n", 3); got != 3 {
		t.Fatalf("expected fallback for negative, got %d", got)
	}
	if got := intOrDefault(testViper(t, map[string]string{"n": "x"}), "n", 3); got != 3 {
		t.Fatalf("expected fallback for garbage, got %d", got)
	}
}

func TestDurationOrDefaultTrimsWhitespace(t *testing.T) {
	v := testViper(t, map[string]string{"d": "  2m "})
	if got := durationOrDefault(v, "d", time.Second); got != 2*time.Minute {
		t.Fatalf("expected 2m, got %s", got)
	}
}

func TestStringOrDefaultBlankFallsBack(t *testing.T) {
	v := testViper(t, map[string]string{"s": "   "})
	if got := stringOrDefault(v, "s", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestListOrDefaultDropsEmpty(t *testing.T) {
	v := testViper(t, map[string]string{"l": "a,, b ,"})
	got := listOrDefault(v, "l", "")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected list %v", got)
	}
}

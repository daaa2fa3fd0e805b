// Package gamestatus turns raw game records into display classifications.
// Everything here is a pure function of a single game value plus a clock reading,
// so a caller that snapshots the game once gets a consistent result for the render.
package gamestatus

import (
	"regexp"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
)

// Kind is the coarse lifecycle bucket of a game.
type Kind string

const (
	KindFinal     Kind = "final"
	KindLive      Kind = "live"
	KindScheduled Kind = "scheduled"
	KindUnknown   Kind = "unknown"
)

// Display literals.
const (
	LabelFinal      = "FINAL"
	LabelFinalShort = "FIN"
	LabelLive       = "LIVE"
	LabelToday      = "Today"
	LabelNA         = "N/A"
)

const (
	shortDateLayout = "02/01/06"
	clockLayout     = "15:04"
)

// Classification is the derived status of a game for one render pass.
type Classification struct {
	Kind      Kind   `json:"kind"`
	Label     string `json:"label"`
	DateLabel string `json:"dateLabel,omitempty"`
	TimeLabel string `json:"timeLabel,omitempty"`
	TimeKnown bool   `json:"timeKnown"`
}

// IsFinal reports whether the game has concluded.
func (c Classification) IsFinal() bool { return c.Kind == KindFinal }

// IsLive reports whether the game is in progress.
func (c Classification) IsLive() bool { return c.Kind == KindLive }

// ShortLabel is the compact card label (FIN instead of FINAL).
func (c Classification) ShortLabel() string {
	if c.Kind == KindFinal {
		return LabelFinalShort
	}
	return c.Label
}

var (
	liveToken = regexp.MustCompile(`(?i)\b(Q[1-4]|OT\d*|Halftime)\b`)
	clockText = regexp.MustCompile(`\d{1,2}:\d{2}|\b[AP]M\b`)

	// UTC midnight is what upstream sends when the tip-off time is not yet known.
	midnightPlaceholders = []string{"T00:00:00Z", "T00:00:00.000Z", "T00:00:00+00:00"}

	datetimeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
)

// IsFinalStatus reports whether status is a terminal marker ("Final", "F/OT", ...).
func IsFinalStatus(status string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	return s == "final" || strings.HasPrefix(s, "f/")
}

// Classify maps a game to its classification. Rule order matters: a game whose
// status already reads Final is Final even when period > 0.
func Classify(g games.Game, now time.Time, loc *time.Location) Classification {
	if loc == nil {
		loc = time.Local
	}
	status := strings.TrimSpace(g.Status)

	if IsFinalStatus(status) {
		return Classification{Kind: KindFinal, Label: LabelFinal}
	}

	token := liveToken.FindString(status)
	if g.Period > 0 || token != "" {
		return Classification{Kind: KindLive, Label: liveLabel(status, token)}
	}

	if c, ok := scheduled(g.Datetime, now, loc); ok {
		return c
	}

	label := status
	if label == "" {
		label = LabelNA
	}
	return Classification{Kind: KindUnknown, Label: label}
}

func liveLabel(status, token string) string {
	if status != "" && !clockText.MatchString(status) {
		return status
	}
	if token != "" {
		return token
	}
	return LabelLive
}

func scheduled(raw string, now time.Time, loc *time.Location) (Classification, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Classification{}, false
	}

	if isMidnightPlaceholder(raw) {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Classification{}, false
		}
		y, m, d := parsed.UTC().Date()
		day := time.Date(y, m, d, 12, 0, 0, 0, loc)
		dateLabel := dayLabel(day, now, loc)
		return Classification{Kind: KindScheduled, Label: dateLabel, DateLabel: dateLabel}, true
	}

	if day, err := time.ParseInLocation(timeutil.DateLayout, raw, loc); err == nil {
		dateLabel := dayLabel(day, now, loc)
		return Classification{Kind: KindScheduled, Label: dateLabel, DateLabel: dateLabel}, true
	}

	for _, layout := range datetimeLayouts {
		parsed, err := time.ParseInLocation(layout, raw, loc)
		if err != nil {
			continue
		}
		local := parsed.In(loc)
		dateLabel := dayLabel(local, now, loc)
		clock := local.Format(clockLayout)
		return Classification{
			Kind:      KindScheduled,
			Label:     dateLabel + " " + clock,
			DateLabel: dateLabel,
			TimeLabel: clock,
			TimeKnown: true,
		}, true
	}
	return Classification{}, false
}

func isMidnightPlaceholder(raw string) bool {
	for _, suffix := range midnightPlaceholders {
		if strings.HasSuffix(raw, suffix) {
			return true
		}
	}
	return false
}

func dayLabel(day, now time.Time, loc *time.Location) string {
	if timeutil.SameDay(day, now, loc) {
		return LabelToday
	}
	return day.In(loc).Format(shortDateLayout)
}

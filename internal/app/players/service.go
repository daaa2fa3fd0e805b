package players

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
)

// ErrMissingTeams is returned when either team abbreviation is unknown, since
// rows could not be split by side.
var ErrMissingTeams = errors.New("home and visitor abbreviations required")

// Source fetches raw box score rows.
type Source interface {
	BoxScore(ctx context.Context, gameID string) ([]players.StatLine, error)
}

// BoxScore holds per-side stat tables, each ordered by points descending.
type BoxScore struct {
	Visitor []players.StatLine `json:"visitor"`
	Home    []players.StatLine `json:"home"`
}

// Len returns the number of rows across both sides.
func (b BoxScore) Len() int {
	return len(b.Visitor) + len(b.Home)
}

// Service coordinates box score lookups.
type Service struct {
	source Source
}

// NewService constructs a Service with the provided Source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// BoxScore fetches the rows for gameID and splits them by team abbreviation.
// Rows for neither team are dropped.
func (s *Service) BoxScore(ctx context.Context, gameID, home, visitor string) (BoxScore, error) {
	home, visitor = strings.TrimSpace(home), strings.TrimSpace(visitor)
	if home == "" || visitor == "" {
		return BoxScore{}, ErrMissingTeams
	}
	rows, err := s.source.BoxScore(ctx, gameID)
	if err != nil {
		return BoxScore{}, fmt.Errorf("fetch box score for %s: %w", gameID, err)
	}
	return Split(rows, home, visitor), nil
}

// Split sorts rows by points (missing points count as -1) and partitions them.
func Split(rows []players.StatLine, home, visitor string) BoxScore {
	sorted := make([]players.StatLine, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points() > sorted[j].Points()
	})

	var out BoxScore
	for _, row := range sorted {
		switch abbr := row.Team.Abbreviation; {
		case strings.EqualFold(abbr, visitor):
			out.Visitor = append(out.Visitor, row)
		case strings.EqualFold(abbr, home):
			out.Home = append(out.Home, row)
		}
	}
	return out
}

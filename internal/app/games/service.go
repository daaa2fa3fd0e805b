package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/navigation"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
)

var (
	// ErrInvalidGameID is returned for an empty game id.
	ErrInvalidGameID = errors.New("invalid game id")
	// ErrGameNotFound is returned when the upstream does not know the game.
	ErrGameNotFound = errors.New("game not found")
)

// Source is the slice of the scoreboard API this service needs.
type Source interface {
	Games(ctx context.Context, date string) ([]domaingames.Game, error)
	Game(ctx context.Context, id, date string) (*domaingames.Game, error)
}

// Service loads boards and game details.
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService constructs a Service with the provided Source.
func NewService(source Source, logger *slog.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// Board returns the games on date ordered by start time; games without a
// parseable datetime go last in their upstream order.
func (s *Service) Board(ctx context.Context, date string) ([]domaingames.Game, error) {
	if !timeutil.IsDate(date) {
		return nil, fmt.Errorf("%w: %q", navigation.ErrInvalidDate, date)
	}
	list, err := s.source.Games(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetch games for %s: %w", date, err)
	}
	SortByStart(list)
	return list, nil
}

// LoadBoard fetches the board for the session's selected date and indexes
// each game's date for later detail lookups.
func (s *Service) LoadBoard(ctx context.Context, nav *navigation.State) (string, []domaingames.Game, error) {
	date := nav.SelectedDate()
	list, err := s.Board(ctx, date)
	if err != nil {
		return date, nil, err
	}
	if err := nav.RecordBoard(ctx, list); err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "game date index not updated",
			slog.String(logging.FieldDate, date), slog.Any("err", err))
	}
	return date, list, nil
}

// Detail fetches game id on the date the navigation context or the index
// knows it by.
func (s *Service) Detail(ctx context.Context, nav *navigation.State, id, navDate string) (domaingames.Game, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domaingames.Game{}, ErrInvalidGameID
	}
	date, err := nav.ResolveGameDate(ctx, id, navDate)
	if err != nil {
		return domaingames.Game{}, err
	}

	g, err := s.source.Game(ctx, id, date)
	if err != nil {
		return domaingames.Game{}, fmt.Errorf("fetch game %s: %w", id, err)
	}
	if g == nil {
		return domaingames.Game{}, fmt.Errorf("%w: %s on %s", ErrGameNotFound, id, date)
	}
	if g.Date == "" {
		g.Date = date
	}
	if err := nav.RecordGameDate(ctx, *g); err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "game date index not updated",
			slog.String(logging.FieldGameID, id), slog.Any("err", err))
	}
	return *g, nil
}

// SortByStart orders games by parsed datetime in place. Unparseable or empty
// datetimes sort last and ties keep their order.
func SortByStart(list []domaingames.Game) {
	keys := make([]time.Time, len(list))
	ok := make([]bool, len(list))
	for i, g := range list {
		keys[i], ok[i] = parseStart(g.Datetime)
	}
	idx := make([]int, len(list))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		switch {
		case ok[ia] && ok[ib]:
			return keys[ia].Before(keys[ib])
		default:
			return ok[ia] && !ok[ib]
		}
	})
	sorted := make([]domaingames.Game, len(list))
	for i, j := range idx {
		sorted[i] = list[j]
	}
	copy(list, sorted)
}

var startLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", timeutil.DateLayout}

func parseStart(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

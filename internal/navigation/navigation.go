// Package navigation holds the session-scoped selected date, the game id to
// date index that lets a detail view find its game, and the theme preference.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/store"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
)

const (
	keySelectedDate   = "selected_date"
	keyGameDatePrefix = "game_date:"
	keyTheme          = "theme"
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var (
	// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date: expected YYYY-MM-DD")
	// ErrGameDateUnknown means neither the caller nor the index knows the game's date.
	ErrGameDateUnknown = errors.New("game date unknown")
)

// State is one session's navigation state. Reads are served from memory;
// writes go through to the store.
type State struct {
	store  store.Store
	logger *slog.Logger

	mu           sync.RWMutex
	selectedDate string
	theme        string
}

// New rehydrates state from st. A missing or malformed stored date falls back
// to today in loc.
func New(ctx context.Context, st store.Store, now time.Time, loc *time.Location, logger *slog.Logger) *State {
	s := &State{store: st, logger: logger, theme: ThemeLight}

	s.selectedDate = timeutil.Today(now, loc)
	if stored, err := st.Get(ctx, keySelectedDate); err == nil {
		if timeutil.IsDate(stored) {
			s.selectedDate = stored
		} else {
			logging.Warn(logger, "ignoring malformed stored date", slog.String(logging.FieldDate, stored))
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		logging.Warn(logger, "session read failed", "err", err)
	}

	if stored, err := st.Get(ctx, keyTheme); err == nil && (stored == ThemeLight || stored == ThemeDark) {
		s.theme = stored
	}
	return s
}

// SelectedDate returns the date the board shows.
func (s *State) SelectedDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate
}

// SetSelectedDate validates and persists date. Invalid input leaves state unchanged.
func (s *State) SetSelectedDate(ctx context.Context, date string) error {
	if !timeutil.IsDate(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if err := s.store.Set(ctx, keySelectedDate, date); err != nil {
		return fmt.Errorf("persist selected date: %w", err)
	}
	s.mu.Lock()
	s.selectedDate = date
	s.mu.Unlock()
	return nil
}

// RecordGameDate indexes the game's calendar date, falling back to the
// selected date when the game carries none.
func (s *State) RecordGameDate(ctx context.Context, g games.Game) error {
	if g.ID == "" {
		return nil
	}
	date := g.CalendarDate()
	if !timeutil.IsDate(date) {
		date = s.SelectedDate()
	}
	if err := s.store.Set(ctx, keyGameDatePrefix+g.ID, date); err != nil {
		return fmt.Errorf("persist game date: %w", err)
	}
	return nil
}

// RecordBoard indexes every game on a freshly fetched board.
func (s *State) RecordBoard(ctx context.Context, board []games.Game) error {
	for _, g := range board {
		if err := s.RecordGameDate(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

// ResolveGameDate returns navDate when valid, else the indexed date for id.
// It never guesses today.
func (s *State) ResolveGameDate(ctx context.Context, id, navDate string) (string, error) {
	if timeutil.IsDate(navDate) {
		return navDate, nil
	}
	stored, err := s.store.Get(ctx, keyGameDatePrefix+id)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("%w: game %s", ErrGameDateUnknown, id)
	}
	if err != nil {
		return "", fmt.Errorf("read game date: %w", err)
	}
	if !timeutil.IsDate(stored) {
		return "", fmt.Errorf("%w: game %s", ErrGameDateUnknown, id)
	}
	return stored, nil
}

// Theme returns the current theme, light by default.
func (s *State) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips light and dark and persists the result.
func (s *State) ToggleTheme(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := ThemeDark
	if s.theme == ThemeDark {
		next = ThemeLight
	}
	if err := s.store.Set(ctx, keyTheme, next); err != nil {
		return s.theme, fmt.Errorf("persist theme: %w", err)
	}
	s.theme = next
	return next, nil
}

// Reset clears the session and returns to today in loc with the light theme.
func (s *State) Reset(ctx context.Context, now time.Time, loc *time.Location) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.mu.Lock()
	s.selectedDate = timeutil.Today(now, loc)
	s.theme = ThemeLight
	s.mu.Unlock()
	return nil
}

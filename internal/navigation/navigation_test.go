package navigation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/store"
)

var now = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

type failingStore struct{ store.Store }

func (failingStore) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (failingStore) Set(context.Context, string, string) error   { return errors.New("down") }

func TestNewDefaultsToToday(t *testing.T) {
	s := New(context.Background(), store.NewMemoryStore(), now, time.UTC, nil)
	if s.SelectedDate() != "2024-01-15" {
		t.Fatalf("expected today, got %s", s.SelectedDate())
	}
	if s.Theme() != ThemeLight {
		t.Fatalf("expected light theme default, got %s", s.Theme())
	}
}

func TestNewUsesLocationForToday(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	s := New(context.Background(), store.NewMemoryStore(), now, tokyo, nil)
	if s.SelectedDate() != "2024-01-16" {
		t.Fatalf("expected local calendar day, got %s", s.SelectedDate())
	}
}

func TestNewRehydratesValidStoredState(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	_ = st.Set(ctx, keySelectedDate, "2024-01-10")
	_ = st.Set(ctx, keyTheme, ThemeDark)

	s := New(ctx, st, now, time.UTC, nil)
	if s.SelectedDate() != "2024-01-10" || s.Theme() != ThemeDark {
		t.Fatalf("expected rehydrated state, got %s/%s", s.SelectedDate(), s.Theme())
	}
}

func TestNewIgnoresMalformedStoredDate(t *testing.T) {
	for _, bad := range []string{"2024-1-10", "yesterday", "2024-01-10T00:00:00Z", ""} {
		st := store.NewMemoryStore()
		_ = st.Set(context.Background(), keySelectedDate, bad)
		_ = st.Set(context.Background(), keyTheme, "purple")

		s := New(context.Background(), st, now, time.UTC, nil)
		if s.SelectedDate() != "2024-01-15" {
			t.Fatalf("stored %q: expected fallback to today, got %s", bad, s.SelectedDate())
		}
		if s.Theme() != ThemeLight {
			t.Fatalf("expected unknown theme ignored, got %s", s.Theme())
		}
	}
}

func TestNewSurvivesStoreFailure(t *testing.T) {
	s := New(context.Background(), failingStore{}, now, time.UTC, nil)
	if s.SelectedDate() != "2024-01-15" {
		t.Fatalf("expected today on store failure, got %s", s.SelectedDate())
	}
}

func TestSetSelectedDate(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	s := New(ctx, st, now, time.UTC, nil)

	if err := s.SetSelectedDate(ctx, "2024-02-01"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got, _ := st.Get(ctx, keySelectedDate); got != "2024-02-01" {
		t.Fatalf("expected persisted date, got %q", got)
	}

	err := s.SetSelectedDate(ctx, "02/01/2024")
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if s.SelectedDate() != "2024-02-01" {
		t.Fatalf("expected state unchanged after invalid input, got %s", s.SelectedDate())
	}
}

func TestSetSelectedDateStoreFailureLeavesState(t *testing.T) {
	s := New(context.Background(), failingStore{}, now, time.UTC, nil)
	if err := s.SetSelectedDate(context.Background(), "2024-02-01"); err == nil {
		t.Fatalf("expected persist error")
	}
	if s.SelectedDate() != "2024-01-15" {
		t.Fatalf("expected state unchanged, got %s", s.SelectedDate())
	}
}

func TestRecordAndResolveGameDate(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	s := New(ctx, st, now, time.UTC, nil)
	_ = s.SetSelectedDate(ctx, "2024-01-12")

	board := []games.Game{
		{ID: "a", Date: "2024-01-11T00:00:00Z"},
		{ID: "b"},
		{},
	}
	if err := s.RecordBoard(ctx, board); err != nil {
		t.Fatalf("record: %v", err)
	}

	if got, err := s.ResolveGameDate(ctx, "a", ""); err != nil || got != "2024-01-11" {
		t.Fatalf("expected game's own date, got %q %v", got, err)
	}
	if got, err := s.ResolveGameDate(ctx, "b", ""); err != nil || got != "2024-01-12" {
		t.Fatalf("expected selected-date fallback, got %q %v", got, err)
	}
	if got, err := s.ResolveGameDate(ctx, "a", "2024-01-20"); err != nil || got != "2024-01-20" {
		t.Fatalf("expected navigation date to win, got %q %v", got, err)
	}
	if _, err := s.ResolveGameDate(ctx, "zzz", "bogus"); !errors.Is(err, ErrGameDateUnknown) {
		t.Fatalf("expected ErrGameDateUnknown, got %v", err)
	}
}

func TestToggleThemePersists(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	s := New(ctx, st, now, time.UTC, nil)

	if got, err := s.ToggleTheme(ctx); err != nil || got != ThemeDark {
		t.Fatalf("expected dark, got %s %v", got, err)
	}
	if stored, _ := st.Get(ctx, keyTheme); stored != ThemeDark {
		t.Fatalf("expected persisted theme, got %q", stored)
	}
	if got, _ := s.ToggleTheme(ctx); got != ThemeLight {
		t.Fatalf("expected light, got %s", got)
	}
}

func TestToggleThemeStoreFailureKeepsTheme(t *testing.T) {
	s := New(context.Background(), failingStore{}, now, time.UTC, nil)
	if got, err := s.ToggleTheme(context.Background()); err == nil || got != ThemeLight {
		t.Fatalf("expected error and unchanged theme, got %s %v", got, err)
	}
}

func TestReset(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	s := New(ctx, st, now, time.UTC, nil)
	_ = s.SetSelectedDate(ctx, "2023-12-25")
	_, _ = s.ToggleTheme(ctx)

	if err := s.Reset(ctx, now, time.UTC); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.SelectedDate() != "2024-01-15" || s.Theme() != ThemeLight || st.Len() != 0 {
		t.Fatalf("expected clean state, got %s/%s len=%d", s.SelectedDate(), s.Theme(), st.Len())
	}
}

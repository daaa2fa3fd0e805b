package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
)

// StubAPI is a test double for providers.API. Func fields, when set, win over
// the canned results.
type StubAPI struct {
	GamesResult    []games.Game
	GamesErr       error
	GameResult     *games.Game
	GameErr        error
	BoxScoreResult []players.StatLine
	BoxScoreErr    error
	LiveResult     []games.LiveScore
	LiveErr        error
	Prediction     games.WinProbability
	PredictionErr  error

	LiveFunc       func(ctx context.Context) ([]games.LiveScore, error)
	PredictionFunc func(ctx context.Context, home, visitor int) (games.WinProbability, error)

	GamesCalls      atomic.Int32
	GameCalls       atomic.Int32
	BoxScoreCalls   atomic.Int32
	LiveCalls       atomic.Int32
	PredictionCalls atomic.Int32

	// Notify is closed on the first call of any kind.
	Notify     chan struct{}
	notifyOnce sync.Once

	mu        sync.Mutex
	lastDates []string
}

func (s *StubAPI) touch() {
	if s.Notify != nil {
		s.notifyOnce.Do(func() { close(s.Notify) })
	}
}

// Games returns the configured list and records the requested date.
func (s *StubAPI) Games(ctx context.Context, date string) ([]games.Game, error) {
	_ = ctx
	s.touch()
	s.GamesCalls.Add(1)
	s.mu.Lock()
	s.lastDates = append(s.lastDates, date)
	s.mu.Unlock()
	return s.GamesResult, s.GamesErr
}

// Game returns the configured game, or the list entry with a matching id.
func (s *StubAPI) Game(ctx context.Context, id, date string) (*games.Game, error) {
	_ = ctx
	s.touch()
	s.GameCalls.Add(1)
	s.mu.Lock()
	s.lastDates = append(s.lastDates, date)
	s.mu.Unlock()
	if s.GameErr != nil || s.GameResult != nil {
		return s.GameResult, s.GameErr
	}
	for i := range s.GamesResult {
		if s.GamesResult[i].ID == id {
			g := s.GamesResult[i]
			return &g, nil
		}
	}
	return nil, nil
}

// BoxScore returns the configured stat lines.
func (s *StubAPI) BoxScore(ctx context.Context, id string) ([]players.StatLine, error) {
	_ = ctx
	_ = id
	s.touch()
	s.BoxScoreCalls.Add(1)
	return s.BoxScoreResult, s.BoxScoreErr
}

// LiveScores returns the configured snapshot.
func (s *StubAPI) LiveScores(ctx context.Context) ([]games.LiveScore, error) {
	s.touch()
	s.LiveCalls.Add(1)
	if s.LiveFunc != nil {
		return s.LiveFunc(ctx)
	}
	return s.LiveResult, s.LiveErr
}

// WinProbability returns the configured prediction.
func (s *StubAPI) WinProbability(ctx context.Context, home, visitor int) (games.WinProbability, error) {
	s.touch()
	s.PredictionCalls.Add(1)
	if s.PredictionFunc != nil {
		return s.PredictionFunc(ctx, home, visitor)
	}
	return s.Prediction, s.PredictionErr
}

// Dates returns every date passed to Games or Game, in call order.
func (s *StubAPI) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lastDates...)
}

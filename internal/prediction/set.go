package prediction

import (
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
)

// Set runs one Gate per card on a board. A gate is created the first time
// its game becomes fetchable and closed when the game leaves the board.
type Set struct {
	parent   context.Context
	fetcher  providers.PredictionFetcher
	logger   *slog.Logger
	metrics  *metrics.Recorder
	onChange func(id string, s Snapshot)

	mu     sync.Mutex
	gates  map[string]*Gate
	closed bool
}

// NewSet returns an empty set whose fetches derive from ctx.
func NewSet(ctx context.Context, fetcher providers.PredictionFetcher, logger *slog.Logger, recorder *metrics.Recorder) *Set {
	return &Set{
		parent:  ctx,
		fetcher: fetcher,
		logger:  logger,
		metrics: recorder,
		gates:   make(map[string]*Gate),
	}
}

// OnChange registers a callback run when any card's fetch completes. Call
// before the first Sync.
func (s *Set) OnChange(fn func(id string, snap Snapshot)) {
	s.onChange = fn
}

// Sync feeds every game on board to its gate and reports how many fetches
// started. Gates for games no longer on the board are closed.
func (s *Set) Sync(board []*games.Game) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}

	seen := make(map[string]struct{}, len(board))
	started := 0
	for _, g := range board {
		if g == nil || g.ID == "" {
			continue
		}
		seen[g.ID] = struct{}{}
		gate, ok := s.gates[g.ID]
		if !ok {
			if !KeyFor(*g).fetchable() {
				continue
			}
			gate = s.newGate(g.ID)
			s.gates[g.ID] = gate
		}
		if gate.Update(*g) {
			started++
		}
	}
	for id, gate := range s.gates {
		if _, ok := seen[id]; !ok {
			gate.Close()
			delete(s.gates, id)
		}
	}
	return started
}

func (s *Set) newGate(id string) *Gate {
	gate := NewGate(s.parent, s.fetcher, s.logger, s.metrics)
	if fn := s.onChange; fn != nil {
		gate.OnChange(func(snap Snapshot) { fn(id, snap) })
	}
	return gate
}

// Snapshot returns the card's current prediction state. ok is false for a
// game that never had a fetchable key.
func (s *Set) Snapshot(id string) (Snapshot, bool) {
	s.mu.Lock()
	gate, ok := s.gates[id]
	s.mu.Unlock()
	if !ok {
		return Snapshot{}, false
	}
	return gate.Snapshot(), true
}

// Close closes every gate and ignores later Syncs.
func (s *Set) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, gate := range s.gates {
		gate.Close()
	}
}

// Wait blocks until every started fetch has returned.
func (s *Set) Wait() {
	s.mu.Lock()
	gates := make([]*Gate, 0, len(s.gates))
	for _, gate := range s.gates {
		gates = append(gates, gate)
	}
	s.mu.Unlock()
	for _, gate := range gates {
		gate.Wait()
	}
}

// Package prediction gates the auxiliary win-probability fetch for an upcoming
// game, one Gate per detail view or per card in a Set. At most one fetch per
// gate is in flight and a response for a game the view has moved away from is
// dropped.
package prediction

import (
	"context"
	"log/slog"
	"sync"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/gamestatus"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
)

// Key identifies what a prediction was fetched for.
type Key struct {
	HomeTeamID    int
	VisitorTeamID int
	GameID        string
	Upcoming      bool
}

// KeyFor derives the gate key for g.
func KeyFor(g games.Game) Key {
	return Key{
		HomeTeamID:    g.HomeTeam.ID,
		VisitorTeamID: g.VisitorTeam.ID,
		GameID:        g.ID,
		Upcoming:      gamestatus.Upcoming(g),
	}
}

func (k Key) fetchable() bool {
	return k.Upcoming && k.HomeTeamID != 0 && k.VisitorTeamID != 0
}

// Snapshot is what a view renders.
type Snapshot struct {
	Key        Key
	Value      *games.WinProbability
	Loading    bool
	Generation uint64
}

// Gate owns the prediction fetch lifecycle for one view.
type Gate struct {
	fetcher  providers.PredictionFetcher
	logger   *slog.Logger
	metrics  *metrics.Recorder
	onChange func(Snapshot)
	parent   context.Context

	mu         sync.Mutex
	key        Key
	hasKey     bool
	generation uint64
	cancel     context.CancelFunc
	value      *games.WinProbability
	loading    bool
	closed     bool

	wg sync.WaitGroup
}

// NewGate returns a gate whose fetches derive from ctx.
func NewGate(ctx context.Context, fetcher providers.PredictionFetcher, logger *slog.Logger, recorder *metrics.Recorder) *Gate {
	return &Gate{
		fetcher: fetcher,
		logger:  logger,
		metrics: recorder,
		parent:  ctx,
	}
}

// OnChange registers a callback run (on the fetch goroutine) when a current
// fetch completes. Call before the first Update.
func (g *Gate) OnChange(fn func(Snapshot)) {
	g.onChange = fn
}

// Update is called on every render with the displayed game. It reports whether
// a new fetch was started.
func (g *Gate) Update(game games.Game) bool {
	key := KeyFor(game)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed || (g.hasKey && key == g.key) {
		return false
	}
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.key = key
	g.hasKey = true
	g.generation++
	g.value = nil
	g.loading = false

	if !key.fetchable() {
		return false
	}

	ctx, cancel := context.WithCancel(g.parent)
	g.cancel = cancel
	g.loading = true
	g.wg.Add(1)
	go g.fetch(ctx, g.generation, key)
	return true
}

func (g *Gate) fetch(ctx context.Context, gen uint64, key Key) {
	defer g.wg.Done()
	wp, err := g.fetcher.WinProbability(ctx, key.HomeTeamID, key.VisitorTeamID)

	g.mu.Lock()
	if g.closed || gen != g.generation {
		g.mu.Unlock()
		g.metrics.RecordPredictionDiscarded()
		logging.Debug(g.logger, "discarding stale prediction", slog.String(logging.FieldGameID, key.GameID))
		return
	}
	g.loading = false
	g.cancel = nil
	if err != nil {
		logging.Warn(g.logger, "win probability unavailable",
			slog.String(logging.FieldGameID, key.GameID),
			slog.Any("err", err),
		)
	} else {
		g.value = &wp
	}
	snap := g.snapshotLocked()
	fn := g.onChange
	g.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
}

// Snapshot returns the current value and loading flag.
func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Gate) snapshotLocked() Snapshot {
	snap := Snapshot{Key: g.key, Loading: g.loading, Generation: g.generation}
	if g.value != nil {
		v := *g.value
		snap.Value = &v
	}
	return snap
}

// Close cancels any in-flight fetch and ignores every later Update.
func (g *Gate) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.loading = false
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// Wait blocks until every started fetch has returned.
func (g *Gate) Wait() {
	g.wg.Wait()
}

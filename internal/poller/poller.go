package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
)

const defaultInterval = 30 * time.Second

// Update is published whenever a poll changed the board.
type Update struct {
	Board      []*games.Game
	Generation uint64
}

// Poller keeps one displayed board in sync with the live snapshot. It is
// single-use: once stopped (explicitly, by ctx, or because nothing is left to
// poll) a new Poller is needed.
type Poller struct {
	source   providers.LiveScoreFetcher
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	loc      *time.Location
	now      func() time.Time
	onUpdate func(Update)

	boardMu      sync.Mutex
	board        []*games.Game
	selectedDate string
	generation   uint64

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults. A nil loc means the local zone.
func New(source providers.LiveScoreFetcher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, loc *time.Location) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if loc == nil {
		loc = time.Local
	}
	return &Poller{
		source:   source,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		loc:      loc,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// OnUpdate registers the callback for changed boards. Call before Start.
// The callback runs on the poller goroutine.
func (p *Poller) OnUpdate(fn func(Update)) {
	p.onUpdate = fn
}

// SetBoard replaces the displayed board and bumps the generation so any poll
// already in flight for the previous board is discarded.
func (p *Poller) SetBoard(selectedDate string, board []*games.Game) uint64 {
	p.boardMu.Lock()
	defer p.boardMu.Unlock()
	p.selectedDate = selectedDate
	p.board = board
	p.generation++
	return p.generation
}

// Board returns the current board and its generation.
func (p *Poller) Board() ([]*games.Game, uint64) {
	p.boardMu.Lock()
	defer p.boardMu.Unlock()
	return p.board, p.generation
}

// Active reports whether the current board still warrants polling.
func (p *Poller) Active() bool {
	p.boardMu.Lock()
	defer p.boardMu.Unlock()
	return ShouldPoll(p.selectedDate, p.today(), p.board)
}

// Start begins polling until the context is cancelled, Stop is called, or the
// board no longer needs live updates. It returns false when there was nothing
// to poll and the loop was not started.
func (p *Poller) Start(ctx context.Context) bool {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return true
	}
	if !p.Active() {
		p.startMu.Unlock()
		p.logInfo("live polling not needed")
		return false
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		defer close(p.exited)
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				if !p.pollOnce(ctx) {
					_ = p.Stop(ctx)
				}
			}
		}
	}()
	return true
}

// Stop halts the polling loop. It is safe to call more than once.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Done is closed once a started loop has exited.
func (p *Poller) Done() <-chan struct{} {
	return p.exited
}

// pollOnce fetches and merges one snapshot. It returns false when polling should end.
func (p *Poller) pollOnce(ctx context.Context) bool {
	start := p.now()
	p.recordAttempt(start)

	_, gen := p.Board()
	snapshot, err := p.source.LiveScores(ctx)
	duration := p.now().Sub(start)

	if p.stopped(ctx) {
		p.logDebug("discarding poll after stop")
		return false
	}
	if err != nil {
		p.metrics.RecordPollerCycle(duration, 0, err)
		p.logError("live poll failed", err, slog.Int64(logging.FieldDurationMS, duration.Milliseconds()))
		p.recordFailure(err, start)
		return true
	}
	p.recordSuccess(start)

	p.boardMu.Lock()
	if p.generation != gen {
		p.boardMu.Unlock()
		p.metrics.RecordPollerCycle(duration, 0, nil)
		p.logDebug("discarding poll for replaced board")
		return true
	}
	next, changed := merge(p.board, snapshot)
	p.board = next
	keepGoing := ShouldPoll(p.selectedDate, p.today(), next)
	p.boardMu.Unlock()

	p.metrics.RecordPollerCycle(duration, changed, nil)
	if changed > 0 {
		p.logDebug("live poll changed board",
			slog.Int(logging.FieldChanged, changed),
			slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
		)
		if p.onUpdate != nil {
			p.onUpdate(Update{Board: next, Generation: gen})
		}
	}
	if !keepGoing {
		p.logInfo("no live games left, stopping poller")
	}
	return keepGoing
}

func (p *Poller) stopped(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *Poller) today() string {
	return timeutil.Today(p.now(), p.loc)
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logDebug(msg string, args ...any) {
	logging.Debug(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	logging.Error(p.logger, msg, err, attrs...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

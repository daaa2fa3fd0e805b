// Package tui is the interactive terminal scoreboard: a list of game cards for
// the selected date and a detail screen with scores, box score and prediction.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	appgames "github.com/preston-bernstein/nba-scoreboard/internal/app/games"
	appplayers "github.com/preston-bernstein/nba-scoreboard/internal/app/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
	"github.com/preston-bernstein/nba-scoreboard/internal/navigation"
	"github.com/preston-bernstein/nba-scoreboard/internal/poller"
	"github.com/preston-bernstein/nba-scoreboard/internal/prediction"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
)

const eventBuffer = 16

type screen int

const (
	screenList screen = iota
	screenDetail
)

// Deps wires the model to the data layer.
type Deps struct {
	API          providers.API
	Nav          *navigation.State
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	Location     *time.Location
	PollInterval time.Duration
	Now          func() time.Time
}

type boardLoadedMsg struct {
	gen   uint64
	date  string
	board []games.Game
	err   error
}

type pollUpdateMsg struct {
	source *poller.Poller
	update poller.Update
}

type pollDoneMsg struct {
	source *poller.Poller
}

type detailLoadedMsg struct {
	gen  uint64
	game games.Game
	box  appplayers.BoxScore
	err  error
}

type predictionMsg struct {
	gate     *prediction.Gate
	snapshot prediction.Snapshot
}

type cardPredictionMsg struct {
	set *prediction.Set
	id  string
}

type themeMsg struct {
	theme string
	err   error
}

type detailState struct {
	id      string
	gen     uint64
	loading bool
	err     error
	game    games.Game
	box     appplayers.BoxScore
}

// Model is the bubbletea model. Background work (poller, prediction gate)
// reports through events; listen turns each event into a message.
type Model struct {
	ctx     context.Context
	deps    Deps
	board   *appgames.Service
	players *appplayers.Service
	events  chan tea.Msg

	screen   screen
	styles   styles
	theme    string
	input    textinput.Model
	editing  bool
	viewport viewport.Model
	width    int
	height   int

	date     string
	list     []*games.Game
	cursor   int
	loading  bool
	err      error
	inputErr error
	boardGen uint64
	poller   *poller.Poller
	cards    *prediction.Set

	detail    *detailState
	detailGen uint64
	gate      *prediction.Gate
	predicted prediction.Snapshot
}

// NewModel builds the initial model. ctx bounds every fetch and background loop.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}

	input := textinput.New()
	input.Placeholder = timeutil.DateLayout
	input.CharLimit = len(timeutil.DateLayout)
	input.Prompt = "date> "

	theme := deps.Nav.Theme()
	return &Model{
		ctx:      ctx,
		deps:     deps,
		board:    appgames.NewService(deps.API, deps.Logger),
		players:  appplayers.NewService(deps.API),
		events:   make(chan tea.Msg, eventBuffer),
		styles:   newStyles(theme),
		theme:    theme,
		input:    input,
		viewport: viewport.New(80, 20),
		date:     deps.Nav.SelectedDate(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadBoard(), m.listen())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case boardLoadedMsg:
		return m, m.applyBoard(msg)

	case pollUpdateMsg:
		if msg.source == m.poller {
			m.applyPoll(msg.update)
		}
		return m, m.listen()

	case pollDoneMsg:
		if msg.source == m.poller {
			m.poller = nil
		}
		return m, m.listen()

	case detailLoadedMsg:
		m.applyDetail(msg)
		return m, nil

	case cardPredictionMsg:
		// the list reads the set on render; the message only triggers it
		return m, m.listen()

	case predictionMsg:
		if msg.gate == m.gate {
			m.predicted = msg.snapshot
			m.refreshViewport()
		}
		return m, m.listen()

	case themeMsg:
		if msg.err != nil {
			logging.Warn(m.deps.Logger, "theme not saved", "err", msg.err)
		}
		m.theme = msg.theme
		m.styles = newStyles(msg.theme)
		m.refreshViewport()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.shutdown()
		return m, tea.Quit
	}
	if m.editing {
		return m.handleDateInput(msg)
	}

	switch msg.String() {
	case "q":
		m.shutdown()
		return m, tea.Quit
	case "t":
		return m, m.toggleTheme()
	}

	if m.screen == screenDetail {
		switch msg.String() {
		case "esc", "backspace", "b":
			m.closeDetail()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "left", "h":
		return m, m.shiftDate(-1)
	case "right", "l":
		return m, m.shiftDate(1)
	case "d", "/":
		m.editing = true
		m.inputErr = nil
		m.input.SetValue(m.date)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "r":
		return m, m.loadBoard()
	case "enter":
		if m.err == nil && m.cursor < len(m.list) && m.list[m.cursor] != nil {
			g := m.list[m.cursor]
			date := g.CalendarDate()
			if !timeutil.IsDate(date) {
				date = m.date
			}
			return m, m.openDetail(g.ID, date)
		}
	}
	return m, nil
}

func (m *Model) handleDateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		return m, m.selectDate(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selectDate persists date and reloads. A malformed date leaves the board as is.
func (m *Model) selectDate(date string) tea.Cmd {
	if err := m.deps.Nav.SetSelectedDate(m.ctx, date); err != nil {
		m.inputErr = err
		if !errors.Is(err, navigation.ErrInvalidDate) {
			logging.Warn(m.deps.Logger, "selected date not saved", "err", err)
		}
		return nil
	}
	m.inputErr = nil
	return m.loadBoard()
}

func (m *Model) shiftDate(days int) tea.Cmd {
	day, err := timeutil.ParseDate(m.date)
	if err != nil {
		return nil
	}
	return m.selectDate(timeutil.FormatDate(day.AddDate(0, 0, days)))
}

// loadBoard starts a list fetch for the selected date. Any poller or card
// prediction watching the previous board is stopped so its updates cannot
// land on the new one.
func (m *Model) loadBoard() tea.Cmd {
	m.stopPoller()
	m.stopCards()
	m.boardGen++
	gen := m.boardGen
	m.loading = true
	m.date = m.deps.Nav.SelectedDate()

	ctx, nav, svc := m.ctx, m.deps.Nav, m.board
	return func() tea.Msg {
		date, list, err := svc.LoadBoard(ctx, nav)
		return boardLoadedMsg{gen: gen, date: date, board: list, err: err}
	}
}

func (m *Model) applyBoard(msg boardLoadedMsg) tea.Cmd {
	if msg.gen != m.boardGen {
		return nil
	}
	m.loading = false
	m.date = msg.date
	if msg.err != nil {
		m.err = msg.err
		m.list = nil
		m.cursor = 0
		return nil
	}
	m.err = nil
	m.list = make([]*games.Game, len(msg.board))
	for i := range msg.board {
		g := msg.board[i]
		m.list[i] = &g
	}
	if m.cursor >= len(m.list) {
		m.cursor = max(len(m.list)-1, 0)
	}
	m.startCards()
	m.startPoller()
	return nil
}

func (m *Model) startCards() {
	set := prediction.NewSet(m.ctx, m.deps.API, m.deps.Logger, m.deps.Metrics)
	set.OnChange(func(id string, _ prediction.Snapshot) {
		m.emit(cardPredictionMsg{set: set, id: id})
	})
	m.cards = set
	set.Sync(m.list)
}

func (m *Model) stopCards() {
	if m.cards == nil {
		return
	}
	m.cards.Close()
	m.cards = nil
}

// cardPrediction returns the card's fetched prediction, if any.
func (m *Model) cardPrediction(id string) prediction.Snapshot {
	if m.cards == nil {
		return prediction.Snapshot{}
	}
	snap, _ := m.cards.Snapshot(id)
	return snap
}

func (m *Model) startPoller() {
	p := poller.New(m.deps.API, m.deps.Logger, m.deps.Metrics, m.deps.PollInterval, m.deps.Location)
	p.OnUpdate(func(u poller.Update) {
		m.emitLatest(pollUpdateMsg{source: p, update: u})
	})
	p.SetBoard(m.date, m.list)
	if !p.Start(m.ctx) {
		return
	}
	m.poller = p
	go func() {
		<-p.Done()
		m.emit(pollDoneMsg{source: p})
	}()
}

func (m *Model) stopPoller() {
	if m.poller == nil {
		return
	}
	if err := m.poller.Stop(m.ctx); err != nil {
		logging.Warn(m.deps.Logger, "poller stop", "err", err)
	}
	m.poller = nil
}

// applyPoll swaps in the reconciled board. The open detail only takes the
// fields a poll reconciles; the rest (period scores) came from the detail fetch.
func (m *Model) applyPoll(u poller.Update) {
	m.list = u.Board
	if m.cards != nil {
		m.cards.Sync(m.list)
	}
	if m.detail == nil || m.detail.loading || m.detail.err != nil {
		return
	}
	for _, g := range u.Board {
		if g != nil && g.ID == m.detail.id {
			d := &m.detail.game
			d.HomeTeamScore = g.HomeTeamScore
			d.VisitorTeamScore = g.VisitorTeamScore
			d.Status = g.Status
			d.Period = g.Period
			if m.gate != nil {
				m.gate.Update(*d)
				m.predicted = m.gate.Snapshot()
			}
			m.refreshViewport()
			return
		}
	}
}

// openDetail fetches game id. date is the game's own calendar date when the
// list knows it, else the selected date.
func (m *Model) openDetail(id, date string) tea.Cmd {
	m.closeDetail()
	m.detailGen++
	gen := m.detailGen
	m.screen = screenDetail
	m.detail = &detailState{id: id, gen: gen, loading: true}
	m.viewport.GotoTop()

	gate := prediction.NewGate(m.ctx, m.deps.API, m.deps.Logger, m.deps.Metrics)
	gate.OnChange(func(s prediction.Snapshot) {
		m.emit(predictionMsg{gate: gate, snapshot: s})
	})
	m.gate = gate
	m.predicted = prediction.Snapshot{}

	ctx, nav := m.ctx, m.deps.Nav
	board, box := m.board, m.players
	return func() tea.Msg {
		g, err := board.Detail(ctx, nav, id, date)
		if err != nil {
			return detailLoadedMsg{gen: gen, err: err}
		}
		split, err := box.BoxScore(ctx, g.ID, g.HomeTeam.Abbreviation, g.VisitorTeam.Abbreviation)
		if err != nil {
			return detailLoadedMsg{gen: gen, game: g, err: err}
		}
		return detailLoadedMsg{gen: gen, game: g, box: split}
	}
}

func (m *Model) applyDetail(msg detailLoadedMsg) {
	if m.detail == nil || msg.gen != m.detail.gen {
		return
	}
	m.detail.loading = false
	m.detail.err = msg.err
	m.detail.game = msg.game
	m.detail.box = msg.box
	if msg.err == nil && m.gate != nil {
		m.gate.Update(msg.game)
		m.predicted = m.gate.Snapshot()
	}
	m.refreshViewport()
}

func (m *Model) closeDetail() {
	if m.gate != nil {
		m.gate.Close()
		m.gate = nil
	}
	m.detail = nil
	m.predicted = prediction.Snapshot{}
	m.screen = screenList
}

func (m *Model) toggleTheme() tea.Cmd {
	ctx, nav := m.ctx, m.deps.Nav
	return func() tea.Msg {
		theme, err := nav.ToggleTheme(ctx)
		return themeMsg{theme: theme, err: err}
	}
}

func (m *Model) shutdown() {
	m.closeDetail()
	m.stopCards()
	m.stopPoller()
}

// emit waits for room in the event buffer; these messages are sent once.
func (m *Model) emit(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.ctx.Done():
	}
}

// emitLatest drops msg when the buffer is full; the next poll update
// supersedes it.
func (m *Model) emitLatest(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.ctx.Done():
	default:
		logging.Warn(m.deps.Logger, "tui poll update dropped")
	}
}

func (m *Model) listen() tea.Cmd {
	events, done := m.events, m.ctx.Done()
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}

// Run starts the program on the alternate screen and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewModel(ctx, deps)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	m.shutdown()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

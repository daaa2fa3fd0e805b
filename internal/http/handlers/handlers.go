package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	appgames "github.com/preston-bernstein/nba-scoreboard/internal/app/games"
	appplayers "github.com/preston-bernstein/nba-scoreboard/internal/app/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/gamestatus"
	"github.com/preston-bernstein/nba-scoreboard/internal/http/requestutil"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
	"github.com/preston-bernstein/nba-scoreboard/internal/navigation"
	"github.com/preston-bernstein/nba-scoreboard/internal/poller"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
	"github.com/preston-bernstein/nba-scoreboard/internal/store"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
	"github.com/preston-bernstein/nba-scoreboard/internal/view"
)

type nowFunc func() time.Time

// Options carries the handler's collaborators. Origins lists the cross-origin
// pages allowed to open the live feed.
type Options struct {
	API          providers.API
	Sessions     *store.Sessions
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	Location     *time.Location
	PollInterval time.Duration
	SessionTTL   time.Duration
	Origins      []string
}

// Handler wires HTTP routes to the board services.
type Handler struct {
	api          providers.API
	board        *appgames.Service
	box          *appplayers.Service
	sessions     *store.Sessions
	logger       *slog.Logger
	metrics      *metrics.Recorder
	loc          *time.Location
	pollInterval time.Duration
	sessionTTL   time.Duration
	origins      []string
	upgrader     websocket.Upgrader
	now          nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(opts Options) *Handler {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	h := &Handler{
		api:          opts.API,
		board:        appgames.NewService(opts.API, opts.Logger),
		box:          appplayers.NewService(opts.API),
		sessions:     opts.Sessions,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		loc:          loc,
		pollInterval: opts.PollInterval,
		sessionTTL:   opts.SessionTTL,
		origins:      opts.Origins,
		now:          time.Now,
	}
	h.upgrader = h.newUpgrader()
	return h
}

// BoardResponse is the payload of GET /api/board.
type BoardResponse struct {
	Date  string       `json:"date"`
	Live  bool         `json:"live"`
	Cards []view.Card  `json:"cards"`
	Games []games.Game `json:"games"`
}

// ThemeResponse is the payload of POST /api/theme/toggle.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// PredictionResponse is the payload of GET /api/games/{id}/prediction.
// Prediction is null when the game is not upcoming or the fetch failed.
type PredictionResponse struct {
	GameID     string           `json:"gameId"`
	Upcoming   bool             `json:"upcoming"`
	Prediction *view.Prediction `json:"prediction"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness once the session backend answers.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.sessions == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "session store not configured", h.logger)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.sessions.Ping(ctx); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "session store not ready", slog.Any("err", err))
		writeError(w, r, nethttp.StatusServiceUnavailable, "session store unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready", "sessions": h.sessions.Backend()}, h.logger)
}

// Board returns the cards for ?date=, or for the session's selected date.
// An explicit date becomes the session's selected date.
func (h *Handler) Board(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	nav, ok := h.navigation(w, r)
	if !ok {
		return
	}
	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		if err := nav.SetSelectedDate(r.Context(), date); err != nil {
			writeServiceError(w, r, err, logger)
			return
		}
	}

	date, list, err := h.board.LoadBoard(r.Context(), nav)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	logging.Info(logger, "served board",
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(list)),
	)
	writeJSON(w, nethttp.StatusOK, h.boardResponse(date, list), logger)
}

// Game returns the detail view with its box score.
func (h *Handler) Game(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	box, err := h.box.BoxScore(r.Context(), g.ID, g.HomeTeam.Abbreviation, g.VisitorTeam.Abbreviation)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, view.NewDetail(g, box, nil, h.now(), h.loc), logger)
}

// BoxScore returns the per-side player tables.
func (h *Handler) BoxScore(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	box, err := h.box.BoxScore(r.Context(), g.ID, g.HomeTeam.Abbreviation, g.VisitorTeam.Abbreviation)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string][]view.PlayerRow{
		"visitor": view.PlayerRows(box.Visitor),
		"home":    view.PlayerRows(box.Home),
	}, logger)
}

// Prediction returns the win probability of an upcoming game. Upstream
// failures degrade to a null prediction.
func (h *Handler) Prediction(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	g, ok := h.game(w, r)
	if !ok {
		return
	}
	resp := PredictionResponse{GameID: g.ID, Upcoming: gamestatus.Upcoming(g)}
	if resp.Upcoming && g.HasTeamIDs() {
		wp, err := h.api.WinProbability(r.Context(), g.HomeTeam.ID, g.VisitorTeam.ID)
		if err != nil {
			logging.Warn(logger, "win probability unavailable",
				slog.String(logging.FieldGameID, g.ID),
				slog.Any("err", err),
			)
		} else {
			resp.Prediction = view.FormatPrediction(wp)
		}
	}
	writeJSON(w, nethttp.StatusOK, resp, logger)
}

// ToggleTheme flips and persists the session theme.
func (h *Handler) ToggleTheme(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	nav, ok := h.navigation(w, r)
	if !ok {
		return
	}
	theme, err := nav.ToggleTheme(r.Context())
	if err != nil {
		logging.Error(logger, "theme not persisted", err)
		writeError(w, r, nethttp.StatusServiceUnavailable, "session store unavailable", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, ThemeResponse{Theme: theme}, logger)
}

// game resolves {id} with the optional ?date= navigation context.
func (h *Handler) game(w nethttp.ResponseWriter, r *nethttp.Request) (games.Game, bool) {
	nav, ok := h.navigation(w, r)
	if !ok {
		return games.Game{}, false
	}
	id := chi.URLParam(r, "id")
	g, err := h.board.Detail(r.Context(), nav, id, strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		writeServiceError(w, r, err, loggerFromContext(r, h.logger))
		return games.Game{}, false
	}
	return g, true
}

// navigation opens the caller's session, minting a cookie for new visitors.
func (h *Handler) navigation(w nethttp.ResponseWriter, r *nethttp.Request) (*navigation.State, bool) {
	logger := loggerFromContext(r, h.logger)
	if h.sessions == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "session store not configured", logger)
		return nil, false
	}
	id, ok := requestutil.SessionID(r)
	if !ok {
		id = requestutil.NewSessionID()
		nethttp.SetCookie(w, requestutil.SessionCookie(id, h.sessionTTL))
	}
	st, err := h.sessions.Open(id)
	if err != nil {
		logging.Error(logger, "session open failed", err, slog.String(logging.FieldSessionID, id))
		writeError(w, r, nethttp.StatusServiceUnavailable, "session store unavailable", logger)
		return nil, false
	}
	logger = logging.With(logger, slog.String(logging.FieldSessionID, id))
	return navigation.New(r.Context(), st, h.now(), h.loc, logger), true
}

func (h *Handler) boardResponse(date string, list []games.Game) BoardResponse {
	board := make([]*games.Game, len(list))
	for i := range list {
		board[i] = &list[i]
	}
	return BoardResponse{
		Date:  date,
		Live:  poller.ShouldPoll(date, h.today(), board),
		Cards: view.Cards(list, h.now(), h.loc),
		Games: list,
	}
}

func (h *Handler) today() string {
	return timeutil.Today(h.now(), h.loc)
}

package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/poller"
	"github.com/preston-bernstein/nba-scoreboard/internal/view"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// Live message types.
const (
	LiveTypeBoard  = "board"
	LiveTypeUpdate = "update"
)

// LiveMessage is one frame of the live feed.
type LiveMessage struct {
	Type       string      `json:"type"`
	Date       string      `json:"date"`
	Live       bool        `json:"live"`
	Generation uint64      `json:"generation"`
	Cards      []view.Card `json:"cards"`
}

func (h *Handler) newUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
}

// checkOrigin admits clients without an Origin header, same-origin pages and
// the configured origins. A "*" entry does not extend to the live feed: the
// upgrade carries the session cookie and CORS never sees it.
func (h *Handler) checkOrigin(r *nethttp.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	origin = strings.TrimSuffix(origin, "/")
	for _, allowed := range h.origins {
		allowed = strings.TrimSuffix(strings.TrimSpace(allowed), "/")
		if allowed != "*" && strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Live streams the session's board over a websocket. Each connection owns one
// poller; the feed closes when no game on the board is left to update.
func (h *Handler) Live(w nethttp.ResponseWriter, r *nethttp.Request) {
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

	var header nethttp.Header
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header = nethttp.Header{"Set-Cookie": cookies}
	}
	conn, err := h.upgrader.Upgrade(w, r, header)
	if err != nil {
		logging.Warn(logger, "live upgrade failed", slog.Any("err", err))
		return
	}
	defer conn.Close()

	h.metrics.RecordLiveConnection(1)
	defer h.metrics.RecordLiveConnection(-1)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	board := make([]*games.Game, len(list))
	for i := range list {
		board[i] = &list[i]
	}

	updates := make(chan LiveMessage, sendBufferSize)
	p := poller.New(h.api, logger, h.metrics, h.pollInterval, h.loc)
	p.OnUpdate(func(u poller.Update) {
		msg := h.liveMessage(LiveTypeUpdate, date, u.Generation, u.Board, true)
		select {
		case updates <- msg:
		default:
			logging.Warn(logger, "live client too slow, dropping update", slog.String(logging.FieldDate, date))
		}
	})
	gen := p.SetBoard(date, board)

	go readPump(conn, cancel)

	live := p.Active()
	if err := writeFrame(conn, h.liveMessage(LiveTypeBoard, date, gen, board, live)); err != nil {
		logging.Warn(logger, "live write failed", slog.Any("err", err))
		return
	}
	if !live || !p.Start(ctx) {
		closeFeed(conn)
		return
	}
	defer func() { _ = p.Stop(context.Background()) }()

	logging.Info(logger, "live feed opened", slog.String(logging.FieldDate, date))
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-updates:
			if err := writeFrame(conn, msg); err != nil {
				logging.Warn(logger, "live write failed", slog.Any("err", err))
				return
			}
		case <-p.Done():
			// flush whatever the last poll published before closing
			for {
				select {
				case msg := <-updates:
					if err := writeFrame(conn, msg); err != nil {
						return
					}
				default:
					closeFeed(conn)
					logging.Info(logger, "live feed finished", slog.String(logging.FieldDate, date))
					return
				}
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Handler) liveMessage(kind, date string, gen uint64, board []*games.Game, live bool) LiveMessage {
	list := make([]games.Game, 0, len(board))
	for _, g := range board {
		if g != nil {
			list = append(list, *g)
		}
	}
	return LiveMessage{
		Type:       kind,
		Date:       date,
		Live:       live,
		Generation: gen,
		Cards:      view.Cards(list, h.now(), h.loc),
	}
}

// readPump drains client frames so control messages are processed, and
// cancels the feed once the peer goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, msg LiveMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func closeFeed(conn *websocket.Conn) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "no live games"))
}

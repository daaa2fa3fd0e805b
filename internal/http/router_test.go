package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/http/handlers"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
	"github.com/preston-bernstein/nba-scoreboard/internal/store"
	"github.com/preston-bernstein/nba-scoreboard/internal/teststubs"
	"github.com/preston-bernstein/nba-scoreboard/internal/testutil"
	"github.com/preston-bernstein/nba-scoreboard/internal/timeutil"
)

func newRouter(t *testing.T, api *teststubs.StubAPI, rec *metrics.Recorder) http.Handler {
	t.Helper()
	sessions, err := store.NewSessions(store.SessionConfig{Backend: store.BackendMemory})
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	logger, _ := testutil.NewBufferLogger()
	h := handlers.NewHandler(handlers.Options{
		API:          api,
		Sessions:     sessions,
		Logger:       logger,
		Metrics:      rec,
		Location:     time.UTC,
		PollInterval: 10 * time.Millisecond,
		Origins:      []string{"https://scores.example"},
	})
	return NewRouter(h, RouterConfig{Logger: logger, Metrics: rec, CORSOrigins: []string{"https://scores.example"}})
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	api := &teststubs.StubAPI{GamesResult: []games.Game{testutil.ScheduledGame("g1", "2024-01-15T23:00:00Z")}}
	router := newRouter(t, api, metrics.NewRecorder())

	cases := map[string]int{
		"/health":                                http.StatusOK,
		"/ready":                                 http.StatusOK,
		"/api/board?date=2024-01-15":             http.StatusOK,
		"/api/games/g1?date=2024-01-15":          http.StatusOK,
		"/api/games/missing?date=2024-01-15":     http.StatusNotFound,
		"/api/games/g1/prediction?date=bad":      http.StatusBadRequest,
		"/api/games/g1/boxscore?date=2024-01-15": http.StatusOK,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newRouter(t, &teststubs.StubAPI{}, metrics.NewRecorder())
	rr := testutil.Serve(router, http.MethodGet, "/does-not-exist", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}

func TestRouterThemeRequiresPost(t *testing.T) {
	router := newRouter(t, &teststubs.StubAPI{}, metrics.NewRecorder())
	rr := testutil.Serve(router, http.MethodGet, "/api/theme/toggle", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newRouter(t, &teststubs.StubAPI{}, metrics.NewRecorder())

	req := httptest.NewRequest(http.MethodOptions, "/api/board", nil)
	req.Header.Set("Origin", "https://scores.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := testutil.ServeRequest(router, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://scores.example" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/board", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr = testutil.ServeRequest(router, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected foreign origin rejected, got %q", got)
	}
}

func TestLiveFeedStreamsUntilFinal(t *testing.T) {
	today := timeutil.Today(time.Now(), time.UTC)
	live := testutil.LiveGame("g1", 3, 70, 66)
	live.Date = today
	api := &teststubs.StubAPI{
		GamesResult: []games.Game{live},
		LiveResult: []games.LiveScore{{
			ID: "g1", Status: "Final", Period: 4,
			HomeTeamScore: games.Score(101), VisitorTeamScore: games.Score(99),
		}},
	}
	rec := metrics.NewRecorder()
	srv := httptest.NewServer(newRouter(t, api, rec))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live?date=" + today
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if len(resp.Cookies()) == 0 {
		t.Fatalf("expected session cookie on upgrade")
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first handlers.LiveMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read board: %v", err)
	}
	if first.Type != handlers.LiveTypeBoard || !first.Live || first.Cards[0].Label != "Q3" {
		t.Fatalf("unexpected first frame %+v", first)
	}

	var update handlers.LiveMessage
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if update.Type != handlers.LiveTypeUpdate || !update.Cards[0].Status.IsFinal() || !update.Cards[0].Home.Winner {
		t.Fatalf("unexpected update frame %+v", update)
	}

	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal close once no games are live, got %v", err)
	}
	if got := rec.PollSnapshot().Cycles; got < 1 {
		t.Fatalf("expected poll cycles recorded, got %d", got)
	}
}

func TestLiveFeedClosesImmediatelyForPastDates(t *testing.T) {
	api := &teststubs.StubAPI{GamesResult: []games.Game{testutil.FinalGame("g1", 100, 90)}}
	srv := httptest.NewServer(newRouter(t, api, metrics.NewRecorder()))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live?date=2020-01-01"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first handlers.LiveMessage
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read board: %v", err)
	}
	if first.Live {
		t.Fatalf("expected a non-live board for a past date")
	}
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Fatalf("expected normal close, got %v", err)
	}
	if api.LiveCalls.Load() != 0 {
		t.Fatalf("expected no live polling for a past date")
	}
}

func TestLiveFeedRejectsInvalidDateBeforeUpgrade(t *testing.T) {
	router := newRouter(t, &teststubs.StubAPI{}, metrics.NewRecorder())
	rr := testutil.Serve(router, http.MethodGet, "/api/live?date=nope", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestLiveFeedChecksOrigin(t *testing.T) {
	api := &teststubs.StubAPI{GamesResult: []games.Game{testutil.FinalGame("g1", 100, 90)}}
	srv := httptest.NewServer(newRouter(t, api, metrics.NewRecorder()))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live?date=2020-01-01"

	header := http.Header{"Origin": []string{"https://evil.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		conn.Close()
		t.Fatalf("expected foreign origin to be refused")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign origin, got %v", resp)
	}

	for _, origin := range []string{"https://scores.example", srv.URL} {
		conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{origin}})
		if err != nil {
			t.Fatalf("origin %s: dial: %v", origin, err)
		}
		conn.Close()
	}
}

func TestLiveFeedWildcardCORSDoesNotOpenFeed(t *testing.T) {
	sessions, err := store.NewSessions(store.SessionConfig{Backend: store.BackendMemory})
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	h := handlers.NewHandler(handlers.Options{
		API:      &teststubs.StubAPI{},
		Sessions: sessions,
		Location: time.UTC,
		Origins:  []string{"*"},
	})
	srv := httptest.NewServer(NewRouter(h, RouterConfig{CORSOrigins: []string{"*"}}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live?date=2020-01-01"
	conn, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	if err == nil {
		conn.Close()
		t.Fatalf("expected wildcard CORS not to admit a foreign live feed")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", resp)
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/http/requestutil"
	"github.com/preston-bernstein/nba-scoreboard/internal/store"
	"github.com/preston-bernstein/nba-scoreboard/internal/teststubs"
	"github.com/preston-bernstein/nba-scoreboard/internal/testutil"
	"github.com/preston-bernstein/nba-scoreboard/internal/view"
)

var fixedNow = time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T, api *teststubs.StubAPI) (*Handler, http.Handler) {
	t.Helper()
	sessions, err := store.NewSessions(store.SessionConfig{Backend: store.BackendMemory})
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	h := NewHandler(Options{API: api, Sessions: sessions, Location: time.UTC, SessionTTL: time.Hour})
	h.now = testutil.NowAt(fixedNow)

	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/api/board", h.Board)
	r.Post("/api/theme/toggle", h.ToggleTheme)
	r.Get("/api/games/{id}", h.Game)
	r.Get("/api/games/{id}/boxscore", h.BoxScore)
	r.Get("/api/games/{id}/prediction", h.Prediction)
	return h, r
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == requestutil.SessionCookieName {
			return c
		}
	}
	t.Fatalf("expected session cookie to be set")
	return nil
}

func get(r http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return testutil.ServeRequest(r, req)
}

func boardAPI() *teststubs.StubAPI {
	final := testutil.FinalGame("g2", 110, 102)
	final.Date = "2024-01-15"
	final.Datetime = "2024-01-15T17:00:00Z"
	live := testutil.LiveGame("g1", 2, 50, 48)
	live.Date = "2024-01-15"
	live.Datetime = "2024-01-15T19:00:00Z"
	upcoming := testutil.ScheduledGame("g3", "2024-01-16T00:30:00Z")
	upcoming.Date = "2024-01-15"
	return &teststubs.StubAPI{GamesResult: []games.Game{upcoming, live, final}}
}

func TestHealth(t *testing.T) {
	_, r := newTestHandler(t, &teststubs.StubAPI{})
	rr := get(r, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h, _ := newTestHandler(t, &teststubs.StubAPI{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestReadyWithMemorySessions(t *testing.T) {
	_, r := newTestHandler(t, &teststubs.StubAPI{})
	rr := get(r, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	h := NewHandler(Options{API: &teststubs.StubAPI{}})
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestBoardDefaultsToTodayAndSorts(t *testing.T) {
	api := boardAPI()
	_, r := newTestHandler(t, api)

	rr := get(r, "/api/board", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	sessionCookie(t, rr)

	var resp BoardResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Date != "2024-01-15" || !resp.Live {
		t.Fatalf("expected live board for today, got date %s live %v", resp.Date, resp.Live)
	}
	want := []string{"g2", "g1", "g3"}
	for i, id := range want {
		if resp.Cards[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, resp.Cards[i].ID)
		}
	}
	if resp.Cards[0].Label != "FIN" || !resp.Cards[2].Upcoming {
		t.Fatalf("unexpected cards %+v", resp.Cards)
	}
	if dates := api.Dates(); len(dates) != 1 || dates[0] != "2024-01-15" {
		t.Fatalf("unexpected fetch dates %v", dates)
	}
}

func TestBoardPersistsSelectedDateInSession(t *testing.T) {
	api := boardAPI()
	_, r := newTestHandler(t, api)

	rr := get(r, "/api/board?date=2024-01-10", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	cookie := sessionCookie(t, rr)

	rr = get(r, "/api/board", cookie)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp BoardResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Date != "2024-01-10" || resp.Live {
		t.Fatalf("expected stored past date without live polling, got %s live %v", resp.Date, resp.Live)
	}
}

func TestBoardInvalidDateOffersWayBack(t *testing.T) {
	api := boardAPI()
	_, r := newTestHandler(t, api)

	rr := get(r, "/api/board?date=01-15-2024", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["back"] != "/" {
		t.Fatalf("expected back hint, got %v", body)
	}
	if api.GamesCalls.Load() != 0 {
		t.Fatalf("expected no upstream call for invalid date")
	}
}

func TestBoardUpstreamFailureIsBadGateway(t *testing.T) {
	_, r := newTestHandler(t, &teststubs.StubAPI{GamesErr: errors.New("boom")})
	rr := get(r, "/api/board", nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestGameDetailResolvesDateFromBoard(t *testing.T) {
	api := boardAPI()
	api.BoxScoreResult = []players.StatLine{
		testutil.StatLine(1, "Jaylen", "Brown", "BOS", 30),
		testutil.StatLine(2, "LeBron", "James", "LAL", 28),
	}
	_, r := newTestHandler(t, api)

	rr := get(r, "/api/board", nil)
	cookie := sessionCookie(t, rr)

	rr = get(r, "/api/games/g2", cookie)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var detail view.Detail
	testutil.DecodeJSON(t, rr, &detail)
	if detail.Header != "LAL Full Name @ BOS Full Name" || detail.ScoreLine != "102 - 110 FINAL" {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if len(detail.Home) != 1 || detail.Home[0].Name != "J. Brown" || len(detail.Visitor) != 1 {
		t.Fatalf("unexpected box score %+v %+v", detail.Home, detail.Visitor)
	}
	if dates := api.Dates(); dates[len(dates)-1] != "2024-01-15" {
		t.Fatalf("expected detail fetched on indexed date, got %v", dates)
	}
}

func TestGameDetailUnknownDateIsInputError(t *testing.T) {
	_, r := newTestHandler(t, boardAPI())
	rr := get(r, "/api/games/g2", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["back"] != "/" {
		t.Fatalf("expected back hint, got %v", body)
	}
}

func TestGameDetailNotFound(t *testing.T) {
	_, r := newTestHandler(t, boardAPI())
	rr := get(r, "/api/games/nope?date=2024-01-15", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestBoxScoreFailureIsBadGateway(t *testing.T) {
	api := boardAPI()
	api.BoxScoreErr = errors.New("boom")
	_, r := newTestHandler(t, api)

	rr := get(r, "/api/games/g1/boxscore?date=2024-01-15", nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestBoxScoreSplitsTables(t *testing.T) {
	api := boardAPI()
	api.BoxScoreResult = []players.StatLine{
		testutil.StatLine(1, "A", "Home", "BOS", 5),
		testutil.StatLine(2, "B", "Home", "BOS", 15),
	}
	_, r := newTestHandler(t, api)

	rr := get(r, "/api/games/g1/boxscore?date=2024-01-15", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string][]view.PlayerRow
	testutil.DecodeJSON(t, rr, &body)
	if len(body["home"]) != 2 || body["home"][0].Pts != "15" || len(body["visitor"]) != 0 {
		t.Fatalf("unexpected tables %+v", body)
	}
}

func TestPredictionOnlyForUpcomingGames(t *testing.T) {
	api := boardAPI()
	api.Prediction = games.WinProbability{Home: 0.55, Visitor: 0.45}
	_, r := newTestHandler(t, api)

	rr := get(r, "/api/games/g3/prediction?date=2024-01-15", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp PredictionResponse
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Upcoming || resp.Prediction == nil || resp.Prediction.Home != "55.0%" {
		t.Fatalf("unexpected prediction %+v", resp)
	}

	rr = get(r, "/api/games/g1/prediction?date=2024-01-15", nil)
	resp = PredictionResponse{}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Upcoming || resp.Prediction != nil {
		t.Fatalf("expected no prediction for a live game, got %+v", resp)
	}
	if api.PredictionCalls.Load() != 1 {
		t.Fatalf("expected a single upstream prediction call, got %d", api.PredictionCalls.Load())
	}
}

func TestPredictionFailureDegradesToNull(t *testing.T) {
	api := boardAPI()
	api.PredictionErr = errors.New("boom")
	_, r := newTestHandler(t, api)

	rr := get(r, "/api/games/g3/prediction?date=2024-01-15", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp PredictionResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Prediction != nil {
		t.Fatalf("expected null prediction, got %+v", resp.Prediction)
	}
}

func TestToggleThemePersistsPerSession(t *testing.T) {
	_, r := newTestHandler(t, &teststubs.StubAPI{})

	rr := testutil.Serve(r, http.MethodPost, "/api/theme/toggle", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	cookie := sessionCookie(t, rr)
	var resp ThemeResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Theme != "dark" {
		t.Fatalf("expected dark, got %s", resp.Theme)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/theme/toggle", nil)
	req.AddCookie(cookie)
	rr = testutil.ServeRequest(r, req)
	resp = ThemeResponse{}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Theme != "light" {
		t.Fatalf("expected light after second toggle, got %s", resp.Theme)
	}
}

func BenchmarkBoard(b *testing.B) {
	sessions, _ := store.NewSessions(store.SessionConfig{Backend: store.BackendMemory})
	h := NewHandler(Options{API: boardAPI(), Sessions: sessions, Location: time.UTC})
	h.now = testutil.NowAt(fixedNow)
	req := httptest.NewRequest(http.MethodGet, "/api/board", nil)
	req.AddCookie(requestutil.SessionCookie("bench", 0))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.Board(rr, req)
	}
}

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	appgames "github.com/preston-bernstein/nba-scoreboard/internal/app/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/navigation"
	"github.com/preston-bernstein/nba-scoreboard/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestWriteServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		wantBack bool
	}{
		{fmt.Errorf("%w: %q", navigation.ErrInvalidDate, "x"), http.StatusBadRequest, true},
		{appgames.ErrInvalidGameID, http.StatusBadRequest, true},
		{fmt.Errorf("%w: game 7", navigation.ErrGameDateUnknown), http.StatusBadRequest, true},
		{fmt.Errorf("%w: 7", appgames.ErrGameNotFound), http.StatusNotFound, false},
		{errors.New("upstream down"), http.StatusBadGateway, false},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/board", nil)
		writeServiceError(rr, req, tc.err, nil)
		testutil.AssertStatus(t, rr, tc.status)

		var body map[string]string
		testutil.DecodeJSON(t, rr, &body)
		if got := body["back"] == "/"; got != tc.wantBack {
			t.Fatalf("%v: expected back hint %v, got body %v", tc.err, tc.wantBack, body)
		}
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	appgames "github.com/preston-bernstein/nba-scoreboard/internal/app/games"
	appplayers "github.com/preston-bernstein/nba-scoreboard/internal/app/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/http/middleware"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/navigation"
)

// backPath is the recovery target offered with input errors.
const backPath = "/"

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	writeErrorBody(w, r, status, map[string]string{"error": message}, logger)
}

// writeInputError reports a request the user has to change, with a way back to the list.
func writeInputError(w http.ResponseWriter, r *http.Request, message string, logger *slog.Logger) {
	writeErrorBody(w, r, http.StatusBadRequest, map[string]string{"error": message, "back": backPath}, logger)
}

func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, body map[string]string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps application errors onto responses: input errors are
// 400, unknown games 404, and every upstream failure 502.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, navigation.ErrInvalidDate):
		writeInputError(w, r, "invalid date format (expected YYYY-MM-DD)", logger)
	case errors.Is(err, appgames.ErrInvalidGameID):
		writeInputError(w, r, "invalid game id", logger)
	case errors.Is(err, navigation.ErrGameDateUnknown):
		writeInputError(w, r, "game date unknown, open the game from the board first", logger)
	case errors.Is(err, appplayers.ErrMissingTeams):
		writeInputError(w, r, "game is missing team abbreviations", logger)
	case errors.Is(err, appgames.ErrGameNotFound):
		writeError(w, r, http.StatusNotFound, "game not found", logger)
	default:
		logging.Warn(logger, "upstream request failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "scoreboard data unavailable", logger)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

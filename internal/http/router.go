package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/nba-scoreboard/internal/http/handlers"
	"github.com/preston-bernstein/nba-scoreboard/internal/http/middleware"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
)

// RouterConfig carries cross-cutting router settings.
type RouterConfig struct {
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
}

// NewRouter registers the scoreboard routes on a chi router.
func NewRouter(handler *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Middleware(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/board", handler.Board)
		r.Get("/live", handler.Live)
		r.Post("/theme/toggle", handler.ToggleTheme)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", handler.Game)
			r.Get("/boxscore", handler.BoxScore)
			r.Get("/prediction", handler.Prediction)
		})
	})
	return r
}

package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-scoreboard/internal/config"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
)

// providerFactory assembles the scoreboard API with the shared instrumentation wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.API {
	base := selectProvider(cfg, f.logger)
	return f.wrap(cfg, base)
}

func (f providerFactory) wrap(cfg config.Config, base providers.API) providers.API {
	return providers.NewInstrumented(base, normalizeProviderName(cfg.Provider, base), f.metrics, f.logger)
}

// NewAPI builds the configured, instrumented scoreboard API. The CLI and the
// terminal UI share it with the HTTP server.
func NewAPI(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.API {
	return newProviderFactory(logger, recorder).build(cfg)
}

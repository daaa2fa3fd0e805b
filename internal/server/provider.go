package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-scoreboard/internal/config"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers/fixture"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers/scoreapi"
)

// Provider names accepted in configuration.
const (
	ProviderScoreAPI = "scoreapi"
	ProviderFixture  = "fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.API {
	switch normalizeProviderName(cfg.Provider, nil) {
	case ProviderFixture:
		return fixture.New()
	case ProviderScoreAPI, "provider":
		return scoreapi.NewClient(scoreapi.Config{
			BaseURL: cfg.API.BaseURL,
			APIKey:  cfg.API.APIKey,
			Timeout: cfg.API.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

package server

import (
	"context"
	"testing"

	"github.com/preston-bernstein/nba-scoreboard/internal/config"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers/fixture"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers/scoreapi"
)

func TestProviderFactoryInstrumentsCalls(t *testing.T) {
	rec := metrics.NewRecorder()
	api := NewAPI(config.Config{Provider: "fixture"}, nil, rec)
	if api == nil {
		t.Fatalf("expected provider")
	}
	if _, err := api.Games(context.Background(), "2024-01-15"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got := rec.Snapshot(providers.EndpointGames).Calls; got != 1 {
		t.Fatalf("expected one recorded call, got %d", got)
	}
}

func TestSelectProviderFallsBackToFixture(t *testing.T) {
	if _, ok := selectProvider(config.Config{Provider: "unknown"}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback")
	}
}

func TestSelectProviderChoosesScoreAPI(t *testing.T) {
	api := selectProvider(config.Config{
		Provider: "ScoreAPI",
		API:      config.APIConfig{BaseURL: "http://example.com/api", APIKey: "key"},
	}, nil)
	if _, ok := api.(*scoreapi.Client); !ok {
		t.Fatalf("expected scoreapi client, got %T", api)
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName(" Fixture ", nil); got != "fixture" {
		t.Fatalf("expected lower-cased name, got %q", got)
	}
	if got := normalizeProviderName("", scoreapi.NewClient(scoreapi.Config{})); got != "scoreapi" {
		t.Fatalf("expected client name, got %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected generic name, got %q", got)
	}
}

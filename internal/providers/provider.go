package providers

import (
	"context"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
)

// Endpoint names used for metrics and logs.
const (
	EndpointGames      = "games"
	EndpointGame       = "game"
	EndpointBoxScore   = "boxscore"
	EndpointLiveScores = "live_scores"
	EndpointPrediction = "win_probability"
)

// GameLister lists the games scheduled on a YYYY-MM-DD date.
type GameLister interface {
	Games(ctx context.Context, date string) ([]games.Game, error)
}

// GameFetcher fetches one game. A game the upstream does not know is (nil, nil).
type GameFetcher interface {
	Game(ctx context.Context, id, date string) (*games.Game, error)
}

// BoxScoreFetcher fetches per-player stat lines for a game.
type BoxScoreFetcher interface {
	BoxScore(ctx context.Context, id string) ([]players.StatLine, error)
}

// LiveScoreFetcher fetches the current live snapshot for today's games.
type LiveScoreFetcher interface {
	LiveScores(ctx context.Context) ([]games.LiveScore, error)
}

// PredictionFetcher fetches win probabilities for a pairing.
type PredictionFetcher interface {
	WinProbability(ctx context.Context, homeTeamID, visitorTeamID int) (games.WinProbability, error)
}

// API combines every scoreboard capability.
type API interface {
	GameLister
	GameFetcher
	BoxScoreFetcher
	LiveScoreFetcher
	PredictionFetcher
}

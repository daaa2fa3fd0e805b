package scoreapi

import "time"

const (
	providerName       = "scoreapi"
	defaultBaseURL     = "http://localhost:8000/api"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512

	pathGames          = "/games"
	pathBoxScores      = "/boxscores"
	pathLiveScores     = "/live_scores"
	pathWinProbability = "/predictions/win_probability"
)

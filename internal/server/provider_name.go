package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving from instance when not explicitly configured.
// Used across server wiring and provider factory to keep naming consistent in metrics/logs.
func normalizeProviderName(raw string, api providers.API) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if named, ok := api.(interface{ Name() string }); ok {
		return strings.ToLower(named.Name())
	}
	if api != nil {
		return strings.ToLower(fmt.Sprintf("%T", api))
	}
	return "provider"
}

package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// SessionConfig selects the key/value backend holding navigation state.
type SessionConfig struct {
	Backend  string // memory, file or redis
	Dir      string // file backend root
	Name     string // CLI session name; browser sessions use cookie ids instead
	TTL      Duration
	RedisURL string
}

func loadSession(v *viper.Viper) SessionConfig {
	dir := stringOrDefault(v, "session.dir", "")
	if dir == "" {
		if base, err := DefaultDir(); err == nil {
			dir = filepath.Join(base, "sessions")
		}
	}
	return SessionConfig{
		Backend:  stringOrDefault(v, "session.backend", defaultSession),
		Dir:      dir,
		Name:     stringOrDefault(v, "session.name", defaultSessionName),
		TTL:      durationOrDefault(v, "session.ttl", defaultSessionTTL),
		RedisURL: stringOrDefault(v, "session.redis_url", ""),
	}
}

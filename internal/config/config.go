package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for every client surface.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	Timezone     string
	CORSOrigins  []string
	API          APIConfig
	Session      SessionConfig
	Metrics      MetricsConfig
	Log          LogConfig
}

// APIConfig controls how we talk to the scoreboard REST API.
type APIConfig struct {
	BaseURL string
	APIKey  string
	Timeout Duration
}

// LogConfig mirrors logging.Config so cmd wiring stays a field copy.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads configuration from v (config file + environment) with sensible defaults.
// A nil v reads the environment only.
func Load(v *viper.Viper) Config {
	v = bindEnv(v)
	return Config{
		Port:         stringOrDefault(v, "port", defaultPort),
		PollInterval: durationOrDefault(v, "poll_interval", defaultPollInterval),
		Provider:     stringOrDefault(v, "provider", defaultProvider),
		Timezone:     stringOrDefault(v, "timezone", ""),
		CORSOrigins:  listOrDefault(v, "cors.origins", defaultCORSOrigins),
		API: APIConfig{
			BaseURL: stringOrDefault(v, "api.base_url", defaultAPIBaseURL),
			APIKey:  stringOrDefault(v, "api.key", ""),
			Timeout: durationOrDefault(v, "api.timeout", defaultAPITimeout),
		},
		Session: loadSession(v),
		Metrics: loadMetrics(v),
		Log: LogConfig{
			Level:  stringOrDefault(v, "log.level", ""),
			Format: stringOrDefault(v, "log.format", ""),
			File:   stringOrDefault(v, "log.file", ""),
		},
	}
}

// ReadFile loads a YAML config file into v. An explicit path must exist; the
// default path (~/.config/scoreboard/config.yaml) is optional.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}
	dir, err := DefaultDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// DefaultDir is the per-user directory for config and CLI session state.
func DefaultDir() (string, error) {
	home, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "scoreboard"), nil
}

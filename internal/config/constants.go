package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envTimezone     = "SCOREBOARD_TIMEZONE"
	envAPIBaseURL   = "SCOREBOARD_API_URL"
	envAPIKey       = "SCOREBOARD_API_KEY"
	envAPITimeout   = "SCOREBOARD_API_TIMEOUT"
	envSession      = "SESSION_BACKEND"
	envSessionDir   = "SESSION_DIR"
	envSessionName  = "SESSION_NAME"
	envSessionTTL   = "SESSION_TTL"
	envRedisURL     = "REDIS_URL"
	envCORSOrigins  = "CORS_ALLOWED_ORIGINS"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envLogFile      = "LOG_FILE"

	defaultPort = "4000"
	// Live snapshots are cheap upstream; tens of seconds keeps cards fresh without hammering.
	defaultPollInterval = 30 * Duration(time.Second)
	defaultProvider     = "scoreapi"
	defaultAPIBaseURL   = "http://localhost:8000/api"
	defaultAPITimeout   = 10 * Duration(time.Second)
	defaultSession      = "file"
	defaultSessionName  = "default"
	// Browser sessions end when idle; the TTL slides on every write.
	defaultSessionTTL  = 12 * Duration(time.Hour)
	defaultCORSOrigins = "*"
	defaultMetricsPort = "9090"
	defaultServiceName = "nba-scoreboard"
)

// envBindings maps viper keys (also usable in the YAML config file) to environment variables.
var envBindings = map[string]string{
	"port":              envPort,
	"poll_interval":     envPollInterval,
	"provider":          envProvider,
	"timezone":          envTimezone,
	"api.base_url":      envAPIBaseURL,
	"api.key":           envAPIKey,
	"api.timeout":       envAPITimeout,
	"session.backend":   envSession,
	"session.dir":       envSessionDir,
	"session.name":      envSessionName,
	"session.ttl":       envSessionTTL,
	"session.redis_url": envRedisURL,
	"cors.origins":      envCORSOrigins,
	"metrics.port":      envMetricsPort,
	"metrics.enabled":   envMetricsOn,
	"metrics.otlp":      envOtelEndpoint,
	"metrics.service":   envOtelService,
	"metrics.insecure":  envOtelInsecure,
	"log.level":         envLogLevel,
	"log.format":        envLogFormat,
	"log.file":          envLogFile,
}

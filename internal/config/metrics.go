package config

import "github.com/spf13/viper"

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(v *viper.Viper) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolOrDefault(v, "metrics.enabled", true),
		Port:         stringOrDefault(v, "metrics.port", defaultMetricsPort),
		OtlpEndpoint: stringOrDefault(v, "metrics.otlp", ""),
		ServiceName:  stringOrDefault(v, "metrics.service", defaultServiceName),
		OtlpInsecure: boolOrDefault(v, "metrics.insecure", true),
	}
}

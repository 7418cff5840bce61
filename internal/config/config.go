package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	APIKey          string
	DefaultSport    string
	Timezone        string
	UpstreamTimeout Duration
	CORSOrigins     []string
	Metrics         MetricsConfig
}

// MetricsConfig controls the metrics listener and exporters.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		APIKey:          envOrDefault(envAPIKey, ""),
		DefaultSport:    envOrDefault(envDefaultSport, defaultSport),
		Timezone:        envOrDefault(envTimezone, defaultTimezone),
		UpstreamTimeout: durationEnvOrDefault(envUpstreamTimeout, defaultUpstreamTimeout),
		CORSOrigins:     listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		Metrics:         loadMetrics(),
	}
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, false),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		ServiceName:  envOrDefault(envOtelService, "live-sports-service"),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, false),
	}
}

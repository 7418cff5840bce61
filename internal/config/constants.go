package config

import "time"

const (
	envPort            = "PORT"
	envAPIKey          = "APISPORTS_KEY"
	envDefaultSport    = "DEFAULT_SPORT"
	envTimezone        = "TIMEZONE"
	envUpstreamTimeout = "UPSTREAM_TIMEOUT"
	envCORSOrigins     = "CORS_ORIGINS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "4000"
	defaultSport       = "football"
	defaultMetricsPort = "9090"
	// The reference deployment served a Central European audience; the
	// civil calendar for "today" must match it so date boundaries line up.
	defaultTimezone = "Europe/Bratislava"
	// Upstream calls are time-sensitive; a hung provider should not pin
	// the request for longer than this.
	defaultUpstreamTimeout = 10 * Duration(time.Second)
	defaultCORSOrigins     = "*"
)

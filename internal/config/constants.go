package config

import "time"

const (
	envConfigFile     = "CONFIG_FILE"
	envEnv            = "ENV"
	envPort           = "PORT"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envDatabaseDriver = "DATABASE_DRIVER"
	envDatabaseURL    = "DATABASE_URL"
	envJWTSecret      = "JWT_SECRET_KEY"
	envTokenTTL       = "ACCESS_TOKEN_TTL"
	envCORSOrigins    = "CORS_ALLOWED_ORIGINS"
	envAuthRate       = "AUTH_RATE_PER_MINUTE"
	envAuthBurst      = "AUTH_RATE_BURST"
	envDraftsBackend  = "DRAFTS_BACKEND"
	envDraftsDir      = "DRAFTS_DIR"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"

	// EnvProduction enables the production guards.
	EnvProduction = "production"

	// DevSecretKey signs tokens outside production when no key is configured.
	DevSecretKey = "dev_only_insecure_key_for_testing"

	// Draft storage backends.
	DraftsMemory = "memory"
	DraftsFS     = "fs"

	defaultEnv            = "development"
	defaultPort           = "3000"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultDatabaseDriver = "sqlite"
	defaultDatabaseURL    = "file:scorecard.db"
	defaultTokenTTL       = 7 * 24 * Duration(time.Hour)
	defaultAuthRate       = 10
	defaultAuthBurst      = 5
	defaultDraftsBackend  = DraftsMemory
	defaultDraftsDir      = "data/drafts"
	defaultMetricsPort    = "9090"
	defaultServiceName    = "the-score-card"
	defaultProdOrigin     = "https://developer.kknds.com"
)

// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv              string
	ServiceName         string
	ServiceVersion      string
	HTTPAddr            string
	DBURL               string
	CacheEnabled        bool
	CacheTTL            time.Duration
	CacheWarmInterval   time.Duration
	CORSAllowedOrigins  []string
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	AdminToken          string
	SyncBatchSize       int
	SyncMaxWorkers      int
	QualifyingPoints    int
	PprofEnabled        bool
	PprofAddr           string
	UptraceEnabled      bool
	UptraceDSN          string
	PyroscopeEnabled    bool
	PyroscopeServer     string
	PyroscopeAppName    string
	PyroscopeAuthToken  string
	PyroscopeUploadRate time.Duration
	LogLevel            logging.Level
}

// envReader reads typed values from the environment, remembering the first
// parse failure so Load can report it after a single linear pass.
type envReader struct {
	err error
}

func (r *envReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("parse %s: %w", key, err)
	}
}

func (r *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) boolean(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" || r.err != nil {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return v
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" || r.err != nil {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return v
}

func (r *envReader) integer(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" || r.err != nil {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return v
}

func Load() (Config, error) {
	var r envReader

	appEnv, err := parseAppEnv(r.str("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, err := logging.ParseLevel(r.str("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	cfg := Config{
		AppEnv:              appEnv,
		ServiceName:         r.str("APP_SERVICE_NAME", "meca-standings-api"),
		ServiceVersion:      r.str("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:            r.str("APP_HTTP_ADDR", ":8080"),
		DBURL:               r.str("DB_URL", ""),
		CacheEnabled:        r.boolean("CACHE_ENABLED", true),
		CacheTTL:            r.duration("CACHE_TTL", 5*time.Minute),
		CacheWarmInterval:   r.duration("CACHE_WARM_INTERVAL", 0),
		CORSAllowedOrigins:  splitCSV(r.str("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:         r.duration("APP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:        r.duration("APP_WRITE_TIMEOUT", 15*time.Second),
		AdminToken:          r.str("ADMIN_TOKEN", ""),
		SyncBatchSize:       r.integer("SYNC_BATCH_SIZE", 500),
		SyncMaxWorkers:      r.integer("SYNC_MAX_WORKERS", 2),
		QualifyingPoints:    r.integer("QUALIFYING_POINTS_THRESHOLD", 40),
		PprofEnabled:        r.boolean("PPROF_ENABLED", false),
		PprofAddr:           r.str("PPROF_ADDR", ":6060"),
		UptraceEnabled:      r.boolean("UPTRACE_ENABLED", false),
		UptraceDSN:          r.str("UPTRACE_DSN", ""),
		PyroscopeEnabled:    r.boolean("PYROSCOPE_ENABLED", false),
		PyroscopeServer:     r.str("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAuthToken:  r.str("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeUploadRate: r.duration("PYROSCOPE_UPLOAD_RATE", 15*time.Second),
		LogLevel:            logLevel,
	}
	cfg.PyroscopeAppName = r.str("PYROSCOPE_APP_NAME", cfg.ServiceName)
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = uptraceDSNFromOTLPHeaders(r.str("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	if r.err != nil {
		return Config{}, r.err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.CacheTTL <= 0:
		return fmt.Errorf("CACHE_TTL must be > 0")
	case c.CacheWarmInterval < 0:
		return fmt.Errorf("CACHE_WARM_INTERVAL must be >= 0")
	case len(c.CORSAllowedOrigins) == 0:
		return fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	case c.SyncBatchSize < 1:
		return fmt.Errorf("SYNC_BATCH_SIZE must be >= 1")
	case c.SyncMaxWorkers < 1 || c.SyncMaxWorkers > 4:
		return fmt.Errorf("SYNC_MAX_WORKERS must be between 1 and 4")
	case c.QualifyingPoints < 1:
		return fmt.Errorf("QUALIFYING_POINTS_THRESHOLD must be >= 1")
	case c.PprofEnabled && c.PprofAddr == "":
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	case c.UptraceEnabled && c.UptraceDSN == "":
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	case c.PyroscopeEnabled && c.PyroscopeServer == "":
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	case c.PyroscopeEnabled && c.PyroscopeAppName == "":
		return fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	case c.PyroscopeUploadRate <= 0:
		return fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	return nil
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// uptraceDSNFromOTLPHeaders pulls an uptrace-dsn value out of the standard
// OTEL_EXPORTER_OTLP_HEADERS list, so deployments that only set the OTLP
// variables still get traced.
func uptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), "\"'")
	}
	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	}
	return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
}

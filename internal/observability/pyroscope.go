package observability

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/grafana/pyroscope-go"

	"github.com/mecajames/NewMECAV2-sub004/internal/config"
	"github.com/mecajames/NewMECAV2-sub004/internal/platform/logging"
)

// InitPyroscope starts continuous profiling when enabled.
func InitPyroscope(cfg config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.PyroscopeEnabled {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
		return func() error { return nil }, nil
	}

	if strings.TrimSpace(cfg.PyroscopeServer) == "" {
		return nil, crerr.New("PYROSCOPE_SERVER_ADDRESS is required when profiling is enabled")
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.PyroscopeAppName,
		ServerAddress:   cfg.PyroscopeServer,
		AuthToken:       cfg.PyroscopeAuthToken,
		UploadRate:      cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, crerr.Wrap(err, "start pyroscope profiler")
	}

	logger.Info("pyroscope enabled",
		"server_address", cfg.PyroscopeServer,
		"application", cfg.PyroscopeAppName,
	)

	return profiler.Stop, nil
}

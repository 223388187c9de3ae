package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"code-showcase/cmd/showcase/di"
	"code-showcase/internal/config"
	"code-showcase/pkg/logger"

	"go.uber.org/zap"
)

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Container *di.Container
	Out       io.Writer // command output; logs never go here
}

// New creates a new application instance from the app.env found in configPath.
func New(configPath string, out io.Writer) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := di.NewContainer(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	l.Debug("application initialized",
		zap.String("service", cfg.Logger.ServiceName),
		zap.String("version", cfg.Logger.ServiceVersion),
		zap.String("environment", getEnvironment()),
	)

	return &App{
		Config:    cfg,
		Logger:    l,
		Container: container,
		Out:       out,
	}, nil
}

// Close flushes the logger.
func (a *App) Close() error {
	if err := a.Logger.Sync(); err != nil && !isConsoleSyncError(err) {
		return fmt.Errorf("logger sync: %w", err)
	}
	return nil
}

// isConsoleSyncError reports errors returned when syncing stdout/stderr, which are harmless.
func isConsoleSyncError(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.ENOTSUP)
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:              cfg.Logger.Level,
		Format:             cfg.Logger.Format,
		OutputPath:         cfg.Logger.OutputPath,
		SlowRequestSeconds: cfg.Logger.SlowRequestSeconds,
		EnableSampling:     cfg.Logger.EnableSampling,
		ServiceName:        cfg.Logger.ServiceName,
		ServiceVersion:     cfg.Logger.ServiceVersion,
		Environment:        getEnvironment(),
	})
}

// getEnvironment returns the application environment
func getEnvironment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}

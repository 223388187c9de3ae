package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	apperrors "code-showcase/pkg/errors"
)

// Config holds all configuration for the application
type Config struct {
	App    AppConfig
	Fetch  FetchConfig
	Logger LoggerConfig
}

// AppConfig holds configuration for the sample data server
type AppConfig struct {
	HTTPPort               string `mapstructure:"HTTP_PORT" validate:"required,numeric"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" validate:"gt=0"`
}

// FetchConfig holds configuration for the data fetch client
type FetchConfig struct {
	// BaseURL is the address relative paths are resolved against. Empty is allowed;
	// fetching then fails with ErrNoBaseURL.
	BaseURL        string `mapstructure:"FETCH_BASE_URL" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"FETCH_TIMEOUT_SECONDS" validate:"gt=0"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level              string  `mapstructure:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	Format             string  `mapstructure:"LOG_FORMAT" validate:"omitempty,oneof=json console"`
	OutputPath         string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowRequestSeconds float64 `mapstructure:"LOG_SLOW_REQUEST_SECONDS" validate:"gte=0"`
	EnableSampling     bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName        string  `mapstructure:"SERVICE_NAME" validate:"required"`
	ServiceVersion     string  `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from an app.env file in path and from environment variables.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	// Environment must be visible before defaults, which branch on APP_ENV
	v.AutomaticEnv()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config

	config.App.HTTPPort = v.GetString("HTTP_PORT")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")

	config.Fetch.BaseURL = strings.TrimSpace(v.GetString("FETCH_BASE_URL"))
	config.Fetch.TimeoutSeconds = v.GetInt("FETCH_TIMEOUT_SECONDS")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowRequestSeconds = v.GetFloat64("LOG_SLOW_REQUEST_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	v.SetDefault("FETCH_BASE_URL", "")
	v.SetDefault("FETCH_TIMEOUT_SECONDS", 10)

	// Logger defaults
	if v.GetString("APP_ENV") == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "warn")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stderr")
	v.SetDefault("LOG_SLOW_REQUEST_SECONDS", 1.0)
	v.SetDefault("SERVICE_NAME", "code-showcase")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator.ValidationErrors into a ValidationError
// naming the first offending key.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err
	}

	e := validationErrors[0]
	var msg string
	switch e.Tag() {
	case "required":
		msg = "is required"
	case "numeric":
		msg = "must be numeric"
	case "url":
		msg = "must be a valid URL"
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s]", e.Param())
	case "gt", "gte":
		msg = fmt.Sprintf("must be %s %s", e.Tag(), e.Param())
	default:
		msg = "is invalid"
	}
	return apperrors.NewValidationError(e.Field(), msg)
}

package di

import (
	"fmt"
	"time"

	"code-showcase/internal/adapter/gin/handler"
	"code-showcase/internal/config"
	"code-showcase/internal/fetch"
	"code-showcase/internal/usecase/showcase"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Showcase    *showcase.Usecase
	FetchClient *fetch.Client
	DataHandler *handler.DataHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	uc := showcase.New(l)

	client, err := NewFetchClient(cfg, l)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:      cfg,
		Logger:      l,
		Showcase:    uc,
		FetchClient: client,
		DataHandler: handler.NewDataHandler(uc, l),
	}, nil
}

// NewFetchClient builds a fetch client from the fetch and logger sections of cfg.
func NewFetchClient(cfg *config.Config, l *zap.Logger) (*fetch.Client, error) {
	client, err := fetch.New(fetch.Options{
		BaseURL:            cfg.Fetch.BaseURL,
		Timeout:            time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		SlowRequestSeconds: cfg.Logger.SlowRequestSeconds,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fetch client: %w", err)
	}
	return client, nil
}

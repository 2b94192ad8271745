package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/diogo/askgemini/internal/config"
)

// NewGenerator builds the Generator selected by cfg.Backend
func NewGenerator(ctx context.Context, cfg config.Config, apiKey string, logger *zap.Logger) (Generator, error) {
	if err := config.ValidateBackend(cfg.Backend); err != nil {
		return nil, err
	}

	opts := []ClientOption{
		WithModel(cfg.Model),
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.RequestTimeout()),
		WithLogger(logger),
	}

	if cfg.Backend == config.BackendSDK {
		return NewSDKClient(ctx, apiKey, opts...)
	}
	return NewClient(apiKey, opts...)
}

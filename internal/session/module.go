package session

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/internal/store"
)

// Module provides chat contexts.
var Module = fx.Module("session",
	fx.Provide(NewContextsProvider),
)

// NewContextsProvider creates Contexts with the configured size, backed by the scan history.
func NewContextsProvider(cfg *config.Config, logger *zap.Logger, history *store.Store) *Contexts {
	size := cfg.Store.ContextCacheSize
	if size <= 0 {
		logger.Warn("Context cache size is not configured or is invalid, defaulting to 1000",
			zap.Int("configuredSize", size))
		size = 1000
	}
	logger.Info("Creating chat context cache", zap.Int("size", size))

	return NewContexts(logger, size, history)
}

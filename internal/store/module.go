package store

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
)

// Module provides the scan history store.
var Module = fx.Module("store",
	fx.Provide(NewStore),
)

// NewStoreParams holds dependencies for NewStore.
type NewStoreParams struct {
	fx.In
	Cfg    *config.Config
	LC     fx.Lifecycle
	Logger *zap.Logger
}

// NewStore opens the history database and closes it when the app stops.
func NewStore(params NewStoreParams) (*Store, error) {
	s, err := Open(context.Background(), params.Cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	params.Logger.Info("Scan history opened", zap.String("path", s.Path()))

	params.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing scan history...")

			return s.Close()
		},
	})

	return s, nil
}

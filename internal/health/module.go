package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/commands"
	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/internal/session"
	"github.com/Raikerian/go-telegram-cardbot/internal/store"
)

// Module serves the health endpoints for the lifetime of the app.
var Module = fx.Module("health",
	fx.Invoke(RegisterServer),
)

// RegisterServerParams holds dependencies for RegisterServer.
type RegisterServerParams struct {
	fx.In

	Cfg      *config.Config
	LC       fx.Lifecycle
	Logger   *zap.Logger
	Store    *store.Store
	Contexts *session.Contexts
}

// RegisterServer listens on the configured address when the app starts.
// A port that cannot be bound fails startup.
func RegisterServer(params RegisterServerParams) {
	if params.Cfg.HTTP.Disabled {
		params.Logger.Info("Health endpoint is disabled")

		return
	}

	handler := NewHandler(params.Logger, commands.AppVersion, time.Now(), params.Store, params.Store, params.Contexts)
	srv := &http.Server{
		Addr:              params.Cfg.HTTP.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	params.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", srv.Addr, err)
			}
			params.Logger.Info("Health endpoint listening", zap.String("addr", ln.Addr().String()))

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					params.Logger.Error("Health endpoint stopped", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
)

// Module provides the card recorder.
var Module = fx.Module("sheets",
	fx.Provide(NewRecorder),
)

// NewRecorderParams holds dependencies for NewRecorder.
type NewRecorderParams struct {
	fx.In
	Cfg    *config.Config
	LC     fx.Lifecycle
	Logger *zap.Logger
}

// NewRecorder builds the Google Sheets recorder and writes the header row on
// start. When sheets are disabled a NopRecorder is returned.
func NewRecorder(params NewRecorderParams) (Recorder, error) {
	cfg := params.Cfg.Sheets
	if cfg.Disabled {
		params.Logger.Warn("Google Sheets recording is disabled")

		return NopRecorder{}, nil
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	creds, err := cfg.Credentials()
	if err != nil {
		return nil, err
	}

	svc, err := gsheets.NewService(context.Background(),
		option.WithCredentialsJSON(creds),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	recorder := NewSheetRecorder(params.Logger, svc, cfg.SpreadsheetID, cfg.SheetName, location)

	params.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return recorder.EnsureHeader(ctx)
		},
	})

	return recorder, nil
}

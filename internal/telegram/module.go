package telegram

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
)

// Module provides Telegram-related dependencies.
var Module = fx.Module("telegram",
	fx.Provide(
		NewBotAPI,
		NewClient,
		func(c *Client) Messenger { return c },
	),
)

// NewBotAPI authenticates with the Bot API. Library logs go through zap.
func NewBotAPI(cfg *config.Config, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	if cfg.Telegram.BotToken == "" {
		return nil, errors.New("telegram bot token is not set in config")
	}

	if err := tgbotapi.SetLogger(zap.NewStdLog(logger.Named("tgbotapi"))); err != nil {
		return nil, fmt.Errorf("set telegram logger: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	api.Debug = cfg.LogLevel == "debug"

	logger.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))

	return api, nil
}

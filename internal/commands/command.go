// Package commands implements the bot's slash commands.
package commands

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Command defines the interface for bot commands.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, msg *tgbotapi.Message) error
}

// NoCardReply is sent when a chat asks about a card before scanning one.
const NoCardReply = "Please send a visiting card image first."

package commands

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Raikerian/go-telegram-cardbot/internal/telegram"
)

// AppVersion is the version of the application, should be set during build time.
var AppVersion = "dev"

// VersionCommand is a command that responds with the application version.
type VersionCommand struct {
	messenger telegram.Messenger
}

// NewVersionCommand creates a new VersionCommand instance.
func NewVersionCommand(messenger telegram.Messenger) Command {
	return &VersionCommand{messenger: messenger}
}

// Name returns the name of the command.
func (c *VersionCommand) Name() string {
	return "version"
}

// Description returns the description of the command.
func (c *VersionCommand) Description() string {
	return "Displays the current version of the bot"
}

// Execute runs the command.
func (c *VersionCommand) Execute(_ context.Context, msg *tgbotapi.Message) error {
	return c.messenger.SendText(msg.Chat.ID, "Version: "+AppVersion)
}

package commands

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Raikerian/go-telegram-cardbot/internal/telegram"
)

const helpText = `Send me a photo of a visiting card and I will read it for you.

I extract the name, designation, company, phone, email, website, address, industry and services, and save them to the spreadsheet.

Send the front and back together as an album to merge both sides into one card.

After a scan, ask anything about the company, e.g. "Who are their typical customers?"

Commands:
/card - show the last scanned card
/version - show the bot version
/help - show this message`

// HelpCommand explains how to use the bot. It serves both /start and /help.
type HelpCommand struct {
	name      string
	messenger telegram.Messenger
}

// NewStartCommand creates the /start command.
func NewStartCommand(messenger telegram.Messenger) Command {
	return &HelpCommand{name: "start", messenger: messenger}
}

// NewHelpCommand creates the /help command.
func NewHelpCommand(messenger telegram.Messenger) Command {
	return &HelpCommand{name: "help", messenger: messenger}
}

// Name returns the name of the command.
func (c *HelpCommand) Name() string {
	return c.name
}

// Description returns the description of the command.
func (c *HelpCommand) Description() string {
	if c.name == "start" {
		return "Start scanning visiting cards"
	}

	return "How to use the bot"
}

// Execute runs the command.
func (c *HelpCommand) Execute(_ context.Context, msg *tgbotapi.Message) error {
	return c.messenger.SendText(msg.Chat.ID, helpText)
}

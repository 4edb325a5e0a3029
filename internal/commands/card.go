package commands

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
	"github.com/Raikerian/go-telegram-cardbot/internal/telegram"
)

// CardLookup returns the card a chat is currently asking about.
type CardLookup interface {
	Get(ctx context.Context, chatID int64) (card.Card, bool)
}

// CardCommand re-sends the chat's current card.
type CardCommand struct {
	messenger telegram.Messenger
	contexts  CardLookup
}

// NewCardCommand creates the /card command.
func NewCardCommand(messenger telegram.Messenger, contexts CardLookup) Command {
	return &CardCommand{messenger: messenger, contexts: contexts}
}

// Name returns the name of the command.
func (c *CardCommand) Name() string {
	return "card"
}

// Description returns the description of the command.
func (c *CardCommand) Description() string {
	return "Show the last scanned card"
}

// Execute runs the command.
func (c *CardCommand) Execute(ctx context.Context, msg *tgbotapi.Message) error {
	current, ok := c.contexts.Get(ctx, msg.Chat.ID)
	if !ok {
		return c.messenger.SendText(msg.Chat.ID, NoCardReply)
	}

	return c.messenger.SendMarkdown(msg.Chat.ID, telegram.FormatCard(current), telegram.FormatCardPlain(current))
}

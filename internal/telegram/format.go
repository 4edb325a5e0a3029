package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
)

// FormatCard renders the card as legacy Markdown, one "*Label*: value" line
// per field. Values are escaped so stray asterisks or underscores from OCR
// cannot break the message.
func FormatCard(c card.Card) string {
	fields := c.Fields()
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, "*"+f.Label+"*: "+tgbotapi.EscapeText(tgbotapi.ModeMarkdown, f.Value))
	}

	return strings.Join(lines, "\n")
}

// FormatCardPlain renders the card without markup, one "Label: value" line
// per field.
func FormatCardPlain(c card.Card) string {
	fields := c.Fields()
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f.Label+": "+f.Value)
	}

	return strings.Join(lines, "\n")
}

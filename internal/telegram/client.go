// Package telegram wraps the Telegram Bot API client used by the bot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	// maxMessageLength is Telegram's limit for one text message.
	maxMessageLength = 4096
	// maxDownloadBytes is the largest file the Bot API lets bots download.
	maxDownloadBytes = 20 << 20
)

// ErrFileTooLarge is returned when a download exceeds maxDownloadBytes.
var ErrFileTooLarge = errors.New("file exceeds Telegram bot download limit")

// Messenger is the subset of the Bot API the handlers use.
type Messenger interface {
	SendText(chatID int64, text string) error
	SendMarkdown(chatID int64, markdown, plain string) error
	SendTyping(chatID int64) error
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// Client implements Messenger on top of tgbotapi.
type Client struct {
	api          *tgbotapi.BotAPI
	httpClient   *http.Client
	fileEndpoint string
	logger       *zap.Logger
}

// NewClient wraps api. Files are fetched from tgbotapi.FileEndpoint.
func NewClient(api *tgbotapi.BotAPI, logger *zap.Logger) *Client {
	return &Client{
		api:          api,
		httpClient:   http.DefaultClient,
		fileEndpoint: tgbotapi.FileEndpoint,
		logger:       logger.Named("telegram"),
	}
}

// Updates starts long polling and returns the update channel.
func (c *Client) Updates(timeoutSeconds int) tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSeconds
	u.AllowedUpdates = []string{"message"}

	return c.api.GetUpdatesChan(u)
}

// StopUpdates stops long polling and closes the update channel.
func (c *Client) StopUpdates() {
	c.api.StopReceivingUpdates()
}

// Username returns the bot's username.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

// SendText sends plain text, splitting it to fit Telegram's message limit.
func (c *Client) SendText(chatID int64, text string) error {
	parts := SplitMessage(text, maxMessageLength)
	for i, part := range parts {
		if _, err := c.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			return fmt.Errorf("failed to send message part %d/%d: %w", i+1, len(parts), err)
		}
	}

	return nil
}

// SendMarkdown sends legacy Markdown as one message. plain is sent instead,
// split as needed, when markdown exceeds the message limit or Telegram cannot
// parse its entities.
func (c *Client) SendMarkdown(chatID int64, markdown, plain string) error {
	if utf8.RuneCountInString(markdown) > maxMessageLength {
		c.logger.Debug("Markdown message too long, sending plain text", zap.Int64("chatID", chatID))

		return c.SendText(chatID, plain)
	}

	msg := tgbotapi.NewMessage(chatID, markdown)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := c.api.Send(msg)
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "can't parse entities") {
		c.logger.Warn("Markdown rejected, sending plain text", zap.Int64("chatID", chatID), zap.String("reason", apiErr.Message))

		return c.SendText(chatID, plain)
	}

	return fmt.Errorf("failed to send markdown message: %w", err)
}

// SendTyping shows the typing indicator for a few seconds.
func (c *Client) SendTyping(chatID int64) error {
	_, err := c.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	return err
}

// Download fetches a file sent to the bot.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	file, err := c.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}
	if file.FileSize > maxDownloadBytes {
		return nil, ErrFileTooLarge
	}

	url := fmt.Sprintf(c.fileEndpoint, c.api.Token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file %s: http %d", fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileID, err)
	}
	if len(data) > maxDownloadBytes {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

// SplitMessage breaks content into parts of at most limit runes, preferring
// to split at the last newline, then the last space, within each part.
func SplitMessage(content string, limit int) []string {
	runes := []rune(strings.TrimSpace(content))
	if len(runes) == 0 {
		return nil
	}

	var parts []string
	for len(runes) > limit {
		splitAt := lastIndex(runes[:limit], '\n')
		if splitAt <= 0 {
			splitAt = lastIndex(runes[:limit], ' ')
		}
		if splitAt <= 0 {
			splitAt = limit
		}

		if part := strings.TrimSpace(string(runes[:splitAt])); part != "" {
			parts = append(parts, part)
		}
		runes = []rune(strings.TrimSpace(string(runes[splitAt:])))
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}

	return parts
}

func lastIndex(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}

	return -1
}

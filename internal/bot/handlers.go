package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/commands"
	"github.com/Raikerian/go-telegram-cardbot/internal/store"
	"github.com/Raikerian/go-telegram-cardbot/internal/telegram"
)

// HandleUpdate dispatches one update. Work runs asynchronously.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID

	switch {
	case len(msg.Photo) > 0:
		b.handleImage(msg, largestPhoto(msg.Photo).FileID)
	case msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/"):
		b.handleImage(msg, msg.Document.FileID)
	case msg.IsCommand():
		b.track("command", chatID, func(ctx context.Context) { b.handleCommand(ctx, msg) })
	case msg.Text != "":
		b.track("followup", chatID, func(ctx context.Context) { b.handleFollowup(ctx, msg) })
	default:
		b.logger.Debug("Ignoring unsupported message", zap.Int64("chatID", chatID), zap.Int("messageID", msg.MessageID))
	}
}

func (b *Bot) handleImage(msg *tgbotapi.Message, fileID string) {
	chatID := msg.Chat.ID

	if msg.MediaGroupID != "" {
		if !b.albums.Add(msg.MediaGroupID, albumPhoto{chatID: chatID, fileID: fileID}) {
			b.logger.Warn("Dropping album photo received during shutdown", zap.Int64("chatID", chatID))
		}

		return
	}

	b.track("image", chatID, func(ctx context.Context) { b.processImages(ctx, chatID, []string{fileID}) })
}

func (b *Bot) flushAlbum(groupID string, photos []albumPhoto) {
	chatID := photos[0].chatID
	fileIDs := make([]string, 0, len(photos))
	for _, p := range photos {
		fileIDs = append(fileIDs, p.fileID)
	}

	b.logger.Debug("Album complete", zap.String("mediaGroupID", groupID), zap.Int("images", len(fileIDs)))
	b.track("album", chatID, func(ctx context.Context) { b.processImages(ctx, chatID, fileIDs) })
}

// processImages scans the images as one card, records it and replies with it.
func (b *Bot) processImages(ctx context.Context, chatID int64, fileIDs []string) {
	logger := b.logger.With(zap.Int64("chatID", chatID), zap.Int("images", len(fileIDs)))

	if err := b.messenger.SendText(chatID, AckReply); err != nil {
		logger.Warn("Failed to acknowledge image", zap.Error(err))
	}

	stopTyping := b.keepTyping(ctx, chatID)
	defer stopTyping()

	images := make([][]byte, 0, len(fileIDs))
	for _, fileID := range fileIDs {
		data, err := b.messenger.Download(ctx, fileID)
		if err != nil {
			logger.Error("Failed to download image", zap.String("fileID", fileID), zap.Error(err))
			b.reply(chatID, ErrorReply)

			return
		}
		images = append(images, data)
	}

	result, err := b.scanner.Scan(ctx, images...)
	if err != nil {
		logger.Error("Failed to scan card", zap.Error(err))
		b.reply(chatID, ErrorReply)

		return
	}

	b.contexts.Set(chatID, result.Card)

	now := b.now()
	if err := b.recorder.Append(ctx, now, chatID, result.Card); err != nil {
		logger.Error("Failed to append card to sheet", zap.Error(err))
	}
	scan := &store.Scan{ChatID: chatID, Card: result.Card, Text: result.Text, Images: len(images), CreatedAt: now}
	if err := b.history.SaveScan(ctx, scan); err != nil {
		logger.Error("Failed to save scan history", zap.Error(err))
	}

	if err := b.messenger.SendMarkdown(chatID, telegram.FormatCard(result.Card), telegram.FormatCardPlain(result.Card)); err != nil {
		logger.Error("Failed to send card", zap.Error(err))

		return
	}
	logger.Info("Card scanned", zap.String("scanID", scan.ID), zap.String("company", result.Card.Company))
}

func (b *Bot) handleFollowup(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	current, ok := b.contexts.Get(ctx, chatID)
	if !ok {
		b.reply(chatID, commands.NoCardReply)

		return
	}

	stopTyping := b.keepTyping(ctx, chatID)
	answer := b.advisor.Answer(ctx, current, msg.Text)
	stopTyping()

	b.reply(chatID, answer)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	name := msg.Command()

	cmd, ok := b.cmdManager.GetCommand(name)
	if !ok {
		b.logger.Debug("Ignoring unknown command", zap.String("commandName", name), zap.Int64("chatID", msg.Chat.ID))

		return
	}

	b.logger.Info("Received command", zap.String("commandName", name), zap.Int64("chatID", msg.Chat.ID))
	if err := cmd.Execute(ctx, msg); err != nil {
		b.logger.Error("Error executing command", zap.String("commandName", name), zap.Error(err))
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.messenger.SendText(chatID, text); err != nil {
		b.logger.Error("Failed to send reply", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

// keepTyping shows the typing indicator until the returned func is called.
func (b *Bot) keepTyping(ctx context.Context, chatID int64) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()

		for {
			if err := b.messenger.SendTyping(chatID); err != nil {
				b.logger.Debug("Failed to send typing indicator", zap.Int64("chatID", chatID), zap.Error(err))
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// largestPhoto returns the highest resolution size of a photo.
func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height >= best.Width*best.Height {
			best = s
		}
	}

	return best
}

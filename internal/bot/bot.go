// Package bot routes Telegram updates to the card scanning pipeline.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
	"github.com/Raikerian/go-telegram-cardbot/internal/commands"
	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/internal/scanner"
	"github.com/Raikerian/go-telegram-cardbot/internal/sheets"
	"github.com/Raikerian/go-telegram-cardbot/internal/store"
	"github.com/Raikerian/go-telegram-cardbot/internal/telegram"
	"github.com/Raikerian/go-telegram-cardbot/pkg/util"
)

// Replies sent while processing a card.
const (
	AckReply   = "📸 Image received & analyzing..."
	ErrorReply = "Sorry, I couldn't read that card. Please try again."
)

// typingInterval keeps the indicator alive; Telegram clears it after ~5s.
const typingInterval = 4 * time.Second

// UpdateSource delivers incoming updates.
type UpdateSource interface {
	Updates(timeoutSeconds int) tgbotapi.UpdatesChannel
	StopUpdates()
}

// CardScanner turns card images into a card.
type CardScanner interface {
	Scan(ctx context.Context, images ...[]byte) (scanner.Result, error)
}

// FollowupAdvisor answers questions about a card's company.
type FollowupAdvisor interface {
	Answer(ctx context.Context, c card.Card, question string) string
}

// CardContexts tracks the card each chat is asking about.
type CardContexts interface {
	Set(chatID int64, c card.Card)
	Get(ctx context.Context, chatID int64) (card.Card, bool)
}

// ScanHistory persists completed scans.
type ScanHistory interface {
	SaveScan(ctx context.Context, scan *store.Scan) error
}

// NewBotParameters holds dependencies for NewBot.
type NewBotParameters struct {
	fx.In

	Cfg        *config.Config
	Logger     *zap.Logger
	Source     UpdateSource
	Messenger  telegram.Messenger
	API        commands.Requester
	CmdManager *commands.CommandManager
	Scanner    CardScanner
	Advisor    FollowupAdvisor
	Contexts   CardContexts
	Recorder   sheets.Recorder
	History    ScanHistory
}

// Bot represents the Telegram bot.
type Bot struct {
	logger      *zap.Logger
	source      UpdateSource
	messenger   telegram.Messenger
	api         commands.Requester
	cmdManager  *commands.CommandManager
	scanner     CardScanner
	advisor     FollowupAdvisor
	contexts    CardContexts
	recorder    sheets.Recorder
	history     ScanHistory
	pollTimeout int
	albums      *util.Batcher[string, albumPhoto]
	now         func() time.Time

	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	stopping bool
	wg       sync.WaitGroup
}

// albumPhoto is one image of a media group waiting for its siblings.
type albumPhoto struct {
	chatID int64
	fileID string
}

// NewBot creates a new Bot.
func NewBot(params NewBotParameters) (*Bot, error) {
	if params.Cfg == nil {
		return nil, fmt.Errorf("config provided to NewBot is nil")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger provided to NewBot is nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		logger:      params.Logger.Named("bot"),
		source:      params.Source,
		messenger:   params.Messenger,
		api:         params.API,
		cmdManager:  params.CmdManager,
		scanner:     params.Scanner,
		advisor:     params.Advisor,
		contexts:    params.Contexts,
		recorder:    params.Recorder,
		history:     params.History,
		pollTimeout: params.Cfg.Telegram.PollTimeoutSeconds,
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
	}
	b.albums = util.NewBatcher(time.Duration(params.Cfg.Telegram.AlbumWindowMS)*time.Millisecond, b.flushAlbum)

	return b, nil
}

// Start registers the command menu and starts consuming updates.
func (b *Bot) Start(_ context.Context) error {
	if err := b.cmdManager.RegisterCommands(b.api); err != nil {
		// The bot still answers commands without the menu.
		b.logger.Warn("Failed to register bot commands", zap.Error(err))
	}

	updates := b.source.Updates(b.pollTimeout)
	go func() {
		for update := range updates {
			b.HandleUpdate(update)
		}
	}()

	b.logger.Info("Bot is polling for updates", zap.Int("pollTimeoutSeconds", b.pollTimeout))

	return nil
}

// Stop stops polling, flushes buffered albums and waits for in-flight
// handlers. Handlers still running when ctx expires are cancelled.
func (b *Bot) Stop(ctx context.Context) error {
	b.logger.Info("Stopping bot")

	b.source.StopUpdates()
	b.albums.Stop()

	b.mu.Lock()
	b.stopping = true
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	defer b.cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		b.logger.Warn("Shutdown deadline reached, cancelling in-flight handlers")
		b.cancel()
		<-done

		return ctx.Err()
	}
}

// track runs fn on its own goroutine unless the bot is shutting down.
func (b *Bot) track(name string, chatID int64, fn func(ctx context.Context)) {
	b.mu.Lock()
	if b.stopping {
		b.mu.Unlock()
		b.logger.Warn("Dropping update received during shutdown", zap.String("handler", name), zap.Int64("chatID", chatID))

		return
	}
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Handler panicked", zap.String("handler", name), zap.Int64("chatID", chatID), zap.Any("panic", r))
			}
		}()

		fn(b.ctx)
	}()
}

// Package session remembers the card each chat is currently asking about.
package session

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
	"github.com/Raikerian/go-telegram-cardbot/internal/store"
)

// History loads the last card recorded for a chat.
type History interface {
	LatestForChat(ctx context.Context, chatID int64) (*store.Scan, error)
}

// Contexts holds the current card per chat in a bounded LRU cache, falling
// back to the scan history after eviction or a restart.
type Contexts struct {
	logger  *zap.Logger
	cache   *lru.Cache[int64, card.Card]
	history History
}

// NewContexts creates a Contexts with room for size chats. history may be nil.
func NewContexts(logger *zap.Logger, size int, history History) *Contexts {
	cache, err := lru.New[int64, card.Card](size)
	if err != nil {
		// Only possible with a non-positive size, which is a programming error.
		panic(err)
	}

	return &Contexts{
		logger:  logger.Named("contexts"),
		cache:   cache,
		history: history,
	}
}

// Set makes c the current card of the chat.
func (c *Contexts) Set(chatID int64, current card.Card) {
	c.cache.Add(chatID, current)
}

// Get returns the current card of the chat.
func (c *Contexts) Get(ctx context.Context, chatID int64) (card.Card, bool) {
	if current, ok := c.cache.Get(chatID); ok {
		return current, true
	}
	if c.history == nil {
		return card.Card{}, false
	}

	scan, err := c.history.LatestForChat(ctx, chatID)
	if err != nil {
		c.logger.Warn("Failed to restore chat context from history", zap.Int64("chatID", chatID), zap.Error(err))

		return card.Card{}, false
	}
	if scan == nil {
		return card.Card{}, false
	}

	c.logger.Debug("Restored chat context from history", zap.Int64("chatID", chatID), zap.String("scanID", scan.ID))
	c.cache.Add(chatID, scan.Card)

	return scan.Card, true
}

// Len returns the number of cached chats.
func (c *Contexts) Len() int {
	return c.cache.Len()
}

package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/internal/llm"
)

// Advisor answers follow-up questions about the company on a card.
type Advisor struct {
	logger  *zap.Logger
	ai      llm.AIProvider
	timeout time.Duration
}

// NewAdvisor creates an Advisor.
func NewAdvisor(logger *zap.Logger, cfg *config.Config, ai llm.AIProvider) *Advisor {
	return &Advisor{
		logger:  logger.Named("advisor"),
		ai:      ai,
		timeout: time.Duration(cfg.LLM.FollowupTimeoutSeconds) * time.Second,
	}
}

// Answer returns the model's answer, or FollowupUnavailable on failure.
func (a *Advisor) Answer(ctx context.Context, c card.Card, question string) string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cardContext := fmt.Sprintf(followupContextTemplate, c.Company, c.Industry, c.Services)

	resp, err := a.ai.GetChatCompletion(ctx, openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(followupPromptTemplate, cardContext, question)},
		},
	})
	if err != nil {
		a.logger.Warn("Follow-up answer failed", zap.String("company", c.Company), zap.Error(err))

		return FollowupUnavailable
	}

	return llm.Content(resp)
}

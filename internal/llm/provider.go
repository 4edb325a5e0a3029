package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/pkg/pricing"
)

// ErrEmptyResponse is returned when the model produced no content.
var ErrEmptyResponse = errors.New("LLM returned empty response")

// AIProvider defines the interface for interacting with a chat completion service.
type AIProvider interface {
	GetChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// NewProvider creates a new OpenAI-compatible AIProvider.
func NewProvider(logger *zap.Logger, cfg *config.Config, client *openai.Client, pricingService pricing.Service) AIProvider {
	return &provider{
		logger:         logger.Named("llm_provider"),
		defaultModel:   cfg.LLM.Model,
		client:         client,
		pricingService: pricingService,
	}
}

type provider struct {
	logger         *zap.Logger
	defaultModel   string
	client         *openai.Client
	pricingService pricing.Service
}

// GetChatCompletion sends the request, filling in the default model, and
// rejects responses without content.
func (p *provider) GetChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = p.defaultModel
	}

	p.logger.Debug("Sending chat completion request",
		zap.String("model", req.Model),
		zap.Int("messageCount", len(req.Messages)),
	)

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		p.logger.Warn("Chat completion request failed", zap.String("model", req.Model), zap.Error(err))

		return nil, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		p.logger.Warn("LLM returned an empty response", zap.String("model", req.Model), zap.Int("choices", len(resp.Choices)))

		return nil, ErrEmptyResponse
	}

	fields := []zap.Field{
		zap.String("model", req.Model),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
		zap.Int("totalTokens", resp.Usage.TotalTokens),
	}
	if cost, costErr := p.pricingService.Cost(req.Model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens); costErr == nil {
		fields = append(fields, zap.Float64("estimatedCostUSD", cost))
	} else {
		fields = append(fields, zap.String("costCalculationError", costErr.Error()))
	}
	p.logger.Info("Received chat completion", fields...)

	return &resp, nil
}

// Content returns the text of the first choice.
func Content(resp *openai.ChatCompletionResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}

	return resp.Choices[0].Message.Content
}

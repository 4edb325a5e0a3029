// Package llm provides the OpenAI-compatible chat completion client and Fx modules.
package llm

import (
	"errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/pkg/pricing"
)

// Module provides LLM-related dependencies.
var Module = fx.Module("llm",
	fx.Provide(
		NewClient,
		NewPricingService,
		NewProvider,
	),
)

// NewClient creates an OpenAI client pointed at the configured base URL.
func NewClient(cfg *config.Config, logger *zap.Logger) (*openai.Client, error) {
	if cfg.LLM.APIKey == "" {
		logger.Error("LLM API key is not configured")

		return nil, errors.New("LLM API key (config.LLM.APIKey) is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.LLM.APIKey)
	clientConfig.BaseURL = cfg.LLM.BaseURL

	logger.Info("LLM client created", zap.String("baseURL", cfg.LLM.BaseURL), zap.String("model", cfg.LLM.Model))

	return openai.NewClientWithConfig(clientConfig), nil
}

// NewPricingService creates the model pricing service.
func NewPricingService(cfg *config.Config, logger *zap.Logger) pricing.Service {
	service := pricing.NewService(cfg.LLM.PricingFile)
	logger.Debug("Pricing service created", zap.Strings("models", service.Models()))

	return service
}

// Package scanner turns card images into cards and answers questions about them.
package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/internal/llm"
)

// Extractor infers the descriptive card fields from OCR text with a language model.
type Extractor struct {
	logger      *zap.Logger
	ai          llm.AIProvider
	temperature float32
	timeout     time.Duration
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *zap.Logger, cfg *config.Config, ai llm.AIProvider) *Extractor {
	return &Extractor{
		logger:      logger.Named("extractor"),
		ai:          ai,
		temperature: requestTemperature(cfg.LLM.ExtractTemperature),
		timeout:     time.Duration(cfg.LLM.ExtractTimeoutSeconds) * time.Second,
	}
}

// Extract never fails: any model or decoding error yields details with
// every field set to card.NotFound.
func (e *Extractor) Extract(ctx context.Context, text string) card.Details {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.ai.GetChatCompletion(ctx, openai.ChatCompletionRequest{
		Temperature: e.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extractPromptTemplate, text)},
		},
	})
	if err != nil {
		e.logger.Warn("Detail extraction failed", zap.Error(err))

		return card.UnknownDetails()
	}

	var raw map[string]any
	if err := llm.DecodeJSON(llm.Content(resp), &raw); err != nil {
		e.logger.Warn("Detail extraction returned invalid JSON", zap.Error(err))

		return card.UnknownDetails()
	}

	return card.Details{
		Name:        field(raw, card.LabelName),
		Designation: field(raw, card.LabelDesignation),
		Company:     field(raw, card.LabelCompany),
		Address:     field(raw, card.LabelAddress),
		Industry:    field(raw, card.LabelIndustry),
		Services:    field(raw, card.LabelServices),
	}
}

// field looks a key up exactly, then case-insensitively, and renders the
// value as display text.
func field(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok {
		for k, candidate := range raw {
			if strings.EqualFold(k, key) {
				v, ok = candidate, true

				break
			}
		}
	}
	if !ok {
		return card.NotFound
	}

	return stringify(v)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return card.NotFound
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(stringify(item)); s != "" && s != card.NotFound {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return card.NotFound
		}

		return strings.Join(parts, ", ")
	case map[string]any:
		encoded, err := json.Marshal(t)
		if err != nil {
			return card.NotFound
		}

		return string(encoded)
	default:
		return fmt.Sprint(t)
	}
}

// requestTemperature maps the configured value onto the request field.
// go-openai omits a zero temperature from the request, so 0 is sent as the
// smallest positive float instead.
func requestTemperature(configured *float32) float32 {
	t := config.DefaultExtractTemperature
	if configured != nil {
		t = *configured
	}
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}

	return t
}

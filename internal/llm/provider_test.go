package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
	"github.com/Raikerian/go-telegram-cardbot/pkg/pricing"
)

func newTestServer(t *testing.T, handler func(req openai.ChatCompletionRequest) (int, any)) (*httptest.Server, *[]openai.ChatCompletionRequest) {
	t.Helper()
	var seen []openai.ChatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req)

		status, body := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	return srv, &seen
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{LLM: config.LLMConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "llama3-70b-8192",
	}}
}

func newTestProvider(t *testing.T, cfg *config.Config) AIProvider {
	t.Helper()
	client, err := NewClient(cfg, zap.NewNop())
	require.NoError(t, err)

	return NewProvider(zap.NewNop(), cfg, client, pricing.NewService(""))
}

func TestProvider_DefaultsModel(t *testing.T) {
	srv, seen := newTestServer(t, func(req openai.ChatCompletionRequest) (int, any) {
		return http.StatusOK, openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "hello"}}},
			Usage:   openai.Usage{PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12},
		}
	})

	p := newTestProvider(t, testConfig(srv.URL+"/v1"))
	resp, err := p.GetChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "hi"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", Content(resp))
	require.Len(t, *seen, 1)
	assert.Equal(t, "llama3-70b-8192", (*seen)[0].Model)
}

func TestProvider_EmptyResponse(t *testing.T) {
	srv, _ := newTestServer(t, func(openai.ChatCompletionRequest) (int, any) {
		return http.StatusOK, openai.ChatCompletionResponse{}
	})

	p := newTestProvider(t, testConfig(srv.URL+"/v1"))
	_, err := p.GetChatCompletion(context.Background(), openai.ChatCompletionRequest{Model: "custom"})

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestProvider_HTTPError(t *testing.T) {
	srv, _ := newTestServer(t, func(openai.ChatCompletionRequest) (int, any) {
		return http.StatusTooManyRequests, map[string]any{"error": map[string]any{"message": "rate limited", "type": "rate_limit"}}
	})

	p := newTestProvider(t, testConfig(srv.URL+"/v1"))
	_, err := p.GetChatCompletion(context.Background(), openai.ChatCompletionRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.Config{}, zap.NewNop())
	assert.Error(t, err)
}

func TestContent(t *testing.T) {
	assert.Empty(t, Content(nil))
	assert.Empty(t, Content(&openai.ChatCompletionResponse{}))
}

func TestModule(t *testing.T) {
	app := fxtest.New(t,
		fx.Supply(testConfig("http://127.0.0.1:0/v1"), zap.NewNop()),
		Module,
		fx.Invoke(func(client *openai.Client, pricingService pricing.Service, provider AIProvider) {
			assert.NotNil(t, client)
			assert.NotNil(t, pricingService)
			assert.NotNil(t, provider)
		}),
	)

	app.RequireStart()
	app.RequireStop()
}

// Package test provides testify mocks for the interfaces shared across packages.
package test

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/mock"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
	"github.com/Raikerian/go-telegram-cardbot/internal/ocr"
)

// T is the subset of *testing.T the mock constructors need.
type T interface {
	mock.TestingT
	Cleanup(func())
}

// MockAIProvider mocks llm.AIProvider.
type MockAIProvider struct {
	mock.Mock
}

// NewMockAIProvider creates a MockAIProvider that asserts its expectations on cleanup.
func NewMockAIProvider(t T) *MockAIProvider {
	m := &MockAIProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAIProvider) GetChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	ret := m.Called(ctx, req)
	resp, _ := ret.Get(0).(*openai.ChatCompletionResponse)

	return resp, ret.Error(1)
}

// Reply builds a completion response with a single choice.
func Reply(content string) *openai.ChatCompletionResponse {
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
	}
}

// MockEngine mocks ocr.Engine.
type MockEngine struct {
	mock.Mock
}

// NewMockEngine creates a MockEngine that asserts its expectations on cleanup.
func NewMockEngine(t T) *MockEngine {
	m := &MockEngine{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEngine) Name() string { return "mock" }

func (m *MockEngine) Recognize(ctx context.Context, image []byte) (ocr.Result, error) {
	ret := m.Called(ctx, image)

	return ret.Get(0).(ocr.Result), ret.Error(1)
}

// MockMessenger mocks telegram.Messenger.
type MockMessenger struct {
	mock.Mock
}

// NewMockMessenger creates a MockMessenger that asserts its expectations on cleanup.
func NewMockMessenger(t T) *MockMessenger {
	m := &MockMessenger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMessenger) SendText(chatID int64, text string) error {
	return m.Called(chatID, text).Error(0)
}

func (m *MockMessenger) SendMarkdown(chatID int64, markdown, plain string) error {
	return m.Called(chatID, markdown, plain).Error(0)
}

func (m *MockMessenger) SendTyping(chatID int64) error {
	return m.Called(chatID).Error(0)
}

func (m *MockMessenger) Download(ctx context.Context, fileID string) ([]byte, error) {
	ret := m.Called(ctx, fileID)
	data, _ := ret.Get(0).([]byte)

	return data, ret.Error(1)
}

// MockRecorder mocks sheets.Recorder.
type MockRecorder struct {
	mock.Mock
}

// NewMockRecorder creates a MockRecorder that asserts its expectations on cleanup.
func NewMockRecorder(t T) *MockRecorder {
	m := &MockRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRecorder) EnsureHeader(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRecorder) Append(ctx context.Context, at time.Time, chatID int64, c card.Card) error {
	return m.Called(ctx, at, chatID, c).Error(0)
}

// MockCommand mocks commands.Command.
type MockCommand struct {
	mock.Mock
}

// NewMockCommand creates a MockCommand that asserts its expectations on cleanup.
func NewMockCommand(t T) *MockCommand {
	m := &MockCommand{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCommand) Name() string {
	return m.Called().String(0)
}

func (m *MockCommand) Description() string {
	return m.Called().String(0)
}

func (m *MockCommand) Execute(ctx context.Context, msg *tgbotapi.Message) error {
	return m.Called(ctx, msg).Error(0)
}

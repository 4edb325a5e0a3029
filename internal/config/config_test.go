package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "TELEGRAM_BOT_TOKEN", "GROQ_API_KEY", "LLM_BASE_URL", "LLM_MODEL",
		"GOOGLE_SHEET_ID", "GOOGLE_CREDENTIALS_FILE", "GOOGLE_CREDENTIALS_BASE64", "CARDBOT_DB", "HTTP_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadConfig_FromYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
log_level: debug
telegram:
  bot_token: "tg-token"
  album_window_ms: 500
llm:
  api_key: "llm-key"
  model: "llama-3.3-70b-versatile"
sheets:
  spreadsheet_id: "sheet-123"
  sheet_name: "Leads"
store:
  path: "/var/lib/cardbot/history.db"
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "tg-token", cfg.Telegram.BotToken)
	assert.Equal(t, 500, cfg.Telegram.AlbumWindowMS)
	assert.Equal(t, 60, cfg.Telegram.PollTimeoutSeconds)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	require.NotNil(t, cfg.LLM.ExtractTemperature)
	assert.InDelta(t, 0.2, *cfg.LLM.ExtractTemperature, 1e-6)
	assert.Equal(t, 20, cfg.LLM.ExtractTimeoutSeconds)
	assert.Equal(t, 15, cfg.LLM.FollowupTimeoutSeconds)
	assert.Equal(t, "Leads", cfg.Sheets.SheetName)
	assert.Equal(t, "Asia/Kolkata", cfg.Sheets.Timezone)
	assert.Equal(t, []string{"eng"}, cfg.OCR.Languages)
	assert.Equal(t, "/var/lib/cardbot/history.db", cfg.Store.Path)
	assert.Equal(t, 1000, cfg.Store.ContextCacheSize)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.False(t, cfg.HTTP.Disabled)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  bot_token: "file-token"
llm:
  api_key: "file-key"
sheets:
  spreadsheet_id: "file-sheet"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("GOOGLE_SHEET_ID", "env-sheet")
	t.Setenv("LLM_MODEL", "mixtral-8x7b-32768")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9090")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "env-sheet", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "mixtral-8x7b-32768", cfg.LLM.Model)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
}

func TestLoadConfig_MissingFileUsesEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("GOOGLE_SHEET_ID", "env-sheet")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "cardbot.db", cfg.Store.Path)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing bot token",
			body:    "llm:\n  api_key: k\nsheets:\n  spreadsheet_id: s\n",
			wantErr: "telegram bot token",
		},
		{
			name:    "missing api key",
			body:    "telegram:\n  bot_token: t\nsheets:\n  spreadsheet_id: s\n",
			wantErr: "LLM API key",
		},
		{
			name:    "missing spreadsheet",
			body:    "telegram:\n  bot_token: t\nllm:\n  api_key: k\n",
			wantErr: "spreadsheet ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := config.LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_SheetsDisabledSkipsSpreadsheetCheck(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "telegram:\n  bot_token: t\nllm:\n  api_key: k\nsheets:\n  disabled: true\n")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Sheets.Disabled)
}

func TestLoad_SkipsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "k")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Telegram.BotToken)
	assert.Equal(t, "k", cfg.LLM.APIKey)
	assert.Equal(t, "cardbot.db", cfg.Store.Path)
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)
	_, err := config.LoadConfig(writeConfig(t, "telegram: [unterminated"))
	require.Error(t, err)
}

func TestSheetsConfig_Credentials(t *testing.T) {
	payload := []byte(`{"type":"service_account"}`)

	t.Run("base64 wins over file", func(t *testing.T) {
		cfg := config.SheetsConfig{
			CredentialsBase64: base64.StdEncoding.EncodeToString(payload),
			CredentialsFile:   filepath.Join(t.TempDir(), "missing.json"),
		}
		got, err := cfg.Credentials()
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		require.NoError(t, os.WriteFile(path, payload, 0o600))

		cfg := config.SheetsConfig{CredentialsFile: path}
		got, err := cfg.Credentials()
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("missing", func(t *testing.T) {
		cfg := config.SheetsConfig{CredentialsFile: filepath.Join(t.TempDir(), "missing.json")}
		_, err := cfg.Credentials()
		assert.ErrorIs(t, err, config.ErrMissingCredentials)
	})

	t.Run("bad base64", func(t *testing.T) {
		cfg := config.SheetsConfig{CredentialsBase64: "%%%"}
		_, err := cfg.Credentials()
		assert.Error(t, err)
	})
}

func TestLoadConfig_ExplicitZeroTemperature(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
telegram:
  bot_token: "tg-token"
llm:
  api_key: "llm-key"
  extract_temperature: 0
sheets:
  disabled: true
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.LLM.ExtractTemperature)
	assert.Zero(t, *cfg.LLM.ExtractTemperature)
}

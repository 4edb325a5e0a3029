// Package config loads the bot configuration from YAML and the environment.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// TelegramConfig stores Telegram specific configurations.
type TelegramConfig struct {
	BotToken           string `yaml:"bot_token"`
	PollTimeoutSeconds int    `yaml:"poll_timeout_seconds"`
	AlbumWindowMS      int    `yaml:"album_window_ms"`
}

// LLMConfig stores settings for the OpenAI-compatible chat completion API.
// ExtractTemperature is a pointer so an explicit 0 survives defaulting.
type LLMConfig struct {
	APIKey                 string   `yaml:"api_key"`
	BaseURL                string   `yaml:"base_url"`
	Model                  string   `yaml:"model"`
	ExtractTemperature     *float32 `yaml:"extract_temperature"`
	ExtractTimeoutSeconds  int      `yaml:"extract_timeout_seconds"`
	FollowupTimeoutSeconds int      `yaml:"followup_timeout_seconds"`
	PricingFile            string   `yaml:"pricing_file"`
}

// SheetsConfig stores Google Sheets settings.
type SheetsConfig struct {
	SpreadsheetID     string `yaml:"spreadsheet_id"`
	SheetName         string `yaml:"sheet_name"`
	CredentialsFile   string `yaml:"credentials_file"`
	CredentialsBase64 string `yaml:"credentials_base64"`
	Timezone          string `yaml:"timezone"`
	Disabled          bool   `yaml:"disabled"`
}

// OCRConfig stores OCR engine settings.
type OCRConfig struct {
	Languages []string `yaml:"languages"`
}

// StoreConfig stores scan history and chat context settings.
type StoreConfig struct {
	Path             string `yaml:"path"`
	ContextCacheSize int    `yaml:"context_cache_size"`
}

// HTTPConfig stores the health endpoint settings.
type HTTPConfig struct {
	Addr     string `yaml:"addr"`
	Disabled bool   `yaml:"disabled"`
}

// Config stores the application configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	LLM      LLMConfig      `yaml:"llm"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	OCR      OCRConfig      `yaml:"ocr"`
	Store    StoreConfig    `yaml:"store"`
	HTTP     HTTPConfig     `yaml:"http"`
	LogLevel string         `yaml:"log_level"`
}

// DefaultExtractTemperature is used when llm.extract_temperature is unset.
const DefaultExtractTemperature float32 = 0.2

// ErrMissingCredentials is returned when neither inline nor file based
// service account credentials are available.
var ErrMissingCredentials = errors.New("google service account credentials not found")

// LoadConfig loads and validates the configuration from the given file path.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := Load(filePath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads the configuration without validating it, for tools that only
// need part of it. A missing file is not an error: the environment alone may
// configure the bot. Variables from a .env file in the working directory are
// loaded first and never override variables already set in the process
// environment.
func Load(filePath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config

	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", filePath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", filePath, err)
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set(&c.LogLevel, "LOG_LEVEL")
	set(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	set(&c.LLM.APIKey, "GROQ_API_KEY")
	set(&c.LLM.BaseURL, "LLM_BASE_URL")
	set(&c.LLM.Model, "LLM_MODEL")
	set(&c.Sheets.SpreadsheetID, "GOOGLE_SHEET_ID")
	set(&c.Sheets.CredentialsFile, "GOOGLE_CREDENTIALS_FILE")
	set(&c.Sheets.CredentialsBase64, "GOOGLE_CREDENTIALS_BASE64")
	set(&c.Store.Path, "CARDBOT_DB")
	set(&c.HTTP.Addr, "HTTP_ADDR")
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Telegram.PollTimeoutSeconds <= 0 {
		c.Telegram.PollTimeoutSeconds = 60
	}
	if c.Telegram.AlbumWindowMS <= 0 {
		c.Telegram.AlbumWindowMS = 1500
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "llama3-70b-8192"
	}
	if c.LLM.ExtractTemperature == nil {
		t := DefaultExtractTemperature
		c.LLM.ExtractTemperature = &t
	}
	if c.LLM.ExtractTimeoutSeconds <= 0 {
		c.LLM.ExtractTimeoutSeconds = 20
	}
	if c.LLM.FollowupTimeoutSeconds <= 0 {
		c.LLM.FollowupTimeoutSeconds = 15
	}
	if c.LLM.PricingFile == "" {
		c.LLM.PricingFile = "models.json"
	}
	if c.Sheets.CredentialsFile == "" {
		c.Sheets.CredentialsFile = "credentials.json"
	}
	if c.Sheets.Timezone == "" {
		c.Sheets.Timezone = "Asia/Kolkata"
	}
	if len(c.OCR.Languages) == 0 {
		c.OCR.Languages = []string{"eng"}
	}
	if c.Store.Path == "" {
		c.Store.Path = "cardbot.db"
	}
	if c.Store.ContextCacheSize <= 0 {
		c.Store.ContextCacheSize = 1000
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return errors.New("telegram bot token is not set (telegram.bot_token or TELEGRAM_BOT_TOKEN)")
	}
	if c.LLM.APIKey == "" {
		return errors.New("LLM API key is not set (llm.api_key or GROQ_API_KEY)")
	}
	if !c.Sheets.Disabled && c.Sheets.SpreadsheetID == "" {
		return errors.New("spreadsheet ID is not set (sheets.spreadsheet_id or GOOGLE_SHEET_ID)")
	}

	return nil
}

// Credentials returns the service account JSON. Inline base64 credentials
// take precedence over the credentials file.
func (c *SheetsConfig) Credentials() ([]byte, error) {
	if c.CredentialsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.CredentialsBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 credentials: %w", err)
		}

		return decoded, nil
	}

	data, err := os.ReadFile(c.CredentialsFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: set GOOGLE_CREDENTIALS_BASE64 or provide %s", ErrMissingCredentials, c.CredentialsFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	return data, nil
}

// Package pricing estimates the cost of chat completion requests from a
// per-model token price table.
package pricing

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"
)

//go:embed default_models.json
var defaultModelsJSON []byte

// ErrUnknownModel is returned when no price is recorded for a model.
var ErrUnknownModel = errors.New("pricing data not found for model")

// TokenPricing is the cost per million tokens in USD.
type TokenPricing struct {
	InputPerMillion  float64  `json:"input_per_million"`
	OutputPerMillion *float64 `json:"output_per_million"` // nil when output is free or not billed
}

// ModelInfo describes one hosted model.
type ModelInfo struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Pricing     TokenPricing `json:"pricing"`
	ContextSize *int         `json:"context_size"`
}

// Table is the full price list.
type Table struct {
	Models      map[string]ModelInfo `json:"models"`
	LastUpdated time.Time            `json:"last_updated"`
	Currency    string               `json:"currency"`
	Note        string               `json:"note"`
}

// Service looks up model prices.
type Service interface {
	// Table returns the loaded price list.
	Table() *Table

	// Model returns pricing information for a specific model.
	Model(name string) (*ModelInfo, error)

	// Cost calculates the cost of a request in USD.
	Cost(model string, promptTokens, completionTokens int) (float64, error)

	// Models returns the sorted names of all priced models.
	Models() []string
}

type service struct {
	path  string
	once  sync.Once
	table *Table
}

// NewService creates a Service reading prices from path. When the file is
// missing or invalid, the embedded default table is used instead.
func NewService(path string) Service {
	return &service{path: path}
}

func (s *service) load() {
	if table, err := readTable(s.path); err == nil {
		s.table = table

		return
	}

	table, err := parseTable(defaultModelsJSON)
	if err != nil {
		table = &Table{Models: map[string]ModelInfo{}, Currency: "USD", Note: err.Error()}
	}
	s.table = table
}

func readTable(path string) (*Table, error) {
	if path == "" {
		return nil, errors.New("no pricing file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing file: %w", err)
	}

	return parseTable(data)
}

func parseTable(data []byte) (*Table, error) {
	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse pricing data: %w", err)
	}
	if table.Models == nil {
		table.Models = map[string]ModelInfo{}
	}

	return &table, nil
}

func (s *service) Table() *Table {
	s.once.Do(s.load)

	return s.table
}

func (s *service) Model(name string) (*ModelInfo, error) {
	if model, ok := s.Table().Models[name]; ok {
		return &model, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
}

func (s *service) Cost(model string, promptTokens, completionTokens int) (float64, error) {
	info, err := s.Model(model)
	if err != nil {
		return 0, err
	}

	cost := float64(promptTokens) / 1_000_000 * info.Pricing.InputPerMillion
	if info.Pricing.OutputPerMillion != nil {
		cost += float64(completionTokens) / 1_000_000 * *info.Pricing.OutputPerMillion
	}

	return cost, nil
}

func (s *service) Models() []string {
	table := s.Table()
	names := make([]string, 0, len(table.Models))
	for name := range table.Models {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Package ocr turns card photos into plain text.
package ocr

import (
	"context"
	"strings"
)

// Result is the recognised text of one image.
type Result struct {
	// Text is every recognised line joined by a single space.
	Text string
	// Confidence is the mean word confidence in [0, 1], or 0 when unknown.
	Confidence float64
}

// Engine recognises text in an encoded image (JPEG, PNG, ...).
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// JoinLines collapses multi-line OCR output into one line: blank lines are
// dropped and the remaining lines are trimmed and joined with spaces.
func JoinLines(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, " ")
}

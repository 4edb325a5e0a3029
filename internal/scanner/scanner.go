package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/card"
	"github.com/Raikerian/go-telegram-cardbot/internal/ocr"
)

// ErrNoImages is returned when Scan is called without images.
var ErrNoImages = errors.New("no images to scan")

// Result is the outcome of scanning one card.
type Result struct {
	Card card.Card
	// Text is the raw OCR text the card was built from.
	Text string
}

// Scanner runs the OCR, pattern and model extraction pipeline.
type Scanner struct {
	logger    *zap.Logger
	engine    ocr.Engine
	extractor *Extractor
}

// NewScanner creates a Scanner.
func NewScanner(logger *zap.Logger, engine ocr.Engine, extractor *Extractor) *Scanner {
	return &Scanner{
		logger:    logger.Named("scanner"),
		engine:    engine,
		extractor: extractor,
	}
}

// Scan reads every image (e.g. front and back of one card) and merges the
// recognised text into a single card.
func (s *Scanner) Scan(ctx context.Context, images ...[]byte) (Result, error) {
	if len(images) == 0 {
		return Result{}, ErrNoImages
	}

	texts := make([]string, 0, len(images))
	for i, img := range images {
		res, err := s.engine.Recognize(ctx, img)
		if err != nil {
			return Result{}, fmt.Errorf("ocr image %d of %d: %w", i+1, len(images), err)
		}
		s.logger.Debug("OCR raw text",
			zap.Int("image", i+1),
			zap.String("engine", s.engine.Name()),
			zap.Float64("confidence", res.Confidence),
			zap.String("text", res.Text),
		)
		if res.Text != "" {
			texts = append(texts, res.Text)
		}
	}
	text := strings.Join(texts, " ")
	if text == "" {
		s.logger.Warn("OCR produced no text", zap.Int("images", len(images)))
	}

	contacts := card.ExtractContacts(text)
	details := s.extractor.Extract(ctx, text)

	return Result{Card: card.Merge(details, contacts), Text: text}, nil
}

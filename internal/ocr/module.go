package ocr

import (
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-telegram-cardbot/internal/config"
)

// Module provides the OCR engine.
var Module = fx.Module("ocr",
	fx.Provide(NewEngine),
)

// NewEngine creates the configured OCR engine.
func NewEngine(cfg *config.Config, logger *zap.Logger) Engine {
	logger.Info("OCR engine configured",
		zap.String("engine", "tesseract"),
		zap.Strings("languages", cfg.OCR.Languages),
		zap.String("tesseractVersion", gosseract.Version()),
	)

	return NewTesseractEngine(cfg.OCR.Languages...)
}

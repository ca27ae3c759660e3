package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yuk1-kondo/line2notion-receipts/internal/ocr"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

//go:generate mockgen -source=intake.go -destination=extractor_mock.go -package=pipeline

// Extractor is the language-model side of intake: a header draft when
// local heuristics come up short, and the item rows as CSV.
type Extractor interface {
	ExtractHeader(ctx context.Context, ocrText string) (receipt.Header, error)
	ExtractItemsCSV(ctx context.Context, ocrText string) (string, error)
}

// Intake runs the stages in front of the core pipeline: OCR, logo
// detection and language-model extraction. The header draft is only
// requested when the local heuristics miss a field.
type Intake struct {
	engine    ocr.Engine
	extractor Extractor
	parser    *receipt.Parser
	pipeline  *Service
	logger    *slog.Logger
}

func NewIntake(engine ocr.Engine, extractor Extractor, parser *receipt.Parser, pipeline *Service, logger *slog.Logger) *Intake {
	if logger == nil {
		logger = slog.Default()
	}

	return &Intake{
		engine:    engine,
		extractor: extractor,
		parser:    parser,
		pipeline:  pipeline,
		logger:    logger,
	}
}

// ProcessImage OCRs a receipt photo and feeds the text through intake.
func (s *Intake) ProcessImage(ctx context.Context, image []byte) (*Summary, error) {
	ocrText, err := s.engine.ExtractText(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	logo := s.engine.DetectLogo(ctx, image)

	return s.ProcessText(ctx, ocrText, logo)
}

// ProcessText runs intake on already-extracted OCR text. logoBrand, when
// non-empty and not already part of the heuristic store name, is
// prepended to it (logo lettering is what OCR most often drops).
func (s *Intake) ProcessText(ctx context.Context, ocrText, logoBrand string) (*Summary, error) {
	hints := s.parser.ExtractHeader(ocrText)

	if logoBrand != "" && !strings.Contains(hints.StoreName, logoBrand) {
		hints.StoreName = strings.TrimSpace(logoBrand + " " + hints.StoreName)
	}

	if hints.StoreName == "" || hints.PurchaseDate.IsZero() {
		draft, err := s.extractor.ExtractHeader(ctx, ocrText)
		if err != nil {
			// Header extraction is best effort; the identity builder
			// substitutes placeholders for whatever stays unknown.
			s.logger.Warn("header draft failed", "error", err)
		} else {
			if hints.StoreName == "" {
				hints.StoreName = draft.StoreName
			}

			if hints.PurchaseDate.IsZero() {
				hints.PurchaseDate = draft.PurchaseDate
			}
		}
	}

	itemsCSV, err := s.extractor.ExtractItemsCSV(ctx, ocrText)
	if err != nil {
		return nil, fmt.Errorf("extract items: %w", err)
	}

	return s.pipeline.Process(ctx, Input{
		OCRText:  ocrText,
		ItemsCSV: itemsCSV,
		Hints:    hints,
	})
}

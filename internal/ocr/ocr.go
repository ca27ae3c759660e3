// Package ocr abstracts the OCR engine. The pipeline treats it as a
// black box that turns image bytes into raw text.
package ocr

import "context"

//go:generate mockgen -source=ocr.go -destination=engine_mock.go -package=ocr

type Engine interface {
	// ExtractText runs document text detection over the image.
	ExtractText(ctx context.Context, image []byte) (string, error)
	// DetectLogo returns a normalized brand name when the image carries a
	// recognizable logo, or "". It never fails; logo detection is a
	// best-effort supplement for store names that OCR drops.
	DetectLogo(ctx context.Context, image []byte) string
}

//go:build !ocr

package ocr

import (
	"context"
	"image"

	"github.com/tsawler/docsift/model"
)

// Enabled reports whether Tesseract support was compiled in.
const Enabled = false

// LineRecognizer is a stub that fails every call with ErrOCRNotEnabled.
type LineRecognizer struct{}

// NewLineRecognizer returns ErrOCRNotEnabled.
// To enable OCR, rebuild with: go build -tags ocr
func NewLineRecognizer(config LineRecognizerConfig) (*LineRecognizer, error) {
	return nil, ErrOCRNotEnabled
}

// RecognizeLines returns ErrOCRNotEnabled.
func (r *LineRecognizer) RecognizeLines(ctx context.Context, img image.Image) ([]Line, error) {
	return nil, ErrOCRNotEnabled
}

// WordRecognizer is a stub that fails every call with ErrOCRNotEnabled.
type WordRecognizer struct{}

// NewWordRecognizer returns a recognizer whose calls fail with
// ErrOCRNotEnabled.
func NewWordRecognizer(config WordRecognizerConfig) *WordRecognizer {
	return &WordRecognizer{}
}

// RecognizeWords returns ErrOCRNotEnabled.
func (r *WordRecognizer) RecognizeWords(ctx context.Context, img image.Image) (string, []model.WordBox, error) {
	return "", nil, ErrOCRNotEnabled
}

package ocr

import (
	"context"
	"errors"
	"image"

	"github.com/tsawler/docsift/model"
)

var (
	// ErrOCRNotEnabled is returned when OCR functions are called but OCR
	// support was not compiled in. Rebuild with -tags ocr to enable it.
	ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

	// ErrEngineUnavailable is returned when a recognizer could not be loaded
	// or was never configured.
	ErrEngineUnavailable = errors.New("ocr: engine unavailable")
)

// Line is one recognized text line.
type Line struct {
	Text string

	// Confidence is in [0, 1].
	Confidence float64
}

// PrimaryRecognizer returns the text lines of an image.
type PrimaryRecognizer interface {
	RecognizeLines(ctx context.Context, img image.Image) ([]Line, error)
}

// SecondaryRecognizer returns the plain text of an image together with its
// word boxes in pixel coordinates.
type SecondaryRecognizer interface {
	RecognizeWords(ctx context.Context, img image.Image) (string, []model.WordBox, error)
}

// LineRecognizerConfig configures the Tesseract line recognizer.
type LineRecognizerConfig struct {
	// Languages are Tesseract language codes, all loaded together.
	Languages []string
}

// WordRecognizerConfig configures the Tesseract word recognizer.
type WordRecognizerConfig struct {
	// Language is tried first.
	Language string

	// FallbackLanguage is used when Language fails, typically because its
	// trained data is not installed. Empty disables the retry.
	FallbackLanguage string
}

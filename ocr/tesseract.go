//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/tsawler/docsift/imaging"
	"github.com/tsawler/docsift/model"
)

// Enabled reports whether Tesseract support was compiled in.
const Enabled = true

// LineRecognizer is a PrimaryRecognizer backed by Tesseract text-line
// boxes. A gosseract client is not safe for concurrent use, so each call
// creates its own.
type LineRecognizer struct {
	languages []string
}

// NewLineRecognizer creates a line recognizer and checks that Tesseract can
// load the configured languages by recognizing a blank probe image.
func NewLineRecognizer(config LineRecognizerConfig) (*LineRecognizer, error) {
	r := &LineRecognizer{languages: config.Languages}

	probe, err := imaging.EncodePNG(image.NewGray(image.Rect(0, 0, 32, 32)))
	if err != nil {
		return nil, err
	}

	c := gosseract.NewClient()
	defer c.Close()
	if err := setup(c, probe, r.languages); err != nil {
		return nil, err
	}
	if _, err := c.Text(); err != nil {
		return nil, fmt.Errorf("tesseract probe failed: %w", err)
	}

	return r, nil
}

// RecognizeLines returns the text lines of img with their confidences.
func (r *LineRecognizer) RecognizeLines(ctx context.Context, img image.Image) ([]Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}

	c := gosseract.NewClient()
	defer c.Close()
	if err := setup(c, data, r.languages); err != nil {
		return nil, err
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("recognize lines: %w", err)
	}

	lines := make([]Line, 0, len(boxes))
	for _, b := range boxes {
		lines = append(lines, Line{
			Text:       strings.TrimSpace(b.Word),
			Confidence: b.Confidence / 100.0,
		})
	}
	return lines, nil
}

// WordRecognizer is a SecondaryRecognizer backed by Tesseract word boxes.
type WordRecognizer struct {
	language string
	fallback string
}

// NewWordRecognizer creates a word recognizer.
func NewWordRecognizer(config WordRecognizerConfig) *WordRecognizer {
	return &WordRecognizer{
		language: config.Language,
		fallback: config.FallbackLanguage,
	}
}

// RecognizeWords returns the plain text of img and its word boxes. If the
// configured language fails, the fallback language is tried once.
func (r *WordRecognizer) RecognizeWords(ctx context.Context, img image.Image) (string, []model.WordBox, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", nil, err
	}

	text, words, err := recognizeWords(data, r.language)
	if err != nil && r.fallback != "" && r.fallback != r.language {
		text, words, err = recognizeWords(data, r.fallback)
	}
	return text, words, err
}

func recognizeWords(data []byte, language string) (string, []model.WordBox, error) {
	c := gosseract.NewClient()
	defer c.Close()

	var langs []string
	if language != "" {
		langs = []string{language}
	}
	if err := setup(c, data, langs); err != nil {
		return "", nil, err
	}

	text, err := c.Text()
	if err != nil {
		return "", nil, fmt.Errorf("recognize text: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return "", nil, fmt.Errorf("recognize words: %w", err)
	}

	words := make([]model.WordBox, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, model.WordBox{
			Text:       b.Word,
			Left:       b.Box.Min.X,
			Top:        b.Box.Min.Y,
			Confidence: b.Confidence / 100.0,
		})
	}
	return strings.TrimSpace(text), words, nil
}

func setup(c *gosseract.Client, data []byte, languages []string) error {
	if len(languages) > 0 {
		if err := c.SetLanguage(languages...); err != nil {
			return fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return fmt.Errorf("set image: %w", err)
	}
	return nil
}

package ocr

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/tsawler/docsift/imaging"
	"github.com/tsawler/docsift/internal/textutil"
	"github.com/tsawler/docsift/model"
	"github.com/tsawler/docsift/tables"
)

// WorkerConfig controls how a Worker processes a page.
type WorkerConfig struct {
	// MinConfidence is the exclusive lower bound for keeping a primary line.
	MinConfidence float64

	// ShortText is the primary text length, in characters, below which a
	// longer secondary text is preferred.
	ShortText int

	Enhance  imaging.EnhanceOptions
	Binarize imaging.BinarizeOptions
	Tables   tables.Config
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MinConfidence: 0.3,
		ShortText:     50,
		Enhance:       imaging.DefaultEnhanceOptions(),
		Binarize:      imaging.DefaultBinarizeOptions(),
		Tables:        tables.DefaultConfig(),
	}
}

// Worker recognizes the text and table rows of a single page image.
// A Worker is safe for concurrent use if its recognizers are.
type Worker struct {
	engines  *Engines
	config   WorkerConfig
	detector *tables.LineClusterDetector
	logger   *slog.Logger
}

// NewWorker creates a page worker backed by engines.
func NewWorker(engines *Engines, config WorkerConfig, logger *slog.Logger) (*Worker, error) {
	if engines == nil {
		return nil, fmt.Errorf("ocr: engines must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	detector := tables.NewLineClusterDetector()
	if err := detector.Configure(config.Tables); err != nil {
		return nil, err
	}

	return &Worker{
		engines:  engines,
		config:   config,
		detector: detector,
		logger:   logger,
	}, nil
}

// Process enhances img, runs both recognizers and returns the page text
// and the markdown table rows found in the secondary word boxes.
//
// If the primary recognizer fails the secondary text is used. If the
// secondary recognizer fails the primary text is returned without tables.
// An error is returned only when no recognizer produced usable output.
func (w *Worker) Process(ctx context.Context, img image.Image) (string, []string, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return "", nil, fmt.Errorf("ocr: empty image")
	}

	enhanced := imaging.Enhance(img, w.config.Enhance)

	primary, primaryErr := w.recognizePrimary(ctx, enhanced)
	if primaryErr != nil {
		w.logger.Debug("primary recognizer failed", "error", primaryErr)
	}

	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	binary := imaging.Binarize(enhanced, w.config.Binarize)
	secondary, words, secondaryErr := w.recognizeSecondary(ctx, binary)

	switch {
	case primaryErr != nil && secondaryErr != nil:
		return "", nil, fmt.Errorf("ocr: all recognizers failed: primary: %v; secondary: %w", primaryErr, secondaryErr)

	case secondaryErr != nil:
		if textutil.IsBlank(primary) {
			return "", nil, fmt.Errorf("ocr: secondary recognizer failed and primary found no text: %w", secondaryErr)
		}
		w.logger.Debug("secondary recognizer failed, keeping primary text", "error", secondaryErr)
		return primary, nil, nil

	case primaryErr != nil:
		return secondary, w.tables(words), nil
	}

	text := primary
	if textutil.TrimmedLen(primary) < w.config.ShortText &&
		textutil.TrimmedLen(secondary) > textutil.TrimmedLen(primary) {
		text = secondary
	}

	return text, w.tables(words), nil
}

// recognizePrimary joins the confident primary lines with single spaces.
func (w *Worker) recognizePrimary(ctx context.Context, img image.Image) (string, error) {
	rec, err := w.engines.Primary()
	if err != nil {
		return "", err
	}

	lines, err := rec.RecognizeLines(ctx, img)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Confidence <= w.config.MinConfidence {
			continue
		}
		if t := strings.TrimSpace(l.Text); t != "" {
			parts = append(parts, t)
		}
	}

	return textutil.Normalize(strings.Join(parts, " ")), nil
}

func (w *Worker) recognizeSecondary(ctx context.Context, img image.Image) (string, []model.WordBox, error) {
	rec, err := w.engines.Secondary()
	if err != nil {
		return "", nil, err
	}

	text, words, err := rec.RecognizeWords(ctx, img)
	if err != nil {
		return "", nil, err
	}

	return textutil.Normalize(strings.TrimSpace(text)), words, nil
}

func (w *Worker) tables(words []model.WordBox) []string {
	return model.RowsToMarkdown(w.detector.Detect(words))
}

// Warm loads the primary recognizer now instead of on the first page.
func (w *Worker) Warm() error {
	return w.engines.Warm()
}

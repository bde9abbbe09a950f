// Package docsift extracts text and table rows from uploaded PDFs and
// images.
//
// Extraction is a cascade of strategies, each tried only when the previous
// one did not recover enough text:
//
//  1. Embedded PDF text, when the first pages carry some. Table rows are
//     reconstructed from the positions of the text spans.
//  2. OCR of every rendered page (in parallel) or of the image. Table rows
//     are reconstructed from the OCR word boxes.
//  3. A generic document loader, under a deadline.
//  4. Whatever OCR recovered, or a fixed placeholder text.
//
// Basic usage:
//
//	cfg, err := config.Load("docsift.yaml")
//	if err != nil {
//	    // handle error
//	}
//	ex, err := docsift.FromConfig(cfg, slog.Default())
//	if err != nil {
//	    // handle error
//	}
//	result, err := ex.ExtractFile(ctx, "scan.pdf")
//	fmt.Println(result.Method, result.Text)
//
// The result always carries text; errors are returned only for input that
// cannot be opened at all.
package docsift

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/docsift/fallback"
	"github.com/tsawler/docsift/format"
	"github.com/tsawler/docsift/imaging"
	"github.com/tsawler/docsift/config"
	"github.com/tsawler/docsift/model"
	"github.com/tsawler/docsift/ocr"
	"github.com/tsawler/docsift/pdfdoc"
	"github.com/tsawler/docsift/tables"
)

// FromConfig creates an Extractor wired with MuPDF for PDFs, Tesseract for
// OCR (when built with -tags ocr) and docconv as the fallback loader.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tableCfg := tables.Config{
		MinColumns:               cfg.Tables.MinColumns,
		YTolerance:               cfg.Tables.YTolerance,
		XBucket:                  cfg.Tables.XBucket,
		LineHeight:               cfg.Tables.LineHeight,
		MinRows:                  cfg.Tables.MinRows,
		ColumnVariationTolerance: cfg.Tables.ColumnVariationTolerance,
	}

	opts := []Option{
		WithLogger(logger),
		WithOpener(pdfdoc.FitzOpener{}),
		WithParallel(cfg.OCR.Parallel),
		WithWorkers(cfg.OCR.MaxWorkers),
		WithDPI(cfg.OCR.DPI),
		WithNativeProbePages(cfg.Thresholds.NativeProbePages),
		WithThresholds(cfg.Thresholds.NativeMinChars, cfg.Thresholds.PDFMinChars, cfg.Thresholds.ImageMinChars),
		WithTableConfig(tableCfg),
	}

	if ocr.Enabled {
		languages := cfg.OCR.PrimaryLanguages
		engines := ocr.NewEngines(
			func() (ocr.PrimaryRecognizer, error) {
				rec, err := ocr.NewLineRecognizer(ocr.LineRecognizerConfig{Languages: languages})
				if err != nil {
					return nil, err
				}
				return rec, nil
			},
			ocr.NewWordRecognizer(ocr.WordRecognizerConfig{
				Language:         cfg.OCR.SecondaryLanguage,
				FallbackLanguage: cfg.OCR.SecondaryFallbackLanguage,
			}),
			logger,
		)

		worker, err := ocr.NewWorker(engines, ocr.WorkerConfig{
			MinConfidence: cfg.OCR.MinConfidence,
			ShortText:     cfg.OCR.ShortText,
			Enhance: imaging.EnhanceOptions{
				TargetMinDimension: cfg.Image.TargetMinDimension,
				Contrast:           cfg.Image.Contrast,
				Sharpness:          cfg.Image.Sharpness,
			},
			Binarize: imaging.DefaultBinarizeOptions(),
			Tables:   tableCfg,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("docsift: %w", err)
		}
		opts = append(opts, WithWorker(worker))
	} else {
		logger.Warn("OCR support not compiled in; rebuild with -tags ocr to read scanned documents")
	}

	if cfg.Fallback.Enabled {
		loader := fallback.NewDocconv(logger)
		loader.Readability = cfg.Fallback.Readability
		opts = append(opts, WithFallback(loader, cfg.Fallback.Timeout))
	}

	return New(opts...)
}

// ExtractFile reads a file, detects its kind from its content and name, and
// extracts it.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (model.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ExtractionResult{}, err
	}

	kind := format.Resolve(data, path, "").Kind()
	if kind == "" {
		return model.ExtractionResult{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, path)
	}

	return e.ExtractDocument(ctx, model.NewDocument(data, kind, path))
}

// ExtractDocument is Extract for a model.Document.
func (e *Extractor) ExtractDocument(ctx context.Context, doc model.Document) (model.ExtractionResult, error) {
	return e.Extract(ctx, doc.Data, doc.Kind, doc.Name)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	ex := docsift.Must(docsift.New())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

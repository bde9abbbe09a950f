package docsift

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/tsawler/docsift/fallback"
	"github.com/tsawler/docsift/pdfdoc"
	"github.com/tsawler/docsift/tables"
)

// PageProcessor recognizes the text and table rows of one page image.
// *ocr.Worker implements it.
type PageProcessor interface {
	Process(ctx context.Context, img image.Image) (text string, tables []string, err error)
}

// Options holds the configuration of an Extractor.
type Options struct {
	Logger *slog.Logger

	// Opener opens PDF input. Required for PDF extraction.
	Opener pdfdoc.Opener

	// Worker runs OCR on page images. Without one the OCR stage is skipped.
	Worker PageProcessor

	// Fallback is the generic loader tried after OCR. Nil disables it.
	Fallback        fallback.Loader
	FallbackTimeout time.Duration

	// Parallel and Workers control the page scheduler.
	Parallel bool
	Workers  int

	// DPI is the resolution pages are rendered at for OCR.
	DPI float64

	// NativeProbePages is how many leading pages are checked for embedded
	// text; the native path is used when one of them has more than
	// NativeMinChars non-whitespace characters.
	NativeProbePages int
	NativeMinChars   int

	// PDFMinChars and ImageMinChars are the non-whitespace character counts
	// OCR output must exceed to be accepted.
	PDFMinChars   int
	ImageMinChars int

	// Tables configures the native geometry table detector.
	Tables tables.Config
}

// Option configures an Extractor.
type Option func(*Options)

// defaultOptions returns the default extraction options.
func defaultOptions() Options {
	return Options{
		Logger:           slog.Default(),
		Opener:           pdfdoc.FitzOpener{},
		FallbackTimeout:  60 * time.Second,
		Parallel:         true,
		Workers:          4,
		DPI:              300,
		NativeProbePages: 3,
		NativeMinChars:   50,
		PDFMinChars:      100,
		ImageMinChars:    50,
		Tables:           tables.DefaultConfig(),
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithOpener sets the PDF opener.
func WithOpener(opener pdfdoc.Opener) Option {
	return func(o *Options) {
		o.Opener = opener
	}
}

// WithWorker sets the OCR page processor.
func WithWorker(w PageProcessor) Option {
	return func(o *Options) {
		o.Worker = w
	}
}

// WithFallback sets the generic fallback loader and its deadline.
func WithFallback(loader fallback.Loader, timeout time.Duration) Option {
	return func(o *Options) {
		o.Fallback = loader
		if timeout > 0 {
			o.FallbackTimeout = timeout
		}
	}
}

// WithParallel enables or disables parallel page OCR.
func WithParallel(parallel bool) Option {
	return func(o *Options) {
		o.Parallel = parallel
	}
}

// WithWorkers sets the number of pages processed at once.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithDPI sets the page rendering resolution for OCR.
func WithDPI(dpi float64) Option {
	return func(o *Options) {
		o.DPI = dpi
	}
}

// WithThresholds sets the qualification thresholds, in non-whitespace
// characters, of the native, PDF OCR and image OCR stages.
func WithThresholds(native, pdf, image int) Option {
	return func(o *Options) {
		o.NativeMinChars = native
		o.PDFMinChars = pdf
		o.ImageMinChars = image
	}
}

// WithNativeProbePages sets how many leading pages are checked for
// embedded text.
func WithNativeProbePages(n int) Option {
	return func(o *Options) {
		o.NativeProbePages = n
	}
}

// WithTableConfig sets the geometry table detector configuration.
func WithTableConfig(cfg tables.Config) Option {
	return func(o *Options) {
		o.Tables = cfg
	}
}

package fallback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"code.sajari.com/docconv"
	"github.com/tsawler/docsift/format"
	"github.com/tsawler/docsift/internal/textutil"
	"github.com/tsawler/docsift/model"
)

// ConvertFunc converts a document to plain text.
type ConvertFunc func(data []byte, mimeType string) (string, error)

// Docconv is a Loader backed by code.sajari.com/docconv. The converter is
// not cancellable, so it runs in its own goroutine and Load returns when
// the context is done; the conversion is then abandoned and its result
// dropped.
type Docconv struct {
	// Readability enables docconv's readability pass for HTML-like input.
	Readability bool

	Logger *slog.Logger

	// convert replaces the docconv call in tests.
	convert ConvertFunc
}

// NewDocconv creates a docconv loader.
func NewDocconv(logger *slog.Logger) *Docconv {
	return &Docconv{Logger: logger}
}

type convertResult struct {
	text string
	err  error
}

// Load converts data and splits the text into blocks.
func (d *Docconv) Load(ctx context.Context, data []byte, name string, kind model.Kind) ([]Block, error) {
	mimeType := mimeTypeFor(data, name, kind)
	logger := d.logger()
	start := time.Now()

	done := make(chan convertResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- convertResult{err: fmt.Errorf("fallback: converter panic: %v", r)}
			}
		}()
		text, err := d.converter()(data, mimeType)
		done <- convertResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Warn("fallback loader timed out", "name", name, "duration", time.Since(start))
			return nil, ErrTimeout
		}
		return nil, ctx.Err()

	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("fallback: convert %s: %w", mimeType, res.err)
		}

		blocks := SplitBlocks(textutil.Normalize(res.text))
		if len(blocks) == 0 {
			return nil, ErrNoContent
		}

		logger.Debug("fallback loader finished",
			"name", name,
			"blocks", len(blocks),
			"duration", time.Since(start))
		return blocks, nil
	}
}

func (d *Docconv) converter() ConvertFunc {
	if d.convert != nil {
		return d.convert
	}
	return convertDocconv(d.Readability)
}

func (d *Docconv) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

func convertDocconv(readability bool) ConvertFunc {
	return func(data []byte, mimeType string) (string, error) {
		res, err := docconv.Convert(bytes.NewReader(data), mimeType, readability)
		if err != nil {
			return "", err
		}
		return res.Body, nil
	}
}

// mimeTypeFor picks the MIME type docconv dispatches on.
func mimeTypeFor(data []byte, name string, kind model.Kind) string {
	if f := format.Resolve(data, name, ""); f != format.Unknown {
		return f.ContentType()
	}
	if kind == model.KindPDF {
		return format.PDF.ContentType()
	}
	if m := docconv.MimeTypeByExtension(name); m != "" {
		return m
	}
	return format.Unknown.ContentType()
}

package docsift

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/tsawler/docsift/fallback"
	"github.com/tsawler/docsift/imaging"
	"github.com/tsawler/docsift/internal/textutil"
	"github.com/tsawler/docsift/model"
	"github.com/tsawler/docsift/pages"
	"github.com/tsawler/docsift/pdfdoc"
	"github.com/tsawler/docsift/tables"
)

// PlaceholderText is returned as the text of a document from which nothing
// could be recovered.
const PlaceholderText = "Could not extract text from the document"

var (
	// ErrUnreadableDocument is returned when the input cannot be opened as
	// the declared kind.
	ErrUnreadableDocument = errors.New("docsift: unreadable document")

	// ErrUnsupportedKind is returned for kinds other than pdf and image.
	ErrUnsupportedKind = errors.New("docsift: unsupported document kind")
)

// Extractor runs the extraction cascade. It keeps no per-call state and is
// safe for concurrent use if its collaborators are.
type Extractor struct {
	opts     Options
	geometry *tables.GeometryDetector
}

// New creates an Extractor. With no options it reads native PDF text only;
// see FromConfig for a fully wired Extractor.
func New(opts ...Option) (*Extractor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	geometry := tables.NewGeometryDetector()
	if err := geometry.Configure(o.Tables); err != nil {
		return nil, err
	}
	if o.DPI <= 0 {
		return nil, fmt.Errorf("docsift: DPI must be positive, got %g", o.DPI)
	}

	return &Extractor{opts: o, geometry: geometry}, nil
}

// Warm loads the OCR engines now instead of on the first OCR page.
func (e *Extractor) Warm() error {
	if w, ok := e.opts.Worker.(interface{ Warm() error }); ok {
		return w.Warm()
	}
	return nil
}

// request is the state of one Extract call, shared by the strategies.
type request struct {
	data []byte
	kind model.Kind
	name string

	// doc is the open PDF, nil for images.
	doc pdfdoc.Document

	// img is the decoded image, nil for PDFs.
	img image.Image

	// attempt is the OCR result, kept for the partial fallback even when
	// it did not qualify. attemptChars counts the non-whitespace characters
	// of its assembled text, page headings included.
	attempt      *model.ExtractionResult
	attemptChars int
}

// strategy is one stage of the cascade. It reports whether its result
// qualifies; a non-qualifying stage hands over to the next one.
type strategy struct {
	name string
	run  func(ctx context.Context, req *request) (model.ExtractionResult, bool)
}

// Extract recovers the text and table rows of a document.
//
// The stages are tried in order: embedded PDF text, OCR, the generic
// fallback loader and finally whatever OCR recovered (or PlaceholderText).
// Every stage failure degrades to the next stage, so the only errors are
// ErrUnreadableDocument for a PDF that cannot be opened or an image that
// cannot be decoded, and ErrUnsupportedKind.
func (e *Extractor) Extract(ctx context.Context, data []byte, kind model.Kind, name string) (model.ExtractionResult, error) {
	start := time.Now()
	logger := e.opts.Logger.With("name", name, "kind", kind)

	req := &request{data: data, kind: kind, name: name}
	switch kind {
	case model.KindPDF:
		if e.opts.Opener == nil {
			return model.ExtractionResult{}, fmt.Errorf("%w: no PDF opener configured", ErrUnreadableDocument)
		}
		doc, err := e.opts.Opener.Open(data)
		if err != nil {
			return model.ExtractionResult{}, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
		}
		defer doc.Close()
		req.doc = doc
	case model.KindImage:
		img, _, err := imaging.Decode(data)
		if err != nil {
			return model.ExtractionResult{}, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
		}
		req.img = img
	default:
		return model.ExtractionResult{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}

	logger.Debug("extraction started", "bytes", len(data))

	strategies := []strategy{
		{"native", e.native},
		{"ocr", e.ocr},
		{"fallback", e.fallback},
	}
	for _, s := range strategies {
		result, ok := s.run(ctx, req)
		if ok {
			logger.Info("extraction finished",
				"method", result.Method,
				"chars", len(result.Text),
				"tables", len(result.Tables),
				"duration", time.Since(start))
			return result, nil
		}
		logger.Debug("strategy did not qualify", "strategy", s.name)
	}

	result := e.partial(req)
	logger.Warn("no strategy qualified, returning partial result",
		"chars", textutil.NonSpaceLen(result.Text),
		"placeholder", result.Text == PlaceholderText,
		"duration", time.Since(start))
	return result, nil
}

// native reads embedded PDF text when the leading pages have enough of it.
func (e *Extractor) native(ctx context.Context, req *request) (model.ExtractionResult, bool) {
	if req.doc == nil {
		return model.ExtractionResult{}, false
	}
	if !pdfdoc.HasEmbeddedText(req.doc, e.opts.NativeProbePages, e.opts.NativeMinChars) {
		return model.ExtractionResult{}, false
	}

	logger := e.opts.Logger.With("name", req.name)
	n := req.doc.PageCount()
	results := make([]model.PageResult, n)
	for i := 0; i < n; i++ {
		results[i].Index = i

		text, err := req.doc.Text(i)
		if err != nil {
			logger.Warn("failed to read page text", "page", i+1, "error", err)
			results[i].Err = err
			continue
		}
		results[i].Text = text

		spans, err := req.doc.Spans(i)
		if err != nil {
			logger.Warn("failed to read page spans, skipping tables", "page", i+1, "error", err)
			continue
		}
		results[i].Tables = model.RowsToMarkdown(e.geometry.Detect(spans))
	}

	text, rows := pages.Assemble(results, "")
	return model.ExtractionResult{
		Text:   text,
		Tables: rows,
		Method: model.MethodNative,
		Pages:  n,
	}, true
}

// ocr recognizes rendered PDF pages or the uploaded image.
func (e *Extractor) ocr(ctx context.Context, req *request) (model.ExtractionResult, bool) {
	if e.opts.Worker == nil {
		return model.ExtractionResult{}, false
	}

	if req.kind == model.KindImage {
		return e.ocrImage(ctx, req)
	}

	n := req.doc.PageCount()
	scheduler := &pages.Scheduler{
		Parallel: e.opts.Parallel,
		Workers:  e.opts.Workers,
		Logger:   e.opts.Logger.With("name", req.name),
	}
	results := scheduler.Run(ctx, n, func(ctx context.Context, i int) (string, []string, error) {
		img, err := req.doc.RenderPage(i, e.opts.DPI)
		if err != nil {
			return "", nil, err
		}
		return e.opts.Worker.Process(ctx, img)
	})

	text, rows := pages.Assemble(results, "OCR")
	result := model.ExtractionResult{
		Text:        text,
		Tables:      rows,
		Method:      model.MethodOCR,
		Pages:       n,
		FailedPages: pages.FailedIndices(results),
	}
	req.attempt = &result
	req.attemptChars = textutil.NonSpaceLen(text)
	e.opts.Logger.Debug("OCR finished",
		"name", req.name,
		"chars", req.attemptChars,
		"page_chars", pages.ContentLength(results))

	return result, req.attemptChars > e.opts.PDFMinChars
}

func (e *Extractor) ocrImage(ctx context.Context, req *request) (model.ExtractionResult, bool) {
	text, rows, err := e.processImage(ctx, req.img)
	if err != nil {
		e.opts.Logger.Warn("image OCR failed", "name", req.name, "error", err)
		req.attempt = &model.ExtractionResult{Method: model.MethodOCR, Pages: 1, FailedPages: []int{0}}
		return model.ExtractionResult{}, false
	}

	result := model.ExtractionResult{
		Text:   text,
		Tables: rows,
		Method: model.MethodOCR,
		Pages:  1,
	}
	req.attempt = &result
	req.attemptChars = textutil.NonSpaceLen(text)

	return result, req.attemptChars > e.opts.ImageMinChars
}

// processImage runs the worker on one image, turning a panic into an error.
func (e *Extractor) processImage(ctx context.Context, img image.Image) (text string, rows []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, rows, err = "", nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return e.opts.Worker.Process(ctx, img)
}

// fallback runs the generic loader under its deadline.
func (e *Extractor) fallback(ctx context.Context, req *request) (model.ExtractionResult, bool) {
	if e.opts.Fallback == nil {
		return model.ExtractionResult{}, false
	}

	logger := e.opts.Logger.With("name", req.name)
	ctx, cancel := context.WithTimeout(ctx, e.opts.FallbackTimeout)
	defer cancel()

	blocks, err := e.opts.Fallback.Load(ctx, req.data, req.name, req.kind)
	if err != nil {
		if errors.Is(err, fallback.ErrTimeout) {
			logger.Warn("fallback loader timed out", "timeout", e.opts.FallbackTimeout)
		} else {
			logger.Warn("fallback loader failed", "error", err)
		}
		return model.ExtractionResult{}, false
	}

	var parts, rows []string
	for _, b := range blocks {
		text := strings.TrimSpace(b.Text)
		if text == "" {
			continue
		}
		if b.IsTable() {
			rows = append(rows, text)
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return model.ExtractionResult{}, false
	}

	pageCount := 1
	if req.doc != nil {
		pageCount = req.doc.PageCount()
	}

	return model.ExtractionResult{
		Text:   strings.Join(parts, "\n\n"),
		Tables: rows,
		Method: model.MethodGenericFallback,
		Pages:  pageCount,
	}, true
}

// partial returns the OCR attempt, or the placeholder when the attempt has
// no non-whitespace text at all.
func (e *Extractor) partial(req *request) model.ExtractionResult {
	result := model.ExtractionResult{Method: model.MethodPartialFallback}
	if req.attempt != nil {
		result.Text = req.attempt.Text
		result.Tables = req.attempt.Tables
		result.Pages = req.attempt.Pages
		result.FailedPages = req.attempt.FailedPages
	}
	if req.attemptChars == 0 {
		result.Text = PlaceholderText
	}
	return result
}

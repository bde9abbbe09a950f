package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/tsawler/docsift/internal/textutil"
	"github.com/tsawler/docsift/model"
)

// ErrPageOutOfRange is returned for page indices outside the document.
var ErrPageOutOfRange = errors.New("pdfdoc: page out of range")

// FitzOpener opens documents with MuPDF.
type FitzOpener struct{}

// Open parses data as a PDF.
func (FitzOpener) Open(data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to open PDF: empty input")
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &fitzDocument{doc: doc, data: data, pages: doc.NumPage()}, nil
}

// fitzDocument renders and reads text through MuPDF, which serialises
// calls on a document internally. Span extraction uses a second parser
// that is opened on first use and guarded by mu.
type fitzDocument struct {
	doc   *fitz.Document
	data  []byte
	pages int

	mu     sync.Mutex
	reader *pdf.Reader
	rerr   error
	opened bool
}

func (d *fitzDocument) PageCount() int {
	return d.pages
}

func (d *fitzDocument) Text(page int) (string, error) {
	if err := d.check(page); err != nil {
		return "", err
	}

	text, err := d.doc.Text(page)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", page+1, err)
	}
	return textutil.Normalize(text), nil
}

func (d *fitzDocument) Spans(page int) ([]model.TextSpan, error) {
	if err := d.check(page); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.opened {
		d.opened = true
		d.reader, d.rerr = openReader(d.data)
	}
	if d.rerr != nil {
		return nil, d.rerr
	}

	return pageSpans(d.reader, page)
}

func (d *fitzDocument) RenderPage(page int, dpi float64) (image.Image, error) {
	if err := d.check(page); err != nil {
		return nil, err
	}

	img, err := d.doc.ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page+1, err)
	}
	return img, nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}

func (d *fitzDocument) check(page int) error {
	if page < 0 || page >= d.pages {
		return fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page+1, d.pages)
	}
	return nil
}

// openReader opens data with the glyph level parser, which panics on some
// malformed files.
func openReader(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("failed to parse PDF: %v", p)
		}
	}()

	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return r, nil
}

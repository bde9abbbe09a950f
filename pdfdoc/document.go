package pdfdoc

import (
	"image"

	"github.com/tsawler/docsift/internal/textutil"
	"github.com/tsawler/docsift/model"
)

// Document is an open PDF. Page indices are 0-based.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Text returns the embedded text of a page.
	Text(page int) (string, error)

	// Spans returns the positioned text runs of a page.
	Spans(page int) ([]model.TextSpan, error)

	// RenderPage rasterises a page at the given resolution.
	RenderPage(page int, dpi float64) (image.Image, error)

	// Close releases the document.
	Close() error
}

// Opener opens PDF bytes as a Document.
type Opener interface {
	Open(data []byte) (Document, error)
}

// HasEmbeddedText reports whether any of the first maxPages pages carries
// more than minChars non-whitespace characters of embedded text. Pages
// whose text cannot be read count as empty.
func HasEmbeddedText(doc Document, maxPages, minChars int) bool {
	n := doc.PageCount()
	if maxPages < n {
		n = maxPages
	}

	for i := 0; i < n; i++ {
		text, err := doc.Text(i)
		if err != nil {
			continue
		}
		if textutil.NonSpaceLen(text) > minChars {
			return true
		}
	}
	return false
}

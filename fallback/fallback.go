// Package fallback extracts text with a general purpose document converter
// when the dedicated PDF and OCR paths found too little.
package fallback

import (
	"context"
	"errors"
	"strings"

	"github.com/tsawler/docsift/model"
)

var (
	// ErrTimeout is returned when the loader does not finish before the
	// context deadline.
	ErrTimeout = errors.New("fallback: loader timed out")

	// ErrNoContent is returned when the loader produced no text.
	ErrNoContent = errors.New("fallback: no content")
)

// Block is one element of loaded text, usually a paragraph.
type Block struct {
	Text string
}

// IsTable reports whether the block looks like tabular text: a line of
// pipe- or tab-separated cells.
func (b Block) IsTable() bool {
	return strings.ContainsAny(b.Text, "|\t")
}

// Loader loads the text of a document of any supported kind.
type Loader interface {
	Load(ctx context.Context, data []byte, name string, kind model.Kind) ([]Block, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, data []byte, name string, kind model.Kind) ([]Block, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, data []byte, name string, kind model.Kind) ([]Block, error) {
	return f(ctx, data, name, kind)
}

// SplitBlocks splits text into blocks at blank lines, dropping empty ones.
func SplitBlocks(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var blocks []Block
	for _, part := range strings.Split(text, "\n\n") {
		if part = strings.TrimSpace(part); part != "" {
			blocks = append(blocks, Block{Text: part})
		}
	}
	return blocks
}

// Join concatenates block texts separated by blank lines.
func Join(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n\n")
}

package ocr

import (
	"context"
	"image"
	"sync"

	"github.com/tsawler/docsift/model"
)

type fakePrimary struct {
	lines []Line
	err   error
}

func (f *fakePrimary) RecognizeLines(ctx context.Context, img image.Image) ([]Line, error) {
	return f.lines, f.err
}

type fakeSecondary struct {
	text  string
	words []model.WordBox
	err   error

	mu   sync.Mutex
	seen []image.Image
}

func (f *fakeSecondary) RecognizeWords(ctx context.Context, img image.Image) (string, []model.WordBox, error) {
	f.mu.Lock()
	f.seen = append(f.seen, img)
	f.mu.Unlock()
	return f.text, f.words, f.err
}

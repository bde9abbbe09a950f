package fallback

import (
	"context"
	"testing"

	"github.com/tsawler/docsift/model"
)

func TestSplitBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"blank", " \n\n \n", nil},
		{"single", "one line", []string{"one line"}},
		{"paragraphs", "first\nstill first\n\nsecond\r\n\r\nthird", []string{"first\nstill first", "second", "third"}},
		{"extra blank lines", "a\n\n\n\nb", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitBlocks(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitBlocks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Text != tt.want[i] {
					t.Errorf("block %d = %q, want %q", i, got[i].Text, tt.want[i])
				}
			}
		})
	}
}

func TestBlock_IsTable(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"| a | b |", true},
		{"a\tb\tc", true},
		{"plain paragraph", false},
	}

	for _, tt := range tests {
		if got := (Block{Text: tt.text}).IsTable(); got != tt.want {
			t.Errorf("Block{%q}.IsTable() = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	got := Join([]Block{{Text: "a"}, {Text: "b"}})
	if got != "a\n\nb" {
		t.Errorf("Join() = %q, want %q", got, "a\n\nb")
	}
}

func TestLoaderFunc(t *testing.T) {
	var l Loader = LoaderFunc(func(ctx context.Context, data []byte, name string, kind model.Kind) ([]Block, error) {
		return []Block{{Text: name}}, nil
	})
	blocks, err := l.Load(context.Background(), nil, "x.pdf", model.KindPDF)
	if err != nil || len(blocks) != 1 || blocks[0].Text != "x.pdf" {
		t.Errorf("Load() = %v, %v", blocks, err)
	}
}

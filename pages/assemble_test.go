package pages

import (
	"testing"

	"github.com/tsawler/docsift/model"
)

func TestHeading(t *testing.T) {
	tests := []struct {
		index int
		label string
		want  string
	}{
		{0, "", "\n--- Page 1 ---\n"},
		{2, "OCR", "\n--- Page 3 (OCR) ---\n"},
	}

	for _, tt := range tests {
		if got := Heading(tt.index, tt.label); got != tt.want {
			t.Errorf("Heading(%d, %q) = %q, want %q", tt.index, tt.label, got, tt.want)
		}
	}
}

func TestContentLength(t *testing.T) {
	results := []model.PageResult{
		{Index: 0, Text: "ab c"},
		{Index: 1, Text: " \n\t "},
		{Index: 2, Text: "ção"},
	}

	if got := ContentLength(results); got != 6 {
		t.Errorf("ContentLength() = %d, want 6", got)
	}
}

func TestAssemble_Native(t *testing.T) {
	results := []model.PageResult{
		{Index: 0, Text: "first", Tables: []string{"| a | b | c |"}},
		{Index: 1, Text: "second"},
	}

	text, tables := Assemble(results, "")
	if want := "\n--- Page 1 ---\nfirst\n--- Page 2 ---\nsecond"; text != want {
		t.Errorf("Assemble() text = %q, want %q", text, want)
	}
	if len(tables) != 1 || tables[0] != "| a | b | c |" {
		t.Errorf("Assemble() tables = %v", tables)
	}
}

package tables

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tsawler/docsift/model"
)

// wordsForCounts builds one OCR line per entry, 30 pixels apart, each with
// the given number of words.
func wordsForCounts(counts ...int) []model.WordBox {
	var words []model.WordBox
	for line, n := range counts {
		for i := 0; i < n; i++ {
			words = append(words, model.WordBox{
				Text:       fmt.Sprintf("w%d_%d", line, i),
				Left:       40 + i*120,
				Top:        line*30 + 3,
				Confidence: 0.9,
			})
		}
	}
	return words
}

func TestLineClusterDetector_Name(t *testing.T) {
	d := NewLineClusterDetector()
	if name := d.Name(); name != "line-cluster" {
		t.Errorf("Name() = %q, want 'line-cluster'", name)
	}
}

func TestLineClusterDetector_Detect_ConsistentRows(t *testing.T) {
	d := NewLineClusterDetector()

	rows := d.Detect(wordsForCounts(3, 3, 4, 3))
	if len(rows) != 4 {
		t.Fatalf("Detect() returned %d rows, want 4", len(rows))
	}

	wantCounts := []int{3, 3, 4, 3}
	for i, row := range rows {
		if row.ColCount() != wantCounts[i] {
			t.Errorf("row %d has %d cells, want %d", i, row.ColCount(), wantCounts[i])
		}
	}
}

func TestLineClusterDetector_Detect_InconsistentRows(t *testing.T) {
	d := NewLineClusterDetector()

	if rows := d.Detect(wordsForCounts(2, 6, 1, 2)); rows != nil {
		t.Errorf("Detect() = %v, want nil", rows)
	}
}

func TestLineClusterDetector_Detect_TooFewRows(t *testing.T) {
	d := NewLineClusterDetector()

	if rows := d.Detect(wordsForCounts(3, 3)); rows != nil {
		t.Errorf("Detect() = %v, want nil for two candidate rows", rows)
	}
}

func TestLineClusterDetector_Detect_SortsLeftToRight(t *testing.T) {
	d := NewLineClusterDetector()

	words := []model.WordBox{
		{Text: "c", Left: 300, Top: 5},
		{Text: "a", Left: 10, Top: 12},
		{Text: "b", Left: 150, Top: 0},
		{Text: "f", Left: 300, Top: 25},
		{Text: "d", Left: 10, Top: 30},
		{Text: "e", Left: 150, Top: 21},
		{Text: "h", Left: 150, Top: 45},
		{Text: "g", Left: 10, Top: 44},
		{Text: "i", Left: 300, Top: 59},
	}

	rows := d.Detect(words)
	want := []model.TableRow{
		{"a", "b", "c"},
		{"d", "e", "f"},
		{"g", "h", "i"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Detect() = %v, want %v", rows, want)
	}
}

func TestLineClusterDetector_Detect_SkipsBlankWords(t *testing.T) {
	d := NewLineClusterDetector()

	words := wordsForCounts(2, 2, 2)
	// A blank token on the first line must not widen it.
	words = append(words, model.WordBox{Text: " ", Left: 900, Top: 3})

	rows := d.Detect(words)
	if len(rows) != 3 {
		t.Fatalf("Detect() returned %d rows, want 3", len(rows))
	}
	if rows[0].ColCount() != 2 {
		t.Errorf("first row has %d cells, want 2", rows[0].ColCount())
	}
}

func TestLineClusterDetector_Configure_Tolerance(t *testing.T) {
	d := NewLineClusterDetector()

	config := DefaultConfig()
	config.ColumnVariationTolerance = 5
	if err := d.Configure(config); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	// Candidates are {2, 6, 2}; a spread of 4 is now acceptable.
	rows := d.Detect(wordsForCounts(2, 6, 1, 2))
	if len(rows) != 3 {
		t.Errorf("Detect() returned %d rows, want 3", len(rows))
	}
}

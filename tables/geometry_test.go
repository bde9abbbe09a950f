package tables

import (
	"reflect"
	"testing"

	"github.com/tsawler/docsift/model"
)

func TestGeometryDetector_Name(t *testing.T) {
	d := NewGeometryDetector()
	if name := d.Name(); name != "geometry" {
		t.Errorf("Name() = %q, want 'geometry'", name)
	}
}

func TestGeometryDetector_Configure(t *testing.T) {
	d := NewGeometryDetector()

	config := DefaultConfig()
	config.YTolerance = 20
	if err := d.Configure(config); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}
	if d.config.YTolerance != 20 {
		t.Errorf("YTolerance = %v, want 20", d.config.YTolerance)
	}

	config.XBucket = 0
	if err := d.Configure(config); err == nil {
		t.Error("Configure() accepted a zero XBucket")
	}
	if d.config.XBucket != 50 {
		t.Errorf("XBucket = %v after rejected Configure, want 50", d.config.XBucket)
	}
}

func TestGeometryDetector_Detect_Empty(t *testing.T) {
	d := NewGeometryDetector()
	if rows := d.Detect(nil); rows != nil {
		t.Errorf("Detect(nil) = %v, want nil", rows)
	}
}

func TestGeometryDetector_Detect_MergesJitteredBaseline(t *testing.T) {
	d := NewGeometryDetector()
	config := DefaultConfig()
	config.YTolerance = 20
	if err := d.Configure(config); err != nil {
		t.Fatalf("Configure() failed: %v", err)
	}

	// Deliberately out of order; the middle cell sits 5 points lower.
	spans := []model.TextSpan{
		{Text: "Total", X: 300, Y: 100},
		{Text: "Item", X: 100, Y: 100},
		{Text: "Qty", X: 200, Y: 105},
	}

	rows := d.Detect(spans)
	if len(rows) != 1 {
		t.Fatalf("Detect() returned %d rows, want 1", len(rows))
	}

	want := model.TableRow{"Item", "Qty", "Total"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row = %v, want %v", rows[0], want)
	}
}

func TestGeometryDetector_Detect_RowsTopToBottom(t *testing.T) {
	d := NewGeometryDetector()

	spans := []model.TextSpan{
		{Text: "B2", X: 200, Y: 220},
		{Text: "A1", X: 100, Y: 200},
		{Text: "B1", X: 200, Y: 200},
		{Text: "C1", X: 300, Y: 200},
		{Text: "A2", X: 100, Y: 220},
		{Text: "C2", X: 300, Y: 220},
	}

	rows := d.Detect(spans)
	want := []model.TableRow{
		{"A1", "B1", "C1"},
		{"A2", "B2", "C2"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Detect() = %v, want %v", rows, want)
	}
}

func TestGeometryDetector_Detect_RejectsProse(t *testing.T) {
	d := NewGeometryDetector()

	tests := []struct {
		name  string
		spans []model.TextSpan
	}{
		{
			name: "too few spans",
			spans: []model.TextSpan{
				{Text: "Hello", X: 100, Y: 100},
				{Text: "world", X: 300, Y: 100},
			},
		},
		{
			name: "spans crowd into one column bucket",
			spans: []model.TextSpan{
				{Text: "a", X: 100, Y: 100},
				{Text: "b", X: 110, Y: 100},
				{Text: "c", X: 120, Y: 100},
			},
		},
		{
			name: "blank spans do not count",
			spans: []model.TextSpan{
				{Text: "a", X: 100, Y: 100},
				{Text: "  ", X: 200, Y: 100},
				{Text: "c", X: 300, Y: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rows := d.Detect(tt.spans); len(rows) != 0 {
				t.Errorf("Detect() = %v, want no rows", rows)
			}
		})
	}
}

func TestGeometryDetector_Detect_TrimsCells(t *testing.T) {
	d := NewGeometryDetector()

	spans := []model.TextSpan{
		{Text: " a ", X: 0, Y: 10},
		{Text: "b\n", X: 100, Y: 10},
		{Text: "\tc", X: 200, Y: 10},
	}

	rows := d.Detect(spans)
	if len(rows) != 1 {
		t.Fatalf("Detect() returned %d rows, want 1", len(rows))
	}
	if got := rows[0].Markdown(); got != "| a | b | c |" {
		t.Errorf("Markdown() = %q, want %q", got, "| a | b | c |")
	}
}

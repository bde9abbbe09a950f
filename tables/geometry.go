package tables

import (
	"sort"
	"strings"

	"github.com/tsawler/docsift/model"
)

// GeometryDetector turns the native text spans of one page into table rows.
type GeometryDetector struct {
	config Config
}

// NewGeometryDetector creates a geometry detector with default configuration.
func NewGeometryDetector() *GeometryDetector {
	return &GeometryDetector{config: DefaultConfig()}
}

// Name returns the detector's identifier ("geometry").
func (d *GeometryDetector) Name() string {
	return "geometry"
}

// Configure sets the detector configuration.
func (d *GeometryDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

type positioned struct {
	x    float64
	text string
}

// Detect groups the spans of one page into lines by Y bucket and returns
// the lines that look tabular, top to bottom, cells left to right. Lines
// that do not qualify are ignored; they remain part of the page's plain
// text.
func (d *GeometryDetector) Detect(spans []model.TextSpan) []model.TableRow {
	if len(spans) == 0 {
		return nil
	}

	lines := make(map[int][]positioned)
	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		key := quantize(s.Y, d.config.YTolerance)
		lines[key] = append(lines[key], positioned{x: s.X, text: text})
	}

	keys := make([]int, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var rows []model.TableRow
	for _, k := range keys {
		items := lines[k]
		if len(items) < d.config.MinColumns {
			continue
		}

		sort.SliceStable(items, func(i, j int) bool {
			return items[i].x < items[j].x
		})

		if d.distinctColumns(items) < d.config.MinColumns {
			continue
		}

		row := make(model.TableRow, len(items))
		for i, it := range items {
			row[i] = it.text
		}
		rows = append(rows, row)
	}

	return rows
}

// distinctColumns counts the X buckets occupied by a line.
func (d *GeometryDetector) distinctColumns(items []positioned) int {
	seen := make(map[int]struct{}, len(items))
	for _, it := range items {
		seen[quantize(it.x, d.config.XBucket)] = struct{}{}
	}
	return len(seen)
}

package tables

import (
	"sort"
	"strings"

	"github.com/tsawler/docsift/model"
)

// LineClusterDetector turns the OCR word boxes of one page into table rows.
type LineClusterDetector struct {
	config Config
}

// NewLineClusterDetector creates a line cluster detector with default
// configuration.
func NewLineClusterDetector() *LineClusterDetector {
	return &LineClusterDetector{config: DefaultConfig()}
}

// Name returns the detector's identifier ("line-cluster").
func (d *LineClusterDetector) Name() string {
	return "line-cluster"
}

// Configure sets the detector configuration.
func (d *LineClusterDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Detect groups words into lines by their top position and returns every
// line with two or more words, provided the page as a whole looks tabular:
// enough candidate lines, and word counts that vary by no more than
// ColumnVariationTolerance. Otherwise it returns nil for the whole page.
func (d *LineClusterDetector) Detect(words []model.WordBox) []model.TableRow {
	if len(words) == 0 {
		return nil
	}

	lines := make(map[int][]model.WordBox)
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		key := floorDiv(w.Top, d.config.LineHeight)
		lines[key] = append(lines[key], w)
	}

	keys := make([]int, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var candidates []model.TableRow
	for _, k := range keys {
		line := lines[k]
		if len(line) < 2 {
			continue
		}

		sort.SliceStable(line, func(i, j int) bool {
			return line[i].Left < line[j].Left
		})

		row := make(model.TableRow, len(line))
		for i, w := range line {
			row[i] = w.Text
		}
		candidates = append(candidates, row)
	}

	if len(candidates) < d.config.MinRows {
		return nil
	}
	if spread(candidates) > d.config.ColumnVariationTolerance {
		return nil
	}

	return candidates
}

// spread returns the difference between the longest and shortest row.
func spread(rows []model.TableRow) int {
	lo, hi := len(rows[0]), len(rows[0])
	for _, r := range rows[1:] {
		if len(r) < lo {
			lo = len(r)
		}
		if len(r) > hi {
			hi = len(r)
		}
	}
	return hi - lo
}

// floorDiv divides rounding towards negative infinity, so words slightly
// above the image origin still get their own line.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

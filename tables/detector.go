package tables

import (
	"fmt"
	"math"
)

// Detector is the part of the detector API shared by both reconstructors.
type Detector interface {
	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration
type Config struct {
	// Minimum number of cells, and of distinct column buckets, for a
	// native text line to be a table row
	MinColumns int

	// Height of the Y bucket used to merge native spans into one line (points)
	YTolerance float64

	// Width of the X bucket used to count distinct columns (points)
	XBucket float64

	// Height of the line bucket used to group OCR words (pixels)
	LineHeight int

	// Minimum number of candidate OCR rows before they can form a table
	MinRows int

	// Largest allowed difference between the widest and narrowest
	// candidate OCR row, in words
	ColumnVariationTolerance int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinColumns:               3,
		YTolerance:               5,
		XBucket:                  50,
		LineHeight:               20,
		MinRows:                  3,
		ColumnVariationTolerance: 2,
	}
}

// Validate checks that every tolerance is usable.
func (c Config) Validate() error {
	switch {
	case c.MinColumns < 1:
		return fmt.Errorf("tables: MinColumns must be at least 1, got %d", c.MinColumns)
	case c.YTolerance <= 0:
		return fmt.Errorf("tables: YTolerance must be positive, got %g", c.YTolerance)
	case c.XBucket <= 0:
		return fmt.Errorf("tables: XBucket must be positive, got %g", c.XBucket)
	case c.LineHeight <= 0:
		return fmt.Errorf("tables: LineHeight must be positive, got %d", c.LineHeight)
	case c.MinRows < 1:
		return fmt.Errorf("tables: MinRows must be at least 1, got %d", c.MinRows)
	case c.ColumnVariationTolerance < 0:
		return fmt.Errorf("tables: ColumnVariationTolerance must not be negative, got %d", c.ColumnVariationTolerance)
	}
	return nil
}

// quantize returns the bucket number of v for buckets of the given size.
// Halves round to even, so 2.5 buckets falls into bucket 2.
func quantize(v, size float64) int {
	return int(math.RoundToEven(v / size))
}

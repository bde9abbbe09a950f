package model

// TextSpan is a run of native PDF text with its position on the page.
// X grows to the right and Y grows downwards from the top edge of the page,
// both in PDF points.
type TextSpan struct {
	Text string
	X    float64
	Y    float64
	Page int // 0-based page index
}

// WordBox is a single token recognized by an OCR engine, positioned in
// pixels from the top-left corner of the recognized image.
type WordBox struct {
	Text       string
	Left       int
	Top        int
	Confidence float64 // 0-1
}

// PageResult is the outcome of processing one page.
// A failed page keeps its index, carries Err and has no text or tables.
type PageResult struct {
	Index  int
	Text   string
	Tables []string
	Err    error
}

// Failed reports whether the page task returned an error.
func (p PageResult) Failed() bool {
	return p.Err != nil
}

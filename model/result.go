package model

// Method identifies the strategy that produced an ExtractionResult.
type Method string

const (
	// MethodNative means the text was embedded in the PDF.
	MethodNative Method = "native"
	// MethodOCR means the text was recognized from rendered pages or the image.
	MethodOCR Method = "ocr"
	// MethodGenericFallback means the generic document loader produced the text.
	MethodGenericFallback Method = "generic-fallback"
	// MethodPartialFallback means no strategy qualified and the result holds
	// whatever OCR recovered, or the placeholder text.
	MethodPartialFallback Method = "partial-fallback"
)

// String returns the method label.
func (m Method) String() string {
	return string(m)
}

// Description returns a human readable label for the method, used in
// messages shown to end users.
func (m Method) Description() string {
	switch m {
	case MethodNative:
		return "native PDF text"
	case MethodOCR:
		return "OCR"
	case MethodGenericFallback:
		return "generic document loader"
	case MethodPartialFallback:
		return "partial OCR fallback"
	default:
		return "unknown"
	}
}

// ExtractionResult is the sole artifact returned by the extractor. The
// caller owns it; the extractor keeps no reference.
type ExtractionResult struct {
	// Text is the full recovered text. It is never empty.
	Text string `json:"text"`

	// Tables holds markdown table rows in page order, then discovery order.
	Tables []string `json:"tables"`

	// Method is the strategy that produced Text.
	Method Method `json:"method"`

	// Pages is the number of pages the winning strategy looked at.
	Pages int `json:"pages"`

	// FailedPages lists the 0-based indices of pages whose OCR task failed.
	FailedPages []int `json:"failed_pages,omitempty"`
}

// TableCount returns the number of table rows in the result.
func (r ExtractionResult) TableCount() int {
	return len(r.Tables)
}

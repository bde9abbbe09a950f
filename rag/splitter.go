package rag

import "unicode/utf8"

// Default splitter settings.
const (
	DefaultChunkSize      = 1000
	DefaultOverlap        = 100
	DefaultTokenRatio     = 4
	DefaultTokenThreshold = 4000
)

// separators are tried in order; the first one found in the search window
// decides the cut.
var separators = [][]rune{
	[]rune("\n\n"),
	[]rune("\n"),
	[]rune(". "),
	[]rune("! "),
	[]rune("? "),
	[]rune(" "),
}

// Chunk is a piece of the source text. Start and End are character (rune)
// offsets into the source, End exclusive.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`

	// OverlapPrev is the number of leading characters shared with the
	// previous chunk.
	OverlapPrev int `json:"overlap_prev"`
}

// Splitter splits text into overlapping chunks.
type Splitter struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// Overlap is the number of characters each chunk repeats from the end
	// of the previous one. Values of ChunkSize or more are reduced to half
	// of ChunkSize.
	Overlap int

	// TokenRatio is the number of characters per estimated token.
	TokenRatio int

	// TokenThreshold is the estimated token count above which Chunks
	// splits the text.
	TokenThreshold int
}

// DefaultSplitter returns a splitter with the default settings.
func DefaultSplitter() *Splitter {
	return &Splitter{
		ChunkSize:      DefaultChunkSize,
		Overlap:        DefaultOverlap,
		TokenRatio:     DefaultTokenRatio,
		TokenThreshold: DefaultTokenThreshold,
	}
}

// Chunks returns text as a single chunk unless its estimated token count
// exceeds TokenThreshold, in which case it is split. Empty text yields no
// chunks.
func (s *Splitter) Chunks(text string) []Chunk {
	if text == "" {
		return nil
	}

	threshold := s.TokenThreshold
	if threshold <= 0 {
		threshold = DefaultTokenThreshold
	}
	if s.EstimateTokens(text) <= threshold {
		return []Chunk{{
			Index: 0,
			Text:  text,
			Start: 0,
			End:   utf8.RuneCountInString(text),
		}}
	}

	return s.Split(text)
}

// EstimateTokens estimates the token count of text with the splitter's
// TokenRatio.
func (s *Splitter) EstimateTokens(text string) int {
	ratio := s.TokenRatio
	if ratio <= 0 {
		ratio = DefaultTokenRatio
	}
	return utf8.RuneCountInString(text) / ratio
}

// EstimateTokens estimates the token count of text at four characters per
// token.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / DefaultTokenRatio
}

// Split cuts text into chunks of at most ChunkSize characters.
func (s *Splitter) Split(text string) []Chunk {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	size, overlap := s.limits()

	var chunks []Chunk
	start := 0
	for {
		end := start + size
		if end >= n {
			chunks = append(chunks, s.chunk(runes, len(chunks), start, n, overlap))
			return chunks
		}

		// Cutting after start+overlap guarantees progress; cutting in the
		// second half of the window keeps chunks near full size.
		lo := start + size/2
		if floor := start + overlap + 1; lo < floor {
			lo = floor
		}
		cut := findCut(runes, lo, end)

		chunks = append(chunks, s.chunk(runes, len(chunks), start, cut, overlap))
		start = cut - overlap
	}
}

func (s *Splitter) chunk(runes []rune, index, start, end, overlap int) Chunk {
	c := Chunk{
		Index: index,
		Text:  string(runes[start:end]),
		Start: start,
		End:   end,
	}
	if index > 0 {
		c.OverlapPrev = overlap
	}
	return c
}

// limits returns the effective chunk size and overlap.
func (s *Splitter) limits() (int, int) {
	size := s.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}

	overlap := s.Overlap
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}
	return size, overlap
}

// findCut returns the cut position in [lo, end] just after the last
// occurrence of the most preferred separator, or end when none is found.
func findCut(runes []rune, lo, end int) int {
	for _, sep := range separators {
		for pos := end; pos >= lo; pos-- {
			if hasSuffixAt(runes, pos, sep) {
				return pos
			}
		}
	}
	return end
}

// hasSuffixAt reports whether runes[:pos] ends with sep.
func hasSuffixAt(runes []rune, pos int, sep []rune) bool {
	if pos < len(sep) {
		return false
	}
	for i, r := range sep {
		if runes[pos-len(sep)+i] != r {
			return false
		}
	}
	return true
}

package rag

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func sampleText(n int) string {
	sentences := []string{
		"O contrato foi assinado em março.",
		"The invoice total is 1.234,56 EUR!",
		"Is the delivery date confirmed?",
		"Line items follow below.\n",
		"Section break.\n\n",
	}
	var sb strings.Builder
	for i := 0; utf8.RuneCountInString(sb.String()) < n; i++ {
		sb.WriteString(sentences[i%len(sentences)])
		sb.WriteString(" ")
	}
	return string([]rune(sb.String())[:n])
}

// reassemble joins chunks, dropping each later chunk's overlap.
func reassemble(chunks []Chunk) string {
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(string([]rune(c.Text)[c.OverlapPrev:]))
	}
	return sb.String()
}

func TestSplitter_Split_Lossless(t *testing.T) {
	for _, n := range []int{1, 999, 1000, 1001, 2500, 12345} {
		text := sampleText(n)
		chunks := DefaultSplitter().Split(text)

		if got := reassemble(chunks); got != text {
			t.Errorf("n=%d: reassembled text differs from input", n)
		}
		for i, c := range chunks {
			if l := utf8.RuneCountInString(c.Text); l > 1000 {
				t.Errorf("n=%d: chunk %d has %d characters, want at most 1000", n, i, l)
			}
			if c.Index != i {
				t.Errorf("n=%d: chunk %d has Index %d", n, i, c.Index)
			}
		}
	}
}

func TestSplitter_Split_ExactOverlap(t *testing.T) {
	text := sampleText(5000)
	chunks := DefaultSplitter().Split(text)
	if len(chunks) < 2 {
		t.Fatalf("Split() returned %d chunks, want several", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1].Text)
		cur := []rune(chunks[i].Text)
		if chunks[i].OverlapPrev != 100 {
			t.Errorf("chunk %d OverlapPrev = %d, want 100", i, chunks[i].OverlapPrev)
		}
		if string(cur[:100]) != string(prev[len(prev)-100:]) {
			t.Errorf("chunk %d does not start with the last 100 characters of chunk %d", i, i-1)
		}
		if chunks[i].Start != chunks[i-1].End-100 {
			t.Errorf("chunk %d Start = %d, want %d", i, chunks[i].Start, chunks[i-1].End-100)
		}
	}
	if chunks[0].OverlapPrev != 0 {
		t.Errorf("first chunk OverlapPrev = %d, want 0", chunks[0].OverlapPrev)
	}
}

func TestSplitter_Split_PrefersParagraphs(t *testing.T) {
	para := strings.Repeat("word ", 140) // 700 characters
	text := para + "\n\n" + para + "\n\n" + para

	chunks := DefaultSplitter().Split(text)
	if !strings.HasSuffix(chunks[0].Text, "\n\n") {
		t.Errorf("first chunk should end at the paragraph break, ends with %q",
			chunks[0].Text[len(chunks[0].Text)-10:])
	}
	if chunks[0].End != 702 {
		t.Errorf("first chunk End = %d, want 702", chunks[0].End)
	}
}

func TestSplitter_Split_SentenceBeforeSpace(t *testing.T) {
	s := &Splitter{ChunkSize: 40, Overlap: 5}
	text := "Alpha beta gamma. Delta epsilon zeta eta theta iota kappa lambda"

	// The sentence end at 18 is outside the second half of the first
	// window, so the last space wins.
	chunks := s.Split(text)
	if got := chunks[0].Text; got != "Alpha beta gamma. Delta epsilon zeta " {
		t.Errorf("first chunk = %q", got)
	}
	if reassemble(chunks) != text {
		t.Error("reassembled text differs from input")
	}
}

func TestSplitter_Split_HardCut(t *testing.T) {
	text := strings.Repeat("x", 2500)
	chunks := DefaultSplitter().Split(text)

	wantStarts := []int{0, 900, 1800}
	if len(chunks) != len(wantStarts) {
		t.Fatalf("Split() returned %d chunks, want %d", len(chunks), len(wantStarts))
	}
	for i, c := range chunks {
		if c.Start != wantStarts[i] {
			t.Errorf("chunk %d Start = %d, want %d", i, c.Start, wantStarts[i])
		}
	}
	if chunks[2].End != 2500 {
		t.Errorf("last chunk End = %d, want 2500", chunks[2].End)
	}
}

func TestSplitter_Split_OverlapClamped(t *testing.T) {
	s := &Splitter{ChunkSize: 10, Overlap: 50}
	text := strings.Repeat("y", 35)

	chunks := s.Split(text)
	if reassemble(chunks) != text {
		t.Error("reassembled text differs from input")
	}
	for _, c := range chunks[1:] {
		if c.OverlapPrev != 5 {
			t.Errorf("OverlapPrev = %d, want 5", c.OverlapPrev)
		}
	}
}

func TestSplitter_Split_Empty(t *testing.T) {
	if got := DefaultSplitter().Split(""); got != nil {
		t.Errorf("Split(\"\") = %v, want nil", got)
	}
}

func TestSplitter_Chunks(t *testing.T) {
	s := DefaultSplitter()

	short := sampleText(16000) // 4000 tokens, not above the threshold
	if got := s.Chunks(short); len(got) != 1 || got[0].Text != short || got[0].End != 16000 {
		t.Errorf("Chunks(16000 chars) returned %d chunks, want the whole text", len(got))
	}

	long := sampleText(16004) // 4001 tokens
	if got := s.Chunks(long); len(got) < 17 {
		t.Errorf("Chunks(16004 chars) returned %d chunks, want a split", len(got))
	}

	if got := s.Chunks(""); got != nil {
		t.Errorf("Chunks(\"\") = %v, want nil", got)
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"abcd", 1},
		{"ação", 1},
		{strings.Repeat("a", 4001), 1000},
	}

	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}

	s := &Splitter{TokenRatio: 2}
	if got := s.EstimateTokens("abcd"); got != 2 {
		t.Errorf("EstimateTokens with ratio 2 = %d, want 2", got)
	}
}

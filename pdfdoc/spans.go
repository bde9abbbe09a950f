package pdfdoc

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/tsawler/docsift/internal/textutil"
	"github.com/tsawler/docsift/model"
)

const (
	// defaultPageHeight is US Letter, used when a page has no MediaBox.
	defaultPageHeight = 792.0

	// rowTolerance is the largest baseline difference, in points, between
	// glyphs of the same line.
	rowTolerance = 1.0

	// spanGap is the largest gap between glyphs of one span, in multiples
	// of the font size. Word spacing is well below it, column gutters above.
	spanGap = 1.0

	// wordGap is the gap, in multiples of the font size, above which a
	// space is inserted between merged glyphs that have none.
	wordGap = 0.15
)

// glyph is one positioned character in PDF user space (Y grows upwards).
type glyph struct {
	x, y float64
	w    float64
	size float64
	s    string
}

// pageSpans extracts the spans of one page.
func pageSpans(r *pdf.Reader, page int) (spans []model.TextSpan, err error) {
	defer func() {
		if p := recover(); p != nil {
			spans, err = nil, fmt.Errorf("failed to read spans of page %d: %v", page+1, p)
		}
	}()

	p := r.Page(page + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, page+1)
	}

	content := p.Content()
	glyphs := make([]glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, glyph{x: t.X, y: t.Y, w: t.W, size: t.FontSize, s: t.S})
	}

	return mergeGlyphs(glyphs, pageTop(p), page), nil
}

// pageTop returns the upper edge of the page's MediaBox, looking through
// inherited attributes of the page tree.
func pageTop(p pdf.Page) float64 {
	v := p.V
	for i := 0; i < 10 && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			lly, ury := box.Index(1).Float64(), box.Index(3).Float64()
			if ury < lly {
				ury = lly
			}
			if ury > 0 {
				return ury
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// mergeGlyphs groups glyphs into lines by baseline, then merges adjacent
// glyphs of a line into spans. Span Y is measured down from top.
func mergeGlyphs(glyphs []glyph, top float64, page int) []model.TextSpan {
	sorted := make([]glyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.s != "" {
			sorted = append(sorted, g)
		}
	}
	if len(sorted) == 0 {
		return nil
	}

	// Top line first. Stable, so glyphs sharing a position keep stream order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].y > sorted[j].y
	})

	var spans []model.TextSpan
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[start].y-sorted[i].y <= rowTolerance {
			continue
		}
		spans = append(spans, mergeLine(sorted[start:i], top, page)...)
		start = i
	}
	return spans
}

func mergeLine(line []glyph, top float64, page int) []model.TextSpan {
	sort.SliceStable(line, func(i, j int) bool {
		return line[i].x < line[j].x
	})

	var spans []model.TextSpan
	var sb strings.Builder
	baseline := line[0].y
	x := line[0].x
	end := line[0].x + line[0].w
	size := line[0].size

	flush := func() {
		text := strings.TrimSpace(textutil.Normalize(sb.String()))
		if text != "" {
			spans = append(spans, model.TextSpan{Text: text, X: x, Y: top - baseline, Page: page})
		}
		sb.Reset()
	}

	sb.WriteString(line[0].s)
	for _, g := range line[1:] {
		em := size
		if em <= 0 {
			em = 3
		}
		gap := g.x - end

		switch {
		case gap > spanGap*em:
			flush()
			x, end, size = g.x, g.x, g.size
		case gap > wordGap*em && !endsWithSpace(sb.String()) && !startsWithSpace(g.s):
			sb.WriteByte(' ')
		}

		sb.WriteString(g.s)
		if e := g.x + g.w; e > end {
			end = e
		}
	}
	flush()

	return spans
}

func endsWithSpace(s string) bool {
	if s == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

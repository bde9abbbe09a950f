package pages

import (
	"fmt"
	"strings"

	"github.com/tsawler/docsift/internal/textutil"
	"github.com/tsawler/docsift/model"
)

// Heading returns the separator written before page index (0-based).
// With an empty label it is "\n--- Page 1 ---\n", otherwise
// "\n--- Page 1 (label) ---\n".
func Heading(index int, label string) string {
	if label == "" {
		return fmt.Sprintf("\n--- Page %d ---\n", index+1)
	}
	return fmt.Sprintf("\n--- Page %d (%s) ---\n", index+1, label)
}

// Assemble concatenates the page texts under their headings and collects
// every table row, both in page order. Failed pages keep their heading and
// contribute no text.
func Assemble(results []model.PageResult, label string) (string, []string) {
	var sb strings.Builder
	var tables []string
	for _, r := range results {
		sb.WriteString(Heading(r.Index, label))
		sb.WriteString(r.Text)
		tables = append(tables, r.Tables...)
	}
	return sb.String(), tables
}

// ContentLength returns the number of non-whitespace characters in the
// page texts, ignoring headings.
func ContentLength(results []model.PageResult) int {
	n := 0
	for _, r := range results {
		n += textutil.NonSpaceLen(r.Text)
	}
	return n
}

// FailedIndices returns the indices of the failed pages.
func FailedIndices(results []model.PageResult) []int {
	var out []int
	for _, r := range results {
		if r.Failed() {
			out = append(out, r.Index)
		}
	}
	return out
}

package model

import "strings"

// TableRow is an ordered list of cell strings, left to right as discovered.
type TableRow []string

// Markdown renders the row as a pipe-delimited markdown row such as
// "| a | b |". Cells are trimmed. Pipes inside a cell are left as-is, so a
// cell containing "|" produces an extra column when re-parsed.
func (r TableRow) Markdown() string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, cell := range r {
		sb.WriteString(" ")
		sb.WriteString(strings.TrimSpace(cell))
		sb.WriteString(" |")
	}
	return sb.String()
}

// ColCount returns the number of cells in the row.
func (r TableRow) ColCount() int {
	return len(r)
}

// RowsToMarkdown renders every row with Markdown, preserving order.
func RowsToMarkdown(rows []TableRow) []string {
	if len(rows) == 0 {
		return nil
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Markdown()
	}
	return out
}

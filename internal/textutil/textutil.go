// Package textutil holds the small text measurements and clean-ups shared by
// the extraction strategies.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NonSpaceLen returns the number of runes in s that are not whitespace.
// Qualification thresholds of the cascade are expressed in this unit.
func NonSpaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// TrimmedLen returns the rune length of s without leading and trailing
// whitespace.
func TrimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// Normalize applies NFKC normalization so that ligatures and compatibility
// forms emitted by PDF fonts and OCR engines ("ﬁ", full-width digits)
// compare and count like their plain equivalents.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	return norm.NFKC.String(s)
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

package model

import (
	"fmt"
	"strings"
)

// Kind is the declared type of an uploaded document.
type Kind string

const (
	// KindPDF is a PDF document, with or without embedded text.
	KindPDF Kind = "pdf"
	// KindImage is a single raster image (PNG, JPEG, TIFF, ...).
	KindImage Kind = "image"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k == KindPDF || k == KindImage
}

// ParseKind converts a kind name ("pdf" or "image", any case) to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown document kind %q", s)
	}
	return k, nil
}

// Document is an uploaded file as handed to the extractor. It is never
// modified once constructed.
type Document struct {
	Data []byte
	Kind Kind
	Name string
}

// NewDocument creates a document from raw bytes.
func NewDocument(data []byte, kind Kind, name string) Document {
	return Document{Data: data, Kind: kind, Name: name}
}

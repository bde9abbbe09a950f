package rag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ExportFormat defines the available export formats
type ExportFormat int

const (
	// ExportFormatJSONL exports as JSON Lines (one JSON object per line)
	ExportFormatJSONL ExportFormat = iota
	// ExportFormatJSON exports as a JSON array
	ExportFormatJSON
)

// String returns a human-readable representation of the export format
func (ef ExportFormat) String() string {
	switch ef {
	case ExportFormatJSONL:
		return "jsonl"
	case ExportFormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseExportFormat parses "jsonl" or "json".
func ParseExportFormat(s string) (ExportFormat, error) {
	switch s {
	case "jsonl":
		return ExportFormatJSONL, nil
	case "json":
		return ExportFormatJSON, nil
	default:
		return 0, fmt.Errorf("unsupported export format: %q", s)
	}
}

// ExportedChunk represents a chunk prepared for export
type ExportedChunk struct {
	// ID identifies the chunk within its source, e.g. "report.pdf#3".
	ID string `json:"id,omitempty"`

	Text string `json:"text"`

	ChunkIndex int `json:"chunk_index"`

	// Rune offsets into the source text
	Start int `json:"start"`
	End   int `json:"end"`

	// EstimatedTokens is EstimateTokens(Text).
	EstimatedTokens int `json:"estimated_tokens"`
}

// Exporter writes chunks in one format.
type Exporter struct {
	format ExportFormat

	// Source prefixes chunk IDs when set.
	Source string
}

// NewExporter creates an exporter for the given format.
func NewExporter(format ExportFormat) *Exporter {
	return &Exporter{format: format}
}

// Export exports chunks to the specified writer
func (e *Exporter) Export(chunks []Chunk, w io.Writer) error {
	switch e.format {
	case ExportFormatJSONL:
		return e.exportJSONL(chunks, w)
	case ExportFormatJSON:
		return e.exportJSON(chunks, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.format)
	}
}

// ExportToString exports chunks to a string
func (e *Exporter) ExportToString(chunks []Chunk) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(chunks, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Exporter) prepare(c Chunk) ExportedChunk {
	out := ExportedChunk{
		Text:            c.Text,
		ChunkIndex:      c.Index,
		Start:           c.Start,
		End:             c.End,
		EstimatedTokens: EstimateTokens(c.Text),
	}
	if e.Source != "" {
		out.ID = fmt.Sprintf("%s#%d", e.Source, c.Index)
	}
	return out
}

// exportJSONL exports chunks as JSON Lines (one JSON object per line)
func (e *Exporter) exportJSONL(chunks []Chunk, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for i, chunk := range chunks {
		if err := encoder.Encode(e.prepare(chunk)); err != nil {
			return fmt.Errorf("encoding chunk %d: %w", i, err)
		}
	}
	return nil
}

// exportJSON exports chunks as a JSON array
func (e *Exporter) exportJSON(chunks []Chunk, w io.Writer) error {
	exported := make([]ExportedChunk, len(chunks))
	for i, chunk := range chunks {
		exported[i] = e.prepare(chunk)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exported)
}

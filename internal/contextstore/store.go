// Package contextstore keeps the most recently extracted document so that
// later requests can ask about it.
package contextstore

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tsawler/docsift/model"
	"github.com/tsawler/docsift/rag"
)

// previewLen is the number of characters shown by Info.
const previewLen = 500

// Entry is one stored document.
type Entry struct {
	ID          string
	Filename    string
	Text        string
	Tables      []string
	Chunks      []rag.Chunk
	TotalTokens int
	Method      model.Method
	StoredAt    time.Time
}

// Info summarises the stored document.
type Info struct {
	HasContext       bool         `json:"has_context"`
	ID               string       `json:"id,omitempty"`
	Filename         string       `json:"filename,omitempty"`
	TextLength       int          `json:"text_length"`
	TotalTokens      int          `json:"total_tokens"`
	NumChunks        int          `json:"num_chunks"`
	TablesDetected   int          `json:"tables_detected"`
	ExtractionMethod model.Method `json:"extraction_method,omitempty"`
	Preview          string       `json:"preview,omitempty"`
	StoredAt         *time.Time   `json:"stored_at,omitempty"`
}

// Store holds at most one document. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	entry *Entry
	now   func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// Put replaces the stored document and returns its new ID.
func (s *Store) Put(e Entry) string {
	e.ID = uuid.NewString()
	e.StoredAt = s.now()

	s.mu.Lock()
	s.entry = &e
	s.mu.Unlock()

	return e.ID
}

// Get returns the stored document.
func (s *Store) Get() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entry == nil {
		return Entry{}, false
	}
	return *s.entry, true
}

// Clear removes the stored document.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entry = nil
	s.mu.Unlock()
}

// Info describes the stored document.
func (s *Store) Info() Info {
	e, ok := s.Get()
	if !ok {
		return Info{}
	}

	numChunks := len(e.Chunks)
	if numChunks == 0 {
		numChunks = 1
	}

	stored := e.StoredAt
	return Info{
		HasContext:       true,
		ID:               e.ID,
		Filename:         e.Filename,
		TextLength:       len([]rune(e.Text)),
		TotalTokens:      e.TotalTokens,
		NumChunks:        numChunks,
		TablesDetected:   len(e.Tables),
		ExtractionMethod: e.Method,
		Preview:          preview(e.Text),
		StoredAt:         &stored,
	}
}

func preview(text string) string {
	r := []rune(text)
	if len(r) > previewLen {
		r = r[:previewLen]
	}
	return string(r) + "..."
}

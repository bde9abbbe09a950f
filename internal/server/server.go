// Package server exposes the extractor over HTTP: document upload, and
// inspection of the most recently uploaded document.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tsawler/docsift"
	"github.com/tsawler/docsift/format"
	"github.com/tsawler/docsift/internal/contextstore"
	"github.com/tsawler/docsift/model"
	"github.com/tsawler/docsift/rag"
)

// Version is reported by the index endpoint.
const Version = "3.0.0"

// Extractor is the part of *docsift.Extractor the service uses.
type Extractor interface {
	Extract(ctx context.Context, data []byte, kind model.Kind, name string) (model.ExtractionResult, error)
}

// Service serves the upload and context endpoints.
type Service struct {
	extractor Extractor
	splitter  *rag.Splitter
	store     *contextstore.Store
	logger    *slog.Logger
	maxUpload int64
}

// New creates a service. A nil splitter uses rag.DefaultSplitter and a nil
// store a fresh contextstore.Store.
func New(ex Extractor, splitter *rag.Splitter, store *contextstore.Store, maxUpload int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if splitter == nil {
		splitter = rag.DefaultSplitter()
	}
	if store == nil {
		store = contextstore.New()
	}
	return &Service{
		extractor: ex,
		splitter:  splitter,
		store:     store,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// Router returns a chi router with the service endpoints registered.
func (s *Service) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	s.RegisterHTTP(r)
	return r
}

// RegisterHTTP registers the service endpoints on r.
func (s *Service) RegisterHTTP(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Post("/upload-documento", s.handleUpload)
	r.Get("/context-info", s.handleContextInfo)
	r.Post("/clear-context", s.handleClearContext)
}

// UploadResponse is the body returned by POST /upload-documento.
type UploadResponse struct {
	Success          bool         `json:"success"`
	Filename         string       `json:"filename"`
	FileType         string       `json:"file_type"`
	ExtractionMethod model.Method `json:"extraction_method"`
	Text             string       `json:"text"`
	Tables           []string     `json:"tables"`
	TotalTokens      int          `json:"total_tokens"`
	TotalCharacters  int          `json:"total_characters"`
	Chunks           int          `json:"chunks"`
	TablesCount      int          `json:"tables_count"`
	FailedPages      []int        `json:"failed_pages,omitempty"`
	TimeTaken        float64      `json:"time_taken"`
	Message          string       `json:"message"`
}

// handleUpload extracts an uploaded PDF or image and keeps it as the
// current context.
// POST /upload-documento
func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds %d bytes", maxErr.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "Missing multipart field \"file\"")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		writeError(w, http.StatusBadRequest, "File type could not be identified")
		return
	}
	f := format.DetectContentType(contentType)
	if f != format.PDF && f != format.PNG && f != format.JPEG {
		writeError(w, http.StatusBadRequest, "Unsupported format. Use JPEG, JPG, PNG or PDF")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("Failed to read upload", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read upload")
		return
	}

	start := time.Now()
	result, err := s.extractor.Extract(r.Context(), data, f.Kind(), header.Filename)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, docsift.ErrUnreadableDocument) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("Extraction failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Internal error: %v", err))
		return
	}

	chunks := s.splitter.Chunks(result.Text)
	tokens := s.splitter.EstimateTokens(result.Text)
	numChunks := len(chunks)
	if numChunks == 0 {
		numChunks = 1
	}

	id := s.store.Put(contextstore.Entry{
		Filename:    header.Filename,
		Text:        result.Text,
		Tables:      result.Tables,
		Chunks:      chunks,
		TotalTokens: tokens,
		Method:      result.Method,
	})

	s.logger.Info("Document processed",
		"id", id,
		"filename", header.Filename,
		"method", result.Method,
		"tokens", tokens,
		"chunks", numChunks,
		"duration", elapsed)

	tables := result.Tables
	if tables == nil {
		tables = []string{}
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success:          true,
		Filename:         header.Filename,
		FileType:         contentType,
		ExtractionMethod: result.Method,
		Text:             result.Text,
		Tables:           tables,
		TotalTokens:      tokens,
		TotalCharacters:  len([]rune(result.Text)),
		Chunks:           numChunks,
		TablesCount:      len(result.Tables),
		FailedPages:      result.FailedPages,
		TimeTaken:        math.Round(elapsed.Seconds()*100) / 100,
		Message:          fmt.Sprintf("Document processed with %s", result.Method.Description()),
	})
}

// handleContextInfo describes the current context.
// GET /context-info
func (s *Service) handleContextInfo(w http.ResponseWriter, r *http.Request) {
	info := s.store.Info()
	if !info.HasContext {
		writeJSON(w, http.StatusOK, map[string]any{
			"has_context": false,
			"message":     "No document loaded",
		})
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// handleClearContext drops the current context.
// POST /clear-context
func (s *Service) handleClearContext(w http.ResponseWriter, r *http.Request) {
	s.store.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Context cleared"})
}

// handleIndex lists the endpoints.
// GET /
func (s *Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "docsift",
		"version":     Version,
		"description": "Extract raw text and table rows from PDFs and images",
		"endpoints": map[string]string{
			"/upload-documento": "POST - Upload and extract text",
			"/clear-context":    "POST - Clear document context",
			"/context-info":     "GET - Info about current context",
		},
		"supported_formats": []string{"PDF", "JPEG", "JPG", "PNG"},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

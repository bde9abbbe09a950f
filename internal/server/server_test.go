package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/tsawler/docsift"
	"github.com/tsawler/docsift/internal/contextstore"
	"github.com/tsawler/docsift/model"
	"github.com/tsawler/docsift/rag"
)

type fakeExtractor struct {
	result model.ExtractionResult
	err    error
	kinds  []model.Kind
}

func (f *fakeExtractor) Extract(ctx context.Context, data []byte, kind model.Kind, name string) (model.ExtractionResult, error) {
	f.kinds = append(f.kinds, kind)
	return f.result, f.err
}

func newTestService(ex Extractor, store *contextstore.Store) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(ex, rag.DefaultSplitter(), store, 1<<20, logger)
}

func uploadRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart() error = %v", err)
	}
	part.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-documento", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	ex := &fakeExtractor{result: model.ExtractionResult{
		Text:   "\n--- Page 1 ---\nhello world",
		Tables: []string{"| a | b | c |"},
		Method: model.MethodNative,
		Pages:  1,
	}}
	store := contextstore.New()
	router := newTestService(ex, store).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "file", "doc.pdf", "application/pdf", []byte("%PDF-1.4")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !resp.Success {
		t.Error("Success = false")
	}
	if resp.Filename != "doc.pdf" {
		t.Errorf("Filename = %q, want doc.pdf", resp.Filename)
	}
	if resp.FileType != "application/pdf" {
		t.Errorf("FileType = %q, want application/pdf", resp.FileType)
	}
	if resp.ExtractionMethod != model.MethodNative {
		t.Errorf("ExtractionMethod = %q, want native", resp.ExtractionMethod)
	}
	if resp.Chunks != 1 {
		t.Errorf("Chunks = %d, want 1", resp.Chunks)
	}
	if resp.TablesCount != 1 {
		t.Errorf("TablesCount = %d, want 1", resp.TablesCount)
	}
	if resp.TotalCharacters != len(ex.result.Text) {
		t.Errorf("TotalCharacters = %d, want %d", resp.TotalCharacters, len(ex.result.Text))
	}
	if want := rag.EstimateTokens(ex.result.Text); resp.TotalTokens != want {
		t.Errorf("TotalTokens = %d, want %d", resp.TotalTokens, want)
	}

	if len(ex.kinds) != 1 || ex.kinds[0] != model.KindPDF {
		t.Errorf("extracted kinds = %v, want [pdf]", ex.kinds)
	}

	entry, ok := store.Get()
	if !ok {
		t.Fatal("upload did not store the document")
	}
	if entry.Filename != "doc.pdf" || entry.Text != ex.result.Text {
		t.Errorf("stored entry = %+v", entry)
	}
}

func TestUpload_ContentTypes(t *testing.T) {
	tests := []struct {
		contentType string
		wantStatus  int
		wantKind    model.Kind
	}{
		{"image/jpeg", http.StatusOK, model.KindImage},
		{"image/jpg", http.StatusOK, model.KindImage},
		{"image/png", http.StatusOK, model.KindImage},
		{"application/pdf", http.StatusOK, model.KindPDF},
		{"image/gif", http.StatusBadRequest, ""},
		{"text/plain", http.StatusBadRequest, ""},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			ex := &fakeExtractor{result: model.ExtractionResult{Text: "x", Method: model.MethodOCR}}
			router := newTestService(ex, nil).Router()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, uploadRequest(t, "file", "f", tt.contentType, []byte("data")))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantKind != "" && (len(ex.kinds) != 1 || ex.kinds[0] != tt.wantKind) {
				t.Errorf("extracted kinds = %v, want [%s]", ex.kinds, tt.wantKind)
			}
			if tt.wantKind == "" && len(ex.kinds) != 0 {
				t.Errorf("rejected upload was extracted")
			}
		})
	}
}

func TestUpload_Errors(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		err        error
		wantStatus int
	}{
		{
			name: "missing file field",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "other", "a.pdf", "application/pdf", []byte("x"))
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unreadable document",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "a.pdf", "application/pdf", []byte("x"))
			},
			err:        fmt.Errorf("%w: bad xref", docsift.ErrUnreadableDocument),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "internal error",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "a.png", "image/png", []byte("x"))
			},
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestService(&fakeExtractor{err: tt.err}, nil).Router()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.req(t))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), `"detail"`) {
				t.Errorf("body = %s, want a detail field", rec.Body.String())
			}
		})
	}
}

func TestContextInfoAndClear(t *testing.T) {
	store := contextstore.New()
	router := newTestService(&fakeExtractor{}, store).Router()

	get := func() map[string]any {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/context-info", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /context-info status = %d", rec.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return body
	}

	if body := get(); body["has_context"] != false {
		t.Errorf("has_context = %v before upload, want false", body["has_context"])
	}

	store.Put(contextstore.Entry{Filename: "a.pdf", Text: "hello", Method: model.MethodOCR})
	body := get()
	if body["has_context"] != true {
		t.Errorf("has_context = %v after Put, want true", body["has_context"])
	}
	if body["filename"] != "a.pdf" {
		t.Errorf("filename = %v, want a.pdf", body["filename"])
	}
	if body["preview"] != "hello..." {
		t.Errorf("preview = %v, want hello...", body["preview"])
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clear-context", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /clear-context status = %d", rec.Code)
	}
	if body := get(); body["has_context"] != false {
		t.Errorf("has_context = %v after clear, want false", body["has_context"])
	}
}

func TestIndex(t *testing.T) {
	router := newTestService(&fakeExtractor{}, nil).Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/upload-documento") {
		t.Errorf("index does not list /upload-documento: %s", rec.Body.String())
	}
}

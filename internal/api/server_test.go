package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/schemagen/internal/config"
	"github.com/dgallion1/schemagen/internal/history"
	"github.com/dgallion1/schemagen/internal/stats"
)

func newTestServer() *Server {
	cfg := config.Config{
		Port:                "0",
		MaxUploadBytes:      1 << 20,
		DefaultMaxWords:     200,
		DefaultOverlapWords: 30,
		HistoryTTL:          time.Hour,
		HistoryLimit:        50,
		StatsWindow:         time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(history.NewStore(cfg.HistoryTTL, cfg.HistoryLimit), stats.NewUsage(cfg.StatsWindow), log, cfg)
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestHandleGenerateSchema(t *testing.T) {
	srv := newTestServer()
	w := postJSON(t, srv, "/api/schema", map[string]string{
		"text": "User with fields: name (string), age (integer). name is required.",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["$schema"] == nil {
		t.Error("expected $schema key in response")
	}
	props, ok := body["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties object, got %T", body["properties"])
	}
	name, ok := props["name"].(map[string]any)
	if !ok || name["type"] != "string" {
		t.Errorf("expected name property of type string, got %v", props["name"])
	}

	if srv.history.Len() != 1 {
		t.Errorf("expected 1 history record, got %d", srv.history.Len())
	}
}

func TestHandleGenerateSchema_EmptyText(t *testing.T) {
	srv := newTestServer()
	w := postJSON(t, srv, "/api/schema", map[string]string{"text": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleGenerateSchema_Download(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/schema?download=1",
		strings.NewReader(`{"text":"campo nombre (texto)"}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, `attachment; filename="schema_`) || !strings.HasSuffix(cd, `.json"`) {
		t.Errorf("unexpected content disposition %q", cd)
	}
}

func TestHandleValidateJSON(t *testing.T) {
	srv := newTestServer()

	w := postJSON(t, srv, "/api/schema/validate", map[string]string{"json": `{"a": 1}`})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["valid"] != true {
		t.Errorf("expected valid=true, got %v", body["valid"])
	}

	w = postJSON(t, srv, "/api/schema/validate", map[string]string{"json": `{"a": `})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["valid"] != false {
		t.Errorf("expected valid=false, got %v", body["valid"])
	}
	if body["error"] == nil {
		t.Error("expected error message for invalid json")
	}
}

func TestHandleChunkText(t *testing.T) {
	srv := newTestServer()
	overlap := 0
	w := postJSON(t, srv, "/api/chunks", map[string]any{
		"text":          "one. two. three.",
		"max_words":     2,
		"overlap_words": overlap,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["count"] != float64(2) {
		t.Errorf("expected 2 chunks, got %v", body["count"])
	}
	chunks, ok := body["chunks"].([]any)
	if !ok || len(chunks) != 2 {
		t.Fatalf("expected chunks array of 2, got %v", body["chunks"])
	}
	first, _ := chunks[0].(map[string]any)
	if first["start_sentence"] != float64(0) || first["end_sentence"] != float64(1) {
		t.Errorf("unexpected first chunk range: %v", first)
	}
}

func TestHandleChunkText_EmptyText(t *testing.T) {
	srv := newTestServer()
	w := postJSON(t, srv, "/api/chunks", map[string]any{"text": ""})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["count"] != float64(0) {
		t.Errorf("expected 0 chunks, got %v", body["count"])
	}
}

func TestHandleChunkText_BadParams(t *testing.T) {
	srv := newTestServer()

	w := postJSON(t, srv, "/api/chunks", map[string]any{"text": "a.", "max_words": -5})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative max_words, got %d", w.Code)
	}

	w = postJSON(t, srv, "/api/chunks", map[string]any{"text": "a.", "overlap_words": -1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative overlap_words, got %d", w.Code)
	}
}

func TestHandleExtract(t *testing.T) {
	srv := newTestServer()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "fields.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("name (string). age (integer)."))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["title"] != "fields" {
		t.Errorf("expected title %q, got %v", "fields", body["title"])
	}
	if body["word_count"] != float64(4) {
		t.Errorf("expected word_count 4, got %v", body["word_count"])
	}
}

func TestHandleExtract_UnsupportedType(t *testing.T) {
	srv := newTestServer()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "binary.exe")
	fw.Write([]byte("MZ"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleHistoryLifecycle(t *testing.T) {
	srv := newTestServer()
	postJSON(t, srv, "/api/schema", map[string]string{"text": "campo nombre (texto)"})
	postJSON(t, srv, "/api/chunks", map[string]any{"text": "one. two."})

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total"] != float64(2) {
		t.Errorf("expected total 2, got %v", body["total"])
	}
	records, ok := body["history"].([]any)
	if !ok || len(records) != 2 {
		t.Fatalf("expected 2 history records, got %v", body["history"])
	}
	newest, _ := records[0].(map[string]any)
	if newest["kind"] != "chunks" {
		t.Errorf("expected newest record kind chunks, got %v", newest["kind"])
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/history", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if body := decodeBody(t, w); body["total"] != float64(0) {
		t.Errorf("expected empty history after clear, got %v", body["total"])
	}
}

func TestHandleUsageStats(t *testing.T) {
	srv := newTestServer()
	postJSON(t, srv, "/api/schema", map[string]string{"text": "campo nombre (texto)"})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	statsObj, ok := body["stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected stats object, got %v", body["stats"])
	}
	counts, ok := statsObj["counts"].(map[string]any)
	if !ok || counts["schema"] != float64(1) {
		t.Errorf("expected schema count 1, got %v", statsObj["counts"])
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/schemagen/internal/history"
	"github.com/dgallion1/schemagen/internal/schema"
)

type schemaRequest struct {
	Text string `json:"text"`
}

// handleGenerateSchema turns a natural-language description into a JSON
// Schema document.
func (s *Server) handleGenerateSchema(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req schemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	doc := schema.Infer(req.Text)
	s.usage.Record("schema", time.Since(start))
	s.history.Add(history.KindSchema, req.Text, doc)

	if r.URL.Query().Get("download") == "1" {
		setDownload(w, "schema")
	}
	writeJSON(w, http.StatusOK, doc)
}

type validateRequest struct {
	JSON string `json:"json"`
}

// handleValidateJSON checks a user-edited schema document for JSON
// validity. Invalid edits are reported so the caller can keep its previous
// valid state; nothing is parsed beyond well-formedness.
func (s *Server) handleValidateJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	var parsed any
	if err := json.Unmarshal([]byte(req.JSON), &parsed); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"valid": false,
			"error": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

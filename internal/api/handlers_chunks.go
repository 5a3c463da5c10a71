package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgallion1/schemagen/internal/chunker"
	"github.com/dgallion1/schemagen/internal/history"
)

type chunkRequest struct {
	Text         string `json:"text"`
	MaxWords     int    `json:"max_words"`
	OverlapWords *int   `json:"overlap_words"`
}

// handleChunkText splits text into overlapping sentence chunks. Omitted
// parameters fall back to the configured defaults; zero overlap is a valid
// explicit choice, so overlap_words is a pointer.
func (s *Server) handleChunkText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req chunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	cfg := chunker.Config{
		MaxWords:     s.cfg.DefaultMaxWords,
		OverlapWords: s.cfg.DefaultOverlapWords,
	}
	if req.MaxWords != 0 {
		if req.MaxWords < 0 {
			jsonError(w, "max_words must be a positive integer", http.StatusBadRequest)
			return
		}
		cfg.MaxWords = req.MaxWords
	}
	if req.OverlapWords != nil {
		if *req.OverlapWords < 0 {
			jsonError(w, "overlap_words must not be negative", http.StatusBadRequest)
			return
		}
		cfg.OverlapWords = *req.OverlapWords
	}

	start := time.Now()
	chunks := chunker.Split(req.Text, cfg)
	s.usage.Record("chunks", time.Since(start))
	if chunks == nil {
		chunks = []chunker.Chunk{}
	}
	s.history.Add(history.KindChunks, req.Text, map[string]any{
		"count":         len(chunks),
		"max_words":     cfg.MaxWords,
		"overlap_words": cfg.OverlapWords,
	})

	if r.URL.Query().Get("download") == "1" {
		setDownload(w, "chunks")
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"chunks": chunks,
		"count":  len(chunks),
	})
}

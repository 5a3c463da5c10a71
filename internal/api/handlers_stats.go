package api

import (
	"net/http"
)

func (s *Server) handleUsageStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": s.usage.Snapshot(),
	})
}

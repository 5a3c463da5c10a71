package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// writeJSON responds with pretty-printed JSON. Output is meant to be saved
// or edited by a person, so it is always indented.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// setDownload marks the response as a timestamped JSON attachment,
// e.g. schema_20240131_150405.json.
func setDownload(w http.ResponseWriter, prefix string) {
	name := fmt.Sprintf("%s_%s.json", prefix, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
}

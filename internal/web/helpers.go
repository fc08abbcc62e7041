package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jgrady/scrub/internal/blob"
	"github.com/jgrady/scrub/internal/registry"
	"github.com/jgrady/scrub/pkg/io/dataio"
	"github.com/jgrady/scrub/pkg/scrub"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	slog.Warn("request failed", "status", status, "message", message)
	writeJSON(w, status, map[string]string{"error": message})
}

// errStatus maps engine and store errors onto HTTP status codes.
func errStatus(err error) int {
	var parseErr *dataio.ParseError
	switch {
	case errors.Is(err, registry.ErrNotFound), errors.Is(err, blob.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dataio.ErrUnsupportedFormat), errors.As(err, &parseErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// preview returns the first n rows as records with missing cells rendered
// as empty strings.
func preview(t *scrub.Table, n int) []map[string]any {
	if n > t.Rows() {
		n = t.Rows()
	}
	out := make([]map[string]any, n)
	names := t.Names()
	for r := 0; r < n; r++ {
		rec := make(map[string]any, len(names))
		for c, name := range names {
			v, ok := t.Cell(r, c).Get()
			if !ok {
				rec[name] = ""
			} else {
				rec[name] = v
			}
		}
		out[r] = rec
	}
	return out
}

// records returns rows [start, end) as records with missing cells as null.
func records(t *scrub.Table, start, end int) []map[string]any {
	out := make([]map[string]any, 0, end-start)
	names := t.Names()
	for r := start; r < end; r++ {
		rec := make(map[string]any, len(names))
		for c, name := range names {
			v, _ := t.Cell(r, c).Get()
			rec[name] = v
		}
		out = append(out, rec)
	}
	return out
}

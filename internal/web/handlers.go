package web

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jgrady/scrub/internal/logging"
	"github.com/jgrady/scrub/internal/registry"
	"github.com/jgrady/scrub/pkg/io/dataio"
	"github.com/jgrady/scrub/pkg/scrub"
	"github.com/jgrady/scrub/pkg/scrub/clean"
	"github.com/jgrady/scrub/pkg/scrub/merge"
	"github.com/jgrady/scrub/pkg/scrub/stats"
)

const previewRows = 10

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "data cleaning service is running",
		"version": version,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !dataio.Supported(format) {
		writeError(w, http.StatusBadRequest, "unsupported file type, expected csv, xlsx or json")
		return
	}
	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	table, err := dataio.Read(raw, format)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	info := registry.FileInfo{
		ID:         uuid.NewString(),
		Filename:   header.Filename,
		Format:     format,
		Size:       int64(len(raw)),
		UploadedAt: time.Now().UTC(),
	}
	if err := s.blobs.Put(info.ID, info.Format, raw); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.reg.Put(r.Context(), info); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("file uploaded", "file_id", info.ID, "format", format, "rows", table.Rows())

	writeJSON(w, http.StatusOK, map[string]any{
		"file_info":    info,
		"preview_data": preview(table, previewRows),
		"statistics":   stats.Compute(table),
		"columns":      table.Names(),
	})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.reg.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleFileData(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	page := queryInt(r, "page", 0)
	if page < 0 {
		page = 0
	}
	pageSize := queryInt(r, "page_size", 50)
	if pageSize <= 0 {
		pageSize = 50
	}

	table, _, err := s.loadTable(r, id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	start := page * pageSize
	end := start + pageSize
	if start > table.Rows() {
		start = table.Rows()
	}
	if end > table.Rows() {
		end = table.Rows()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":        records(table, start, end),
		"total_rows":  table.Rows(),
		"page":        page,
		"page_size":   pageSize,
		"total_pages": (table.Rows() + pageSize - 1) / pageSize,
		"columns":     table.Names(),
	})
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	fileID := r.FormValue("file_id")
	opts, err := clean.Decode([]byte(r.FormValue("options")))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, info, err := s.loadTable(r, fileID)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	// Merge sources resolve through the registry; a missing source is
	// skipped, not fatal.
	var extra []*scrub.Table
	for _, srcID := range opts.MergeSourceIDs {
		src, _, err := s.loadTable(r, srcID)
		if errors.Is(err, registry.ErrNotFound) {
			logger.Warn("merge source not found, skipping", "file_id", srcID)
			continue
		}
		if err != nil {
			writeError(w, errStatus(err), err.Error())
			return
		}
		extra = append(extra, src)
	}
	if len(extra) > 0 {
		table = merge.Tables(table, extra...)
	}

	pipeline, err := clean.Build(opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cleaned, warns, err := pipeline.Run(r.Context(), table)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, warn := range warns {
		logger.Warn("cleaning warning", "step", warn.Step, "column", warn.Column, "message", warn.Message)
	}

	out, err := dataio.Write(cleaned, dataio.FormatCSV)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	cleanedInfo := registry.FileInfo{
		ID:         uuid.NewString(),
		Filename:   "cleaned_" + info.Filename,
		Format:     dataio.FormatCSV,
		Size:       int64(len(out)),
		UploadedAt: time.Now().UTC(),
	}
	if err := s.blobs.Put(cleanedInfo.ID, cleanedInfo.Format, out); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.reg.Put(r.Context(), cleanedInfo); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	logger.Info("file cleaned",
		"file_id", fileID,
		"cleaned_file_id", cleanedInfo.ID,
		"rows_before", table.Rows(),
		"rows_after", cleaned.Rows(),
		"warnings", len(warns),
	)

	warnings := make([]string, len(warns))
	for i, warn := range warns {
		warnings[i] = warn.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cleaned_file_id": cleanedInfo.ID,
		"original_rows":   table.Rows(),
		"cleaned_rows":    cleaned.Rows(),
		"preview_data":    preview(cleaned, previewRows),
		"statistics":      stats.Compute(cleaned),
		"columns":         cleaned.Names(),
		"warnings":        warnings,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = dataio.FormatCSV
	}

	table, info, err := s.loadTable(r, id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	out, err := dataio.Write(table, format)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}

	base := strings.TrimSuffix(info.Filename, filepath.Ext(info.Filename))
	w.Header().Set("Content-Type", dataio.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename=`+base+"."+format)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")
	info, err := s.reg.Get(r.Context(), id)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	if err := s.blobs.Delete(info.ID, info.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.reg.Delete(r.Context(), id); err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "file deleted"})
}

// loadTable resolves a file id through the registry and parses its bytes.
func (s *Server) loadTable(r *http.Request, id string) (*scrub.Table, registry.FileInfo, error) {
	info, err := s.reg.Get(r.Context(), id)
	if err != nil {
		return nil, registry.FileInfo{}, err
	}
	raw, err := s.blobs.Get(info.ID, info.Format)
	if err != nil {
		return nil, info, err
	}
	table, err := dataio.Read(raw, info.Format)
	if err != nil {
		return nil, info, err
	}
	return table, info, nil
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			return x
		}
	}
	return def
}

package web

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/agrisurvey/portal/internal/core"
	"github.com/go-chi/chi/v5"
)

// readUploadedFile extracts the "file" part from a multipart form, enforcing
// the configured size limit.
func (s *Server) readUploadedFile(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return nil, "", false
	}

	return data, header.Filename, true
}

// parseColumnMapping reads the optional "mapping" form field, a JSON object
// of file header to table column. Returns false after writing an error
// response when the field is present but malformed.
func parseColumnMapping(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	raw := r.FormValue("mapping")
	if raw == "" {
		return nil, true
	}

	var mapping map[string]string
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		writeError(w, http.StatusBadRequest, "mapping must be a JSON object of file header to column name")
		return nil, false
	}
	return mapping, true
}

// handlePreview analyzes a file and reports what an import would do, without
// writing anything.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	data, fileName, ok := s.readUploadedFile(w, r)
	if !ok {
		return
	}
	mapping, ok := parseColumnMapping(w, r)
	if !ok {
		return
	}

	result, err := s.service.AnalyzeImport(r.Context(), tableKey, fileName, data, mapping)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, result)
}

// handleImport starts an asynchronous import and returns its ID. Progress is
// available on the progress endpoint, the final outcome on the result one.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	data, fileName, ok := s.readUploadedFile(w, r)
	if !ok {
		return
	}
	mapping, ok := parseColumnMapping(w, r)
	if !ok {
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	importID, err := s.service.StartImport(ctx, tableKey, fileName, data, mapping)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, core.ErrTooManyImports) {
			status = http.StatusTooManyRequests
		}
		s.respondError(w, r, err, status)
		return
	}

	writeJSONStatus(w, http.StatusAccepted, map[string]string{"importId": importID})
}

// handleImportProgress streams progress via Server-Sent Events. Clients may
// pass lastEventId (a progress percentage) to skip already-seen events after
// a reconnect.
func (s *Server) handleImportProgress(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")

	lastEventIDStr := r.URL.Query().Get("lastEventId")
	var lastEventID int
	if lastEventIDStr != "" {
		lastEventID, _ = strconv.Atoi(lastEventIDStr)
	}

	progressCh, err := s.service.SubscribeProgress(importID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	for {
		select {
		case progress, ok := <-progressCh:
			if !ok {
				fmt.Fprintf(w, "event: complete\ndata: {}\n\n")
				flusher.Flush()
				return
			}

			percent := progress.Percent()
			if lastEventIDStr != "" && percent <= lastEventID {
				continue
			}

			data, _ := json.Marshal(progress)
			fmt.Fprintf(w, "id: %d\nevent: progress\ndata: %s\n\n", percent, data)
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// handleImportResult returns the final result, blocking until the import
// finishes if it is still running.
func (s *Server) handleImportResult(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")

	result, err := s.service.ImportResult(importID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, result)
}

// handleCancelImport cancels an in-progress import.
func (s *Server) handleCancelImport(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")

	if err := s.service.CancelImport(importID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, map[string]string{"status": "cancelled"})
}

// handleErrorReport exports the rejected rows of a finished import as CSV,
// one line per error with the original cell values appended so operators can
// fix and re-submit just the failures.
func (s *Server) handleErrorReport(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")

	result, err := s.service.ImportResult(importID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var columns []string
	if def, ok := core.Get(result.TableKey); ok {
		columns = def.Info.Columns
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_errors.csv", result.TableKey))

	cw := csv.NewWriter(w)
	header := append([]string{"line", "column", "error"}, columns...)
	cw.Write(header)

	for _, rowErr := range result.Errors {
		record := []string{strconv.Itoa(rowErr.Line), rowErr.Column, rowErr.Message}
		record = append(record, rowErr.Data...)
		cw.Write(record)
	}
	cw.Flush()
}

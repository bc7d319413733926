package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleReset wipes one table. Wiping the farmers table also clears every
// child table through cascading deletes, so the UI confirms before calling.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")

	ctx := WithRequestMetadata(r.Context(), r)
	removed, err := s.service.Reset(ctx, tableKey)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{"table": tableKey, "rowsRemoved": removed})
}

// handleResetAll wipes every table, children before the farmer root.
func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	removed, err := s.service.ResetAll(ctx)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"rowsRemoved": removed})
}

// handleImportHistory returns past import runs, optionally filtered by
// the table query parameter.
func (s *Server) handleImportHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 100)
	tableKey := r.URL.Query().Get("table")

	runs, err := s.service.ImportHistory(r.Context(), tableKey, limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"runs": runs})
}

// handleAuditTrail returns recent audit entries, newest first.
func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 100)

	entries, err := s.service.AuditTrail(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"entries": entries})
}

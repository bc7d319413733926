package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/agrisurvey/portal/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// handleListFarmers returns a page of farmer profiles plus the total count.
func (s *Server) handleListFarmers(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", 50)
	offset := parseIntParam(r, "offset", 0)

	farmers, err := s.service.ListFarmers(r.Context(), limit, offset)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	total, err := s.service.CountFarmers(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"farmers": farmers,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// handleCreateFarmer registers a single farmer from a JSON body.
func (s *Server) handleCreateFarmer(w http.ResponseWriter, r *http.Request) {
	var input core.FarmerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, validationMessage(verrs[0]))
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	farmer, err := s.service.CreateFarmer(ctx, input)
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "already exists") {
			status = http.StatusConflict
		}
		s.respondError(w, r, err, status)
		return
	}

	writeJSONStatus(w, http.StatusCreated, farmer)
}

// handleGetFarmer returns one farmer by ID.
func (s *Server) handleGetFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	farmer, err := s.service.GetFarmer(r.Context(), farmerID)
	if err != nil {
		status := http.StatusNotFound
		if !strings.Contains(err.Error(), "not found") {
			status = http.StatusBadRequest
		}
		s.respondError(w, r, err, status)
		return
	}

	writeJSON(w, farmer)
}

// handleDeleteFarmer removes a farmer and, through the schema's cascading
// references, every child row belonging to them.
func (s *Server) handleDeleteFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.DeleteFarmer(ctx, farmerID); err != nil {
		status := http.StatusNotFound
		if !strings.Contains(err.Error(), "not found") {
			status = http.StatusBadRequest
		}
		s.respondError(w, r, err, status)
		return
	}

	writeJSON(w, map[string]string{"status": "deleted"})
}

// handleCreateChildRecord inserts one row into a child survey table for a
// farmer. The body is a flat JSON object of column name to cell value, the
// same strings a file row carries. Validation failures come back per field.
func (s *Server) handleCreateChildRecord(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")
	tableKey := chi.URLParam(r, "tableKey")

	var values map[string]string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	verrs, err := s.service.CreateChildRecord(ctx, farmerID, tableKey, values)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case strings.Contains(err.Error(), "already exists"):
			status = http.StatusConflict
		case strings.Contains(err.Error(), "unknown table"):
			status = http.StatusNotFound
		}
		s.respondError(w, r, err, status)
		return
	}
	if len(verrs) > 0 {
		fields := make([]map[string]string, len(verrs))
		for i, ve := range verrs {
			fields[i] = map[string]string{"field": ve.Field, "message": ve.Message}
		}
		writeJSONStatus(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": fields})
		return
	}

	writeJSONStatus(w, http.StatusCreated, map[string]string{"status": "created"})
}

// validationMessage turns a validator error into an operator-readable one.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	default:
		return fe.Field() + " is invalid"
	}
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}

package web

import (
	"fmt"
	"net/http"

	"github.com/agrisurvey/portal/internal/core"
	"github.com/agrisurvey/portal/internal/tabular"
	"github.com/go-chi/chi/v5"
)

// tableView is the JSON shape for a table listing entry.
type tableView struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
	Required    []string `json:"required"`
	ParentRef   string   `json:"parentRef,omitempty"`
}

// handleListTables returns all registered tables, root table first.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	views := make([]tableView, 0, len(defs))
	for _, def := range defs {
		v := tableView{
			Key:         def.Info.Key,
			Label:       def.Info.Label,
			Description: def.Info.Description,
			Columns:     def.Info.Columns,
			ParentRef:   def.Info.ParentRef,
		}
		for _, spec := range def.FieldSpecs {
			if spec.Required {
				v.Required = append(v.Required, spec.Name)
			}
		}
		views = append(views, v)
	}
	writeJSON(w, map[string]any{"tables": views})
}

// handleDownloadTemplate serves an empty template with the table's expected
// headers. The format query parameter selects csv (default) or xlsx.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	tableKey := chi.URLParam(r, "tableKey")
	def, ok := core.Get(tableKey)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown table: %s", tableKey))
		return
	}

	required := make(map[string]bool)
	for _, spec := range def.FieldSpecs {
		if spec.Required {
			required[spec.Name] = true
		}
	}

	switch r.URL.Query().Get("format") {
	case "xlsx":
		data, err := tabular.TemplateXLSX(def.Info.Label, def.Info.Columns, required)
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_template.xlsx", tableKey))
		w.Write(data)
	default:
		data, err := tabular.TemplateCSV(def.Info.Columns)
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_template.csv", tableKey))
		w.Write(data)
	}
}

// handleStatus reports import slot occupancy for dashboards.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.LimiterStatus())
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

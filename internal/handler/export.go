package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/eld-planner/backend/internal/service"
)

// ExportLogs handles GET /sessions/{sessionId}/export. It returns one row per
// log entry of the current plan as JSON (default) or, with ?format=csv, CSV.
func (s *Server) ExportLogs(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		badRequest(w, "invalid format")
		return
	}
	wantCSV := false
	if format != nil {
		switch *format {
		case "csv":
			wantCSV = true
		case "json":
		default:
			badRequest(w, "format must be csv or json")
			return
		}
	}

	plan, ok := c.Plan()
	if !ok {
		notFound(w, "no plan for this session")
		return
	}
	rows := service.ExportRows(plan)

	if !wantCSV {
		writeJSON(w, http.StatusOK, rows)
		return
	}

	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, rows); err != nil {
		writeDomainError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%d-logs.csv"`, plan.Trip.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/pkordes/eld-planner/backend/internal/logsheet"
)

// GetDay handles GET /sessions/{sessionId}/days/{index}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var index int
	if err := pathParam(r, "index", &index); err != nil {
		badRequest(w, "invalid day index")
		return
	}

	v, err := c.Day(index, s.display)
	if err != nil {
		writeDomainError(w, r, err, "day not found")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GetDaySheet handles GET /sessions/{sessionId}/days/{index}/sheet.pdf.
func (s *Server) GetDaySheet(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var index int
	if err := pathParam(r, "index", &index); err != nil {
		badRequest(w, "invalid day index")
		return
	}

	plan, ok := c.Plan()
	if !ok {
		notFound(w, "no plan for this session")
		return
	}
	l, err := c.Log(index)
	if err != nil {
		writeDomainError(w, r, err, "day not found")
		return
	}

	var buf bytes.Buffer
	if err := logsheet.Write(&buf, logsheet.Sheet{Trip: plan.Trip, Log: l, Location: s.display}); err != nil {
		writeDomainError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="log-%d-%s.pdf"`,
		plan.Trip.ID, l.Date.UTC().Format(time.DateOnly)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/session"
)

// SelectDayRequest is the body of PUT /sessions/{sessionId}/selected-day.
type SelectDayRequest struct {
	Index *int `json:"index"`
}

// SelectDayResponse reports the cursor after a selection attempt. Changed
// is false when the index was out of range and the cursor stayed put.
type SelectDayResponse struct {
	SelectedDay int  `json:"selected_day"`
	Changed     bool `json:"changed"`
}

// ListLocations handles GET /locations.
func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.locations.ListLocations(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "could not load locations")
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// CreateSession handles POST /sessions. It loads the locations and returns
// the defaults to pre-select.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, c, err := s.sessions.Create(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "could not load locations")
		return
	}
	w.Header().Set("Location", "/sessions/"+id.String())
	writeJSON(w, http.StatusCreated, s.sessionResponse(id, c))
}

// GetSession handles GET /sessions/{sessionId}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(id, c))
}

// DeleteSession handles DELETE /sessions/{sessionId}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		badRequest(w, "invalid session id")
		return
	}
	if err := s.sessions.Delete(id); err != nil {
		writeDomainError(w, r, err, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitTrip handles POST /sessions/{sessionId}/submit. It blocks until the
// planner has answered both calls and returns the ready session.
func (s *Server) SubmitTrip(w http.ResponseWriter, r *http.Request) {
	id, c, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req session.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeDomainError(w, r, err, "")
			return
		}
		badRequest(w, "invalid request body")
		return
	}

	if err := c.Submit(r.Context(), req); err != nil {
		msg := ""
		if !errors.Is(err, domain.ErrBusy) {
			msg = c.Snapshot().Error
		}
		writeDomainError(w, r, err, msg)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(id, c))
}

// SelectDay handles PUT /sessions/{sessionId}/selected-day.
func (s *Server) SelectDay(w http.ResponseWriter, r *http.Request) {
	_, c, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	var req SelectDayRequest
	if err := decodeJSON(r, &req); err != nil || req.Index == nil {
		badRequest(w, "index is required")
		return
	}

	changed := c.SelectDay(*req.Index)
	writeJSON(w, http.StatusOK, SelectDayResponse{
		SelectedDay: c.Snapshot().SelectedDay,
		Changed:     changed,
	})
}

// lookupSession resolves the sessionId path parameter, writing a 400 or 404
// and returning false when it cannot.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (id uuid.UUID, c *session.Controller, ok bool) {
	sid, err := sessionID(r)
	if err != nil {
		badRequest(w, "invalid session id")
		return id, nil, false
	}
	c, err = s.sessions.Get(sid)
	if err != nil {
		writeDomainError(w, r, err, "session not found")
		return id, nil, false
	}
	return sid, c, true
}

// Package handler implements the HTTP API for the ELD trip planner.
// Handlers are methods on Server, split into files by resource, and are
// mounted on a chi router by Routes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/session"
)

// Sessions manages the live planning sessions. *session.Registry satisfies it.
type Sessions interface {
	Create(ctx context.Context) (uuid.UUID, *session.Controller, error)
	Get(id uuid.UUID) (*session.Controller, error)
	Delete(id uuid.UUID) error
}

// LocationLister supplies the selectable locations.
type LocationLister interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

// ArchiveServicer reads archived plans. Defining the interface here, in the
// consumer package, lets handler tests inject a mock.
type ArchiveServicer interface {
	Get(ctx context.Context, tripID int64) (domain.ArchivedPlan, error)
	List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.ArchivedPlan], error)
}

// Server holds the handler dependencies.
type Server struct {
	sessions  Sessions
	locations LocationLister
	archive   ArchiveServicer // nil when the archive is disabled
	display   *time.Location
}

// NewServer constructs the Server. archive may be nil; display defaults to UTC.
func NewServer(sessions Sessions, locations LocationLister, archive ArchiveServicer, display *time.Location) *Server {
	if display == nil {
		display = time.UTC
	}
	return &Server{
		sessions:  sessions,
		locations: locations,
		archive:   archive,
		display:   display,
	}
}

// Routes returns the API router. Archive routes are only mounted when an
// archive is configured.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/locations", s.ListLocations)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/submit", s.SubmitTrip)
			r.Put("/selected-day", s.SelectDay)
			r.Get("/days/{index}", s.GetDay)
			r.Get("/days/{index}/sheet.pdf", s.GetDaySheet)
			r.Get("/export", s.ExportLogs)
		})
	})

	if s.archive != nil {
		r.Get("/archive/plans", s.ListArchivedPlans)
		r.Get("/archive/plans/{tripId}", s.GetArchivedPlan)
	}

	return r
}

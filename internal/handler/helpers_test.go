package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/handler"
	"github.com/pkordes/eld-planner/backend/internal/planner"
	"github.com/pkordes/eld-planner/backend/internal/session"
)

// mockPlanner is a test double for session.Planner.
// Set only the method fields your test needs.
type mockPlanner struct {
	createTrip     func(ctx context.Context, in planner.TripRequest) (domain.Trip, error)
	calculateRoute func(ctx context.Context, tripID int64) (planner.RouteResult, error)
}

func (m *mockPlanner) CreateTrip(ctx context.Context, in planner.TripRequest) (domain.Trip, error) {
	return m.createTrip(ctx, in)
}

func (m *mockPlanner) CalculateRoute(ctx context.Context, tripID int64) (planner.RouteResult, error) {
	return m.calculateRoute(ctx, tripID)
}

// mockLocations is a test double for the location source.
type mockLocations struct {
	list func(ctx context.Context) ([]domain.Location, error)
}

func (m *mockLocations) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return m.list(ctx)
}

// mockArchive is a test double for handler.ArchiveServicer.
type mockArchive struct {
	get  func(ctx context.Context, tripID int64) (domain.ArchivedPlan, error)
	list func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.ArchivedPlan], error)
}

func (m *mockArchive) Get(ctx context.Context, tripID int64) (domain.ArchivedPlan, error) {
	return m.get(ctx, tripID)
}

func (m *mockArchive) List(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.ArchivedPlan], error) {
	return m.list(ctx, p)
}

var (
	_ session.Planner         = (*mockPlanner)(nil)
	_ handler.LocationLister  = (*mockLocations)(nil)
	_ handler.ArchiveServicer = (*mockArchive)(nil)
	_ handler.Sessions        = (*session.Registry)(nil)
)

var t0 = time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)

func at(h float64) time.Time {
	return t0.Add(time.Duration(h * float64(time.Hour)))
}

func ptr[T any](v T) *T { return &v }

func fixtureLocations() *mockLocations {
	return &mockLocations{list: func(context.Context) ([]domain.Location, error) {
		return []domain.Location{
			{ID: 1, Name: "Dallas, TX"},
			{ID: 2, Name: "Denver, CO"},
			{ID: 3, Name: "Boise, ID"},
		}, nil
	}}
}

func fixturePlanner() *mockPlanner {
	return &mockPlanner{
		createTrip: func(_ context.Context, in planner.TripRequest) (domain.Trip, error) {
			return domain.Trip{
				ID:                7,
				CurrentLocationID: in.CurrentLocationID,
				PickupLocationID:  in.PickupLocationID,
				DropoffLocationID: in.DropoffLocationID,
				CurrentCycleHours: in.CurrentCycleHours,
				Status:            domain.TripPlanned,
				CreatedAt:         t0,
			}, nil
		},
		calculateRoute: func(_ context.Context, tripID int64) (planner.RouteResult, error) {
			end := at(10)
			return planner.RouteResult{
				Route: domain.RouteData{DistanceMiles: 1500, DurationHours: 24},
				Stops: []domain.RouteStop{
					{ID: 1, Type: domain.StopPickup, ArrivalTime: at(0), DepartureTime: ptr(at(1)),
						Location: &domain.Location{ID: 2, Name: "Denver, CO"}},
					{ID: 2, Type: domain.StopRest, ArrivalTime: at(5), DepartureTime: ptr(at(5.5))},
					{ID: 3, Type: domain.StopDropoff, ArrivalTime: at(24), DepartureTime: ptr(at(25))},
				},
				DailyLogs: []domain.DailyLog{
					{ID: 1, TripID: tripID, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
						Entries: []domain.LogEntry{
							{ID: 1, Status: domain.DutyDriving, StartTime: at(0), EndTime: &end, Location: "Dallas, TX"},
							{ID: 2, Status: domain.DutyOffDuty, StartTime: end},
						}},
					{ID: 2, TripID: tripID, Date: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
				},
			}, nil
		},
	}
}

type testEnv struct {
	handler  http.Handler
	registry *session.Registry
}

// newEnv wires a Server over a real session registry backed by mocks, the
// same way main.go wires it in production.
func newEnv(t *testing.T, p *mockPlanner, locs *mockLocations, archive handler.ArchiveServicer) *testEnv {
	t.Helper()
	reg := session.NewRegistry(session.Deps{Planner: p, Locations: locs})
	srv := handler.NewServer(reg, locs, archive, time.UTC)
	return &testEnv{handler: srv.Routes(), registry: reg}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// newSession creates a session through the API and returns its id.
func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.ID.String()
}

func validSubmit() map[string]any {
	return map[string]any{
		"current_location_id": 1,
		"pickup_location_id":  2,
		"dropoff_location_id": 3,
		"current_cycle_hours": 40,
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

package session_test

import (
	"context"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/planner"
	"github.com/pkordes/eld-planner/backend/internal/session"
)

type mockPlanner struct {
	createTripFn     func(ctx context.Context, in planner.TripRequest) (domain.Trip, error)
	calculateRouteFn func(ctx context.Context, tripID int64) (planner.RouteResult, error)
	createCalls      int
	routeCalls       int
}

func (m *mockPlanner) CreateTrip(ctx context.Context, in planner.TripRequest) (domain.Trip, error) {
	m.createCalls++
	return m.createTripFn(ctx, in)
}

func (m *mockPlanner) CalculateRoute(ctx context.Context, tripID int64) (planner.RouteResult, error) {
	m.routeCalls++
	return m.calculateRouteFn(ctx, tripID)
}

type mockLocations struct {
	listFn func(ctx context.Context) ([]domain.Location, error)
}

func (m *mockLocations) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return m.listFn(ctx)
}

type mockArchiver struct {
	saveFn func(ctx context.Context, plan domain.Plan) error
}

func (m *mockArchiver) Save(ctx context.Context, plan domain.Plan) error {
	return m.saveFn(ctx, plan)
}

var (
	_ session.Planner        = (*mockPlanner)(nil)
	_ session.LocationLister = (*mockLocations)(nil)
	_ session.Archiver       = (*mockArchiver)(nil)
)

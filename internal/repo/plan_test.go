package repo_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/repo"
	"github.com/pkordes/eld-planner/backend/testutil"
)

// newTestRepo returns a PlanRepo inside a transaction that is rolled back
// when the test finishes.
func newTestRepo(t *testing.T) repo.PlanRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return repo.NewPlanRepo(tx)
}

func planFixture(tripID int64, received time.Time) domain.Plan {
	arr := received.Add(time.Hour)
	dep := arr.Add(time.Hour)
	end := received.Add(10 * time.Hour)
	return domain.Plan{
		Trip: domain.Trip{
			ID:                tripID,
			CurrentLocationID: 1,
			PickupLocationID:  2,
			DropoffLocationID: 3,
			CurrentCycleHours: 12,
			Status:            domain.TripPlanned,
		},
		Route: domain.RouteData{
			DistanceMiles: 812.5,
			DurationHours: 14.75,
			Geometry:      json.RawMessage(`{"section1":{"type":"LineString"}}`),
		},
		Stops: []domain.RouteStop{
			{ID: 1, Type: domain.StopPickup, LocationID: 2, ArrivalTime: arr, DepartureTime: &dep},
			{ID: 2, Type: "food", LocationID: 2, ArrivalTime: dep},
		},
		DailyLogs: []domain.DailyLog{{
			ID:     9,
			TripID: tripID,
			Date:   time.Date(received.Year(), received.Month(), received.Day(), 0, 0, 0, 0, time.UTC),
			Entries: []domain.LogEntry{
				{ID: 1, Status: domain.DutyDriving, StartTime: received, EndTime: &end, Remarks: "depart"},
			},
		}},
		ReceivedAt: received,
	}
}

func TestPlanRepo_SaveAndGet(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	received := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	saved, err := r.Save(ctx, planFixture(7001, received))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, int64(7001), saved.TripID)
	assert.Equal(t, 2, saved.StopCount)
	assert.Equal(t, 1, saved.DayCount)

	got, err := r.GetByTripID(ctx, 7001)
	require.NoError(t, err)
	require.NotNil(t, got.Plan)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, domain.TripPlanned, got.TripStatus)
	assert.InDelta(t, 812.5, got.DistanceMiles, 1e-9)
	assert.True(t, got.ReceivedAt.Equal(received))

	require.Len(t, got.Plan.Stops, 2)
	assert.Equal(t, domain.StopType("food"), got.Plan.Stops[1].Type)
	assert.Nil(t, got.Plan.Stops[1].DepartureTime)
	require.Len(t, got.Plan.DailyLogs, 1)
	assert.Equal(t, "depart", got.Plan.DailyLogs[0].Entries[0].Remarks)
	assert.JSONEq(t, `{"section1":{"type":"LineString"}}`, string(got.Plan.Route.Geometry))
}

func TestPlanRepo_SaveReplacesSameTrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	received := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	first, err := r.Save(ctx, planFixture(7002, received))
	require.NoError(t, err)

	again := planFixture(7002, received.Add(time.Hour))
	again.Stops = again.Stops[:1]
	second, err := r.Save(ctx, again)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.StopCount)
	assert.True(t, second.ReceivedAt.Equal(received.Add(time.Hour)))
}

func TestPlanRepo_GetByTripID_NotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetByTripID(context.Background(), 999999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlanRepo_ListPaged(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	for i := range 3 {
		_, err := r.Save(ctx, planFixture(int64(7100+i), base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(3))
	require.Len(t, page, 2)
	assert.Equal(t, int64(7102), page[0].TripID)
	assert.Equal(t, int64(7101), page[1].TripID)
	assert.Nil(t, page[0].Plan)
}

func TestPlanRepo_Delete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.Save(ctx, planFixture(7200, time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, 7200))
	assert.ErrorIs(t, r.Delete(ctx, 7200), domain.ErrNotFound)
}

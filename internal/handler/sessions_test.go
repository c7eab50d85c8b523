package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/handler"
	"github.com/pkordes/eld-planner/backend/internal/planner"
	"github.com/pkordes/eld-planner/backend/internal/session"
)

func TestListLocations(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)

	rec := env.do(t, http.MethodGet, "/locations", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var locs []domain.Location
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&locs))
	assert.Len(t, locs, 3)
}

func TestListLocations_UpstreamError(t *testing.T) {
	locs := &mockLocations{list: func(context.Context) ([]domain.Location, error) {
		return nil, &planner.ServiceError{Op: "list locations", StatusCode: 503}
	}}
	env := newEnv(t, fixturePlanner(), locs, nil)

	rec := env.do(t, http.MethodGet, "/locations", nil)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "upstream_error", decodeError(t, rec).Code)
}

func TestCreateSession_ReturnsDefaults(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)

	rec := env.do(t, http.MethodPost, "/sessions", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "/sessions/"+resp.ID.String(), rec.Header().Get("Location"))
	assert.Equal(t, session.StateIdle, resp.State)
	assert.Len(t, resp.Locations, 3)
	assert.Equal(t, domain.DefaultSelection{CurrentLocationID: 1, PickupLocationID: 2, DropoffLocationID: 3}, resp.Defaults)
	assert.Nil(t, resp.Plan)
	assert.Empty(t, resp.Days)
}

func TestGetSession_NotFound(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)

	rec := env.do(t, http.MethodGet, "/sessions/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestGetSession_InvalidID(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)

	rec := env.do(t, http.MethodGet, "/sessions/not-a-uuid", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSession(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)
	id := env.newSession(t)

	rec := env.do(t, http.MethodDelete, "/sessions/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/sessions/"+id, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitTrip_Ready(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)
	id := env.newSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/submit", validSubmit())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, session.StateReady, resp.State)
	require.NotNil(t, resp.Trip)
	assert.Equal(t, "PLANNED", resp.Trip.StatusLabel)
	assert.Equal(t, "primary", resp.Trip.StatusColour)

	require.NotNil(t, resp.Plan)
	assert.Equal(t, "1500 mi", resp.Plan.Summary.TotalDistance)
	assert.Equal(t, "25h 0m", resp.Plan.Summary.TotalDuration)
	assert.Equal(t, "24h 0m", resp.Plan.Summary.DrivingTime)
	assert.Equal(t, "0h 30m", resp.Plan.Summary.RestTime)
	assert.Equal(t, "2h 0m", resp.Plan.Summary.ServiceTime)

	require.Len(t, resp.Plan.Stops, 3)
	assert.Equal(t, "Pickup", resp.Plan.Stops[0].TypeLabel)
	assert.Equal(t, "Denver, CO", resp.Plan.Stops[0].LocationName)
	assert.Equal(t, "Jun 2, 2025, 08:00 AM", resp.Plan.Stops[0].Arrival)
	assert.Equal(t, "N/A", resp.Plan.Stops[1].LocationName)

	assert.Equal(t, 0, resp.SelectedDay)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, "Mon, Jun 2", resp.Days[0].Label)
	require.NotNil(t, resp.CurrentDay)
	assert.Equal(t, dayindexPlaceholder, resp.CurrentDay.Placeholder)
}

func TestSubmitTrip_CycleHoursRejected(t *testing.T) {
	p := fixturePlanner()
	called := false
	p.createTrip = func(context.Context, planner.TripRequest) (domain.Trip, error) {
		called = true
		return domain.Trip{}, nil
	}
	env := newEnv(t, p, fixtureLocations(), nil)
	id := env.newSession(t)

	body := validSubmit()
	body["current_cycle_hours"] = 75
	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/submit", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "validation_error", e.Code)
	assert.Equal(t, session.MsgInvalidCycleHours, e.Message)
	assert.False(t, called)
}

func TestSubmitTrip_UnknownLocation(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)
	id := env.newSession(t)

	body := validSubmit()
	body["pickup_location_id"] = 99
	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/submit", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, session.MsgInvalidLocations, decodeError(t, rec).Message)
}

func TestSubmitTrip_UpstreamDetail(t *testing.T) {
	p := fixturePlanner()
	p.createTrip = func(context.Context, planner.TripRequest) (domain.Trip, error) {
		return domain.Trip{}, &planner.ServiceError{Op: "create trip", StatusCode: 400, Detail: "driver: Invalid pk \"1\"."}
	}
	env := newEnv(t, p, fixtureLocations(), nil)
	id := env.newSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/submit", validSubmit())

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, `driver: Invalid pk "1".`, decodeError(t, rec).Message)

	rec = env.do(t, http.MethodGet, "/sessions/"+id, nil)
	var resp handler.SessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, session.StateError, resp.State)
}

func TestSubmitTrip_RouteFailureFallbackMessage(t *testing.T) {
	p := fixturePlanner()
	p.calculateRoute = func(context.Context, int64) (planner.RouteResult, error) {
		return planner.RouteResult{}, &planner.ServiceError{Op: "calculate route", StatusCode: 500}
	}
	env := newEnv(t, p, fixtureLocations(), nil)
	id := env.newSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/submit", validSubmit())

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, session.MsgCalculateRouteFailed, decodeError(t, rec).Message)
}

func TestSubmitTrip_Busy(t *testing.T) {
	p := fixturePlanner()
	inRoute := make(chan struct{})
	release := make(chan struct{})
	base := p.calculateRoute
	p.calculateRoute = func(ctx context.Context, id int64) (planner.RouteResult, error) {
		close(inRoute)
		<-release
		return base(ctx, id)
	}
	env := newEnv(t, p, fixtureLocations(), nil)
	id := env.newSession(t)

	done := make(chan int, 1)
	go func() {
		done <- env.do(t, http.MethodPost, "/sessions/"+id+"/submit", validSubmit()).Code
	}()
	<-inRoute

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/submit", validSubmit())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "busy", decodeError(t, rec).Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestSubmitTrip_BadBody(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)
	id := env.newSession(t)

	rec := env.do(t, http.MethodPost, "/sessions/"+id+"/submit", map[string]any{"unknown": true})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSelectDay(t *testing.T) {
	env := newEnv(t, fixturePlanner(), fixtureLocations(), nil)
	id := env.newSession(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/sessions/"+id+"/submit", validSubmit()).Code)

	rec := env.do(t, http.MethodPut, "/sessions/"+id+"/selected-day", map[string]any{"index": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.SelectDayResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, handler.SelectDayResponse{SelectedDay: 1, Changed: true}, resp)

	rec = env.do(t, http.MethodPut, "/sessions/"+id+"/selected-day", map[string]any{"index": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, handler.SelectDayResponse{SelectedDay: 1, Changed: false}, resp)

	rec = env.do(t, http.MethodPut, "/sessions/"+id+"/selected-day", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

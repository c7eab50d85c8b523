// Package session drives one user's trip-planning flow: it loads the
// location list, validates and submits a trip to the planner service, and
// holds the resulting plan, summary and day selection for presentation.
//
// The request lifecycle is
//
//	idle → submitting → awaiting_route → ready
//
// with error reachable from validation, submitting and awaiting_route.
// A Controller serialises its own state; network calls run without the
// lock so readers observe the transient states.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/eld-planner/backend/internal/dayindex"
	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/planner"
	"github.com/pkordes/eld-planner/backend/internal/rollup"
)

// State is the request status of a session.
type State string

const (
	StateIdle          State = "idle"
	StateSubmitting    State = "submitting"
	StateAwaitingRoute State = "awaiting_route"
	StateReady         State = "ready"
	StateError         State = "error"
)

// Busy reports whether a submission is in flight.
func (s State) Busy() bool {
	return s == StateSubmitting || s == StateAwaitingRoute
}

// Messages shown to the user when a step fails without a service detail.
const (
	MsgCreateTripFailed     = "Failed to create trip"
	MsgCalculateRouteFailed = "Failed to calculate route"
	MsgInvalidLocations     = "Please select valid locations"
	MsgInvalidCycleHours    = "Cycle hours must be between 0 and 70"
)

// Planner is the subset of the planner service a session uses.
type Planner interface {
	CreateTrip(ctx context.Context, in planner.TripRequest) (domain.Trip, error)
	CalculateRoute(ctx context.Context, tripID int64) (planner.RouteResult, error)
}

// LocationLister supplies the locations offered for selection.
type LocationLister interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

// Archiver records plans that reached ready. Failures are logged only.
type Archiver interface {
	Save(ctx context.Context, plan domain.Plan) error
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Planner   Planner
	Locations LocationLister
	Archiver  Archiver // optional

	// Now defaults to time.Now.
	Now func() time.Time
}

// SubmitRequest is the user's trip input.
type SubmitRequest struct {
	CurrentLocationID int64   `json:"current_location_id"`
	PickupLocationID  int64   `json:"pickup_location_id"`
	DropoffLocationID int64   `json:"dropoff_location_id"`
	CycleHours        float64 `json:"current_cycle_hours" validate:"gte=0,lte=70"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Controller is one session's state machine.
type Controller struct {
	deps Deps

	mu        sync.Mutex
	state     State
	errMsg    string
	locations []domain.Location
	defaults  domain.DefaultSelection
	trip      *domain.Trip
	plan      *domain.Plan
	summary   rollup.Summary
	days      *dayindex.Index
	touched   time.Time
}

// NewController returns an idle Controller.
func NewController(deps Deps) *Controller {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Controller{
		deps:    deps,
		state:   StateIdle,
		days:    dayindex.New(nil),
		touched: deps.Now(),
	}
}

// LoadLocations fetches the location list and computes the default
// selection. It does not change the request state.
func (c *Controller) LoadLocations(ctx context.Context) error {
	locs, err := c.deps.Locations.ListLocations(ctx)
	if err != nil {
		return fmt.Errorf("session.Controller.LoadLocations: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.locations = locs
	c.defaults = domain.DefaultsFor(locs)
	c.touched = c.deps.Now()
	return nil
}

// Submit validates req, creates the trip and requests its route. On
// success the plan, summary and day index are replaced together and the
// session is ready. Previous results stay visible until then.
//
// Submit returns domain.ErrBusy while another submission is in flight,
// domain.ErrValidation for local rejections (no request is sent) and an
// error matching domain.ErrUpstream when the planner fails.
func (c *Controller) Submit(ctx context.Context, req SubmitRequest) error {
	c.mu.Lock()
	if c.state.Busy() {
		c.mu.Unlock()
		return fmt.Errorf("session.Controller.Submit: %w", domain.ErrBusy)
	}
	c.touched = c.deps.Now()
	if msg := c.validateLocked(req); msg != "" {
		c.state = StateError
		c.errMsg = msg
		c.mu.Unlock()
		return fmt.Errorf("session.Controller.Submit: %w: %s", domain.ErrValidation, msg)
	}
	c.state = StateSubmitting
	c.errMsg = ""
	c.mu.Unlock()

	trip, err := c.deps.Planner.CreateTrip(ctx, planner.TripRequest{
		CurrentLocationID: req.CurrentLocationID,
		PickupLocationID:  req.PickupLocationID,
		DropoffLocationID: req.DropoffLocationID,
		CurrentCycleHours: req.CycleHours,
	})
	if err != nil {
		c.fail(failureMessage(err, MsgCreateTripFailed))
		return fmt.Errorf("session.Controller.Submit: create trip: %w", err)
	}

	c.mu.Lock()
	c.state = StateAwaitingRoute
	c.trip = &trip
	c.mu.Unlock()

	res, err := c.deps.Planner.CalculateRoute(ctx, trip.ID)
	if err != nil {
		c.fail(failureMessage(err, MsgCalculateRouteFailed))
		return fmt.Errorf("session.Controller.Submit: calculate route: %w", err)
	}

	plan := domain.Plan{
		Trip:       trip,
		Route:      res.Route,
		Stops:      res.Stops,
		DailyLogs:  res.DailyLogs,
		ReceivedAt: c.deps.Now(),
	}
	summary := rollup.Summarize(plan.Route, plan.Stops)

	c.mu.Lock()
	c.plan = &plan
	c.summary = summary
	c.days.Reset(plan.DailyLogs)
	c.state = StateReady
	c.touched = c.deps.Now()
	c.mu.Unlock()

	if summary.ClampedStops > 0 {
		slog.WarnContext(ctx, "stops depart before they arrive",
			"trip_id", trip.ID, "count", summary.ClampedStops)
	}

	if c.deps.Archiver != nil {
		if err := c.deps.Archiver.Save(ctx, plan.Clone()); err != nil {
			slog.WarnContext(ctx, "archive plan failed", "trip_id", trip.ID, "error", err)
		}
	}
	return nil
}

func (c *Controller) validateLocked(req SubmitRequest) string {
	if err := validate.Struct(req); err != nil {
		return MsgInvalidCycleHours
	}
	for _, id := range []int64{req.CurrentLocationID, req.PickupLocationID, req.DropoffLocationID} {
		if _, ok := domain.FindLocation(c.locations, id); !ok {
			return MsgInvalidLocations
		}
	}
	return ""
}

func (c *Controller) fail(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateError
	c.errMsg = msg
	c.touched = c.deps.Now()
}

// failureMessage prefers the planner's own explanation over fallback.
func failureMessage(err error, fallback string) string {
	var se *planner.ServiceError
	if errors.As(err, &se) && se.Detail != "" {
		return se.Detail
	}
	return fallback
}

// SelectDay moves the day cursor. Out-of-range indices are ignored.
func (c *Controller) SelectDay(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touched = c.deps.Now()
	return c.days.Select(i)
}

// State returns the current request state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Plan returns a copy of the current plan, or false before the first
// successful submission.
func (c *Controller) Plan() (domain.Plan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.plan == nil {
		return domain.Plan{}, false
	}
	return c.plan.Clone(), true
}

// Day renders day i in loc. It returns domain.ErrNotFound when no such day exists.
func (c *Controller) Day(i int, loc *time.Location) (dayindex.DayView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.days.View(i, loc)
	if !ok {
		return dayindex.DayView{}, fmt.Errorf("session.Controller.Day: day %d: %w", i, domain.ErrNotFound)
	}
	return v, nil
}

// Log returns a copy of daily log i.
func (c *Controller) Log(i int) (domain.DailyLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.days.Log(i)
	if !ok {
		return domain.DailyLog{}, fmt.Errorf("session.Controller.Log: day %d: %w", i, domain.ErrNotFound)
	}
	return l.Clone(), nil
}

// LastActive is when the session was last used.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched
}

package session

import (
	"github.com/pkordes/eld-planner/backend/internal/dayindex"
	"github.com/pkordes/eld-planner/backend/internal/domain"
	"github.com/pkordes/eld-planner/backend/internal/rollup"
)

// Snapshot is an independent copy of a session's observable state.
//
// Trip is the trip most recently created, which during awaiting_route may
// differ from Plan.Trip. Plan and Summary are nil until a submission succeeds.
type Snapshot struct {
	State       State
	Error       string
	Locations   []domain.Location
	Defaults    domain.DefaultSelection
	Trip        *domain.Trip
	Plan        *domain.Plan
	Summary     *rollup.Summary
	SelectedDay int
	Days        []dayindex.Tab
}

// Snapshot copies the current state. Mutating the result does not affect
// the session.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:       c.state,
		Error:       c.errMsg,
		Locations:   append([]domain.Location(nil), c.locations...),
		Defaults:    c.defaults,
		SelectedDay: c.days.Selected(),
		Days:        c.days.Tabs(),
	}
	if c.trip != nil {
		t := c.trip.Clone()
		s.Trip = &t
	}
	if c.plan != nil {
		p := c.plan.Clone()
		sum := c.summary
		s.Plan = &p
		s.Summary = &sum
	}
	return s
}

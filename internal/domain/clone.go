package domain

import (
	"encoding/json"
	"time"
)

// Clone returns a deep copy of p. Callers handed a clone may modify it
// freely without affecting the original.
func (p Plan) Clone() Plan {
	out := p
	out.Trip = p.Trip.Clone()
	out.Route = p.Route.Clone()
	if p.Stops != nil {
		out.Stops = make([]RouteStop, len(p.Stops))
		for i, s := range p.Stops {
			out.Stops[i] = s.Clone()
		}
	}
	if p.DailyLogs != nil {
		out.DailyLogs = make([]DailyLog, len(p.DailyLogs))
		for i, l := range p.DailyLogs {
			out.DailyLogs[i] = l.Clone()
		}
	}
	return out
}

func (t Trip) Clone() Trip {
	out := t
	out.CurrentLocation = cloneLocation(t.CurrentLocation)
	out.PickupLocation = cloneLocation(t.PickupLocation)
	out.DropoffLocation = cloneLocation(t.DropoffLocation)
	return out
}

func (r RouteData) Clone() RouteData {
	out := r
	if r.CurrentToPickup != nil {
		leg := *r.CurrentToPickup
		out.CurrentToPickup = &leg
	}
	if r.PickupToDropoff != nil {
		leg := *r.PickupToDropoff
		out.PickupToDropoff = &leg
	}
	if r.Geometry != nil {
		out.Geometry = append(json.RawMessage(nil), r.Geometry...)
	}
	return out
}

func (s RouteStop) Clone() RouteStop {
	out := s
	out.Location = cloneLocation(s.Location)
	out.DepartureTime = cloneTime(s.DepartureTime)
	return out
}

func (l DailyLog) Clone() DailyLog {
	out := l
	if l.Entries != nil {
		out.Entries = make([]LogEntry, len(l.Entries))
		for i, e := range l.Entries {
			e.EndTime = cloneTime(e.EndTime)
			out.Entries[i] = e
		}
	}
	return out
}

func cloneLocation(l *Location) *Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

package domain

// Location is a named place known to the planner service.
// Locations are immutable once created and referenced by ID from trips and stops.
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// FindLocation returns the location with the given id, or false when none matches.
func FindLocation(locations []Location, id int64) (Location, bool) {
	for _, l := range locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

// DefaultSelection holds the pre-selected origin, pickup and dropoff
// locations offered when a session starts.
type DefaultSelection struct {
	CurrentLocationID int64 `json:"current_location_id"`
	PickupLocationID  int64 `json:"pickup_location_id"`
	DropoffLocationID int64 `json:"dropoff_location_id"`
}

// DefaultsFor picks the first three locations as current, pickup and dropoff.
// When fewer than three exist the first location fills the missing slots.
// The zero value is returned for an empty list.
func DefaultsFor(locations []Location) DefaultSelection {
	if len(locations) == 0 {
		return DefaultSelection{}
	}
	d := DefaultSelection{
		CurrentLocationID: locations[0].ID,
		PickupLocationID:  locations[0].ID,
		DropoffLocationID: locations[0].ID,
	}
	if len(locations) > 1 {
		d.PickupLocationID = locations[1].ID
	}
	if len(locations) > 2 {
		d.DropoffLocationID = locations[2].ID
	}
	return d
}

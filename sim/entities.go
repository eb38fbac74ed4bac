package sim

import "fmt"

// AccessPoint is a network node fixed at a Location.
// Connected and Speed are transient: both are rebuilt every tick.
type AccessPoint struct {
	ID       string
	Location Location
	// Capacity scales the load factor. It is not a hard limit: more devices
	// than Capacity may connect in a tick.
	Capacity  int
	Connected []string     // device IDs attached this tick
	Speed     ServiceSpeed // absent until computed
}

// NewAccessPoint validates capacity > 0 so the load factor is always defined.
func NewAccessPoint(id string, loc Location, capacity int) (*AccessPoint, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: access point id is empty", ErrInvalidConfiguration)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: access point %s capacity must be > 0, got %d", ErrInvalidConfiguration, id, capacity)
	}
	return &AccessPoint{ID: id, Location: loc, Capacity: capacity}, nil
}

// ConnectedCount returns the number of devices attached this tick.
func (ap *AccessPoint) ConnectedCount() int { return len(ap.Connected) }

// Device is a passenger's handset. Its Location is redrawn every tick.
type Device struct {
	ID       string
	Location Location
}

// Passenger owns exactly one Device by ID. DriverID/DriverName are empty
// when no driver is assigned this tick.
type Passenger struct {
	ID          string
	DeviceID    string
	Destination Location
	DriverID    string
	DriverName  string
}

// HasDriver reports whether a driver was assigned this tick.
func (p *Passenger) HasDriver() bool { return p.DriverID != "" }

// Driver is a ride provider. PassengerID is empty while available.
type Driver struct {
	ID          string
	Name        string
	Location    Location
	Available   bool
	PassengerID string
}

// Status returns StatusBusy when a passenger is assigned, else StatusAvailable.
func (d *Driver) Status() string {
	if d.PassengerID != "" {
		return StatusBusy
	}
	return StatusAvailable
}

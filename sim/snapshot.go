package sim

// Driver status labels used in DriverView.
const (
	StatusBusy      = "Busy"
	StatusAvailable = "Available"
)

// DriverView is one row of the driver table.
type DriverView struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// AccessPointView is one row of the access point table.
type AccessPointView struct {
	ID               string       `json:"id"`
	Location         string       `json:"location"`
	ConnectedDevices int          `json:"connected_devices"`
	ServiceSpeed     ServiceSpeed `json:"service_speed"`
}

// RideView is one row of the ride table. AssignedDriver is empty when the
// passenger was left unmatched.
type RideView struct {
	PassengerID    string `json:"passenger"`
	Location       string `json:"location"`
	Destination    string `json:"destination"`
	AssignedDriver string `json:"assigned_driver,omitempty"`
}

// Snapshot is a copy of the registries after one tick. It shares no memory
// with the Simulator.
type Snapshot struct {
	Tick         int64             `json:"tick"`
	Drivers      []DriverView      `json:"drivers"`
	AccessPoints []AccessPointView `json:"access_points"`
	Rides        []RideView        `json:"rides"`
}

// BusyDrivers counts drivers with StatusBusy.
func (s Snapshot) BusyDrivers() int {
	n := 0
	for _, d := range s.Drivers {
		if d.Status == StatusBusy {
			n++
		}
	}
	return n
}

// MatchedRides counts rides with an assigned driver.
func (s Snapshot) MatchedRides() int {
	n := 0
	for _, r := range s.Rides {
		if r.AssignedDriver != "" {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Tick:         s.Tick,
		Drivers:      cloneRows(s.Drivers),
		AccessPoints: cloneRows(s.AccessPoints),
		Rides:        cloneRows(s.Rides),
	}
}

// cloneRows copies rows, keeping nil and empty distinct for JSON output.
func cloneRows[T any](rows []T) []T {
	if rows == nil {
		return nil
	}
	out := make([]T, len(rows))
	copy(out, rows)
	return out
}

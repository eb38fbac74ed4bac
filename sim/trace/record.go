// Package trace provides per-tick decision recording for connectivity and
// matching analysis. This package has no dependencies on sim/ — it stores pure data types.
package trace

// TickRecord captures the population seen by one tick.
type TickRecord struct {
	Tick       int64
	Passengers int
	Drivers    int
}

// ConnectionRecord captures one device's access point selection.
type ConnectionRecord struct {
	Tick          int64
	DeviceID      string
	AccessPointID string // empty when no access point was co-located
	Candidates    int
}

// MatchRecord captures one formed driver-passenger pair.
type MatchRecord struct {
	Tick        int64
	PassengerID string
	DriverID    string
	DriverName  string
}

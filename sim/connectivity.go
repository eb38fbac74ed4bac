package sim

import "math/rand"

// Connection records where one device attached during a tick.
// AccessPointID is empty when no access point shares the device's location.
type Connection struct {
	DeviceID      string
	AccessPointID string
	Candidates    int // co-located access points considered
}

// ResetConnections discards every access point's connected set.
func ResetConnections(aps []*AccessPoint) {
	for _, ap := range aps {
		ap.Connected = ap.Connected[:0]
	}
}

// AssignConnectivity attaches each device to one access point at the device's
// location, chosen uniformly among co-located candidates. Devices with no
// candidate stay unconnected. Capacity is not enforced.
//
// Callers must ResetConnections first; AssignConnectivity only appends.
func AssignConnectivity(devices []*Device, aps []*AccessPoint, rng *rand.Rand) []Connection {
	conns := make([]Connection, 0, len(devices))
	var candidates []*AccessPoint
	for _, d := range devices {
		candidates = candidates[:0]
		for _, ap := range aps {
			if ap.Location == d.Location {
				candidates = append(candidates, ap)
			}
		}
		c := Connection{DeviceID: d.ID, Candidates: len(candidates)}
		if len(candidates) > 0 {
			ap := candidates[rng.Intn(len(candidates))]
			ap.Connected = append(ap.Connected, d.ID)
			c.AccessPointID = ap.ID
		}
		conns = append(conns, c)
	}
	return conns
}

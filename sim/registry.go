package sim

import "fmt"

// Registry owns every entity of a run in insertion order. Entities reference
// each other by ID only; the lookup maps index into the ordered slices.
// Entities are never removed.
type Registry struct {
	AccessPoints []*AccessPoint
	Devices      []*Device
	Passengers   []*Passenger
	Drivers      []*Driver

	accessPointByID map[string]int
	deviceByID      map[string]int
	passengerByID   map[string]int
	driverByID      map[string]int
	deviceOwner     map[string]string // device ID → passenger ID
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		accessPointByID: make(map[string]int),
		deviceByID:      make(map[string]int),
		passengerByID:   make(map[string]int),
		driverByID:      make(map[string]int),
		deviceOwner:     make(map[string]string),
	}
}

// AddAccessPoint registers ap. IDs must be unique.
func (r *Registry) AddAccessPoint(ap *AccessPoint) error {
	if _, dup := r.accessPointByID[ap.ID]; dup {
		return fmt.Errorf("%w: duplicate access point %q", ErrInvalidConfiguration, ap.ID)
	}
	r.accessPointByID[ap.ID] = len(r.AccessPoints)
	r.AccessPoints = append(r.AccessPoints, ap)
	return nil
}

// AddDevice registers d. IDs must be unique.
func (r *Registry) AddDevice(d *Device) error {
	if _, dup := r.deviceByID[d.ID]; dup {
		return fmt.Errorf("%w: duplicate device %q", ErrInvalidConfiguration, d.ID)
	}
	r.deviceByID[d.ID] = len(r.Devices)
	r.Devices = append(r.Devices, d)
	return nil
}

// AddPassenger registers p. Its device must already be registered and not
// owned by another passenger.
func (r *Registry) AddPassenger(p *Passenger) error {
	if _, dup := r.passengerByID[p.ID]; dup {
		return fmt.Errorf("%w: duplicate passenger %q", ErrInvalidConfiguration, p.ID)
	}
	if _, ok := r.deviceByID[p.DeviceID]; !ok {
		return fmt.Errorf("%w: passenger %s references unknown device %q", ErrInvalidConfiguration, p.ID, p.DeviceID)
	}
	if owner, taken := r.deviceOwner[p.DeviceID]; taken {
		return fmt.Errorf("%w: device %s already owned by passenger %s", ErrInvalidConfiguration, p.DeviceID, owner)
	}
	r.passengerByID[p.ID] = len(r.Passengers)
	r.deviceOwner[p.DeviceID] = p.ID
	r.Passengers = append(r.Passengers, p)
	return nil
}

// AddDriver registers d. IDs must be unique.
func (r *Registry) AddDriver(d *Driver) error {
	if _, dup := r.driverByID[d.ID]; dup {
		return fmt.Errorf("%w: duplicate driver %q", ErrInvalidConfiguration, d.ID)
	}
	r.driverByID[d.ID] = len(r.Drivers)
	r.Drivers = append(r.Drivers, d)
	return nil
}

// AccessPoint looks up an access point by ID.
func (r *Registry) AccessPoint(id string) (*AccessPoint, bool) {
	i, ok := r.accessPointByID[id]
	if !ok {
		return nil, false
	}
	return r.AccessPoints[i], true
}

// Device looks up a device by ID.
func (r *Registry) Device(id string) (*Device, bool) {
	i, ok := r.deviceByID[id]
	if !ok {
		return nil, false
	}
	return r.Devices[i], true
}

// Passenger looks up a passenger by ID.
func (r *Registry) Passenger(id string) (*Passenger, bool) {
	i, ok := r.passengerByID[id]
	if !ok {
		return nil, false
	}
	return r.Passengers[i], true
}

// Driver looks up a driver by ID.
func (r *Registry) Driver(id string) (*Driver, bool) {
	i, ok := r.driverByID[id]
	if !ok {
		return nil, false
	}
	return r.Drivers[i], true
}

// DeviceOf returns the device owned by p. AddPassenger guarantees it exists.
func (r *Registry) DeviceOf(p *Passenger) *Device {
	return r.Devices[r.deviceByID[p.DeviceID]]
}

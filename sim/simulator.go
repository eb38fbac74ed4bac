// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/netride-sim/netride-sim/sim/trace"
)

// Simulator is the core object that owns every registry and is the only
// mutator of entity state. Counts are fixed at construction.
type Simulator struct {
	Locations *LocationIndex
	Registry  *Registry
	BaseSpeed float64
	// TickCount is the index the next Tick will report.
	TickCount int64

	matcher MatchingStrategy
	rng     *PartitionedRNG
	trace   *trace.SimulationTrace // nil when tracing is off
	last    Snapshot
}

// NewSimulator validates cfg, builds every entity and draws initial positions
// from the mobility stream of key.
func NewSimulator(cfg ScenarioConfig, key SimulationKey) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	locs, err := NewLocationIndex(cfg.Locations)
	if err != nil {
		return nil, err
	}
	matcher, err := NewMatchingStrategy(cfg.Matching)
	if err != nil {
		return nil, err
	}

	reg := NewRegistry()
	for _, apc := range cfg.AccessPoints {
		loc, _ := locs.Lookup(apc.Location)
		ap, err := NewAccessPoint(apc.ID, loc, apc.Capacity)
		if err != nil {
			return nil, err
		}
		if err := reg.AddAccessPoint(ap); err != nil {
			return nil, err
		}
	}
	for i := 0; i < cfg.Devices; i++ {
		dev := &Device{ID: fmt.Sprintf("D-%d", 1000+i)}
		if err := reg.AddDevice(dev); err != nil {
			return nil, err
		}
		if err := reg.AddPassenger(&Passenger{ID: fmt.Sprintf("P-%d", 300+i), DeviceID: dev.ID}); err != nil {
			return nil, err
		}
	}
	for i := 0; i < cfg.Drivers; i++ {
		d := &Driver{ID: fmt.Sprintf("DR-%d", 200+i), Name: cfg.DriverNames[i], Available: true}
		if err := reg.AddDriver(d); err != nil {
			return nil, err
		}
	}

	s := &Simulator{
		Locations: locs,
		Registry:  reg,
		BaseSpeed: cfg.BaseSpeed,
		matcher:   matcher,
		rng:       NewPartitionedRNG(key),
	}
	s.warnUncoveredLocations()
	s.reposition()
	return s, nil
}

// SetTrace enables decision recording. Pass nil to disable.
func (s *Simulator) SetTrace(t *trace.SimulationTrace) {
	s.trace = t
}

// Trace returns the active trace, or nil.
func (s *Simulator) Trace() *trace.SimulationTrace {
	return s.trace
}

// Key returns the SimulationKey the run was seeded with.
func (s *Simulator) Key() SimulationKey {
	return s.rng.Key()
}

// LastSnapshot returns a copy of the snapshot emitted by the most recent
// Tick (zero value before the first Tick).
func (s *Simulator) LastSnapshot() Snapshot {
	return s.last.Clone()
}

// Tick advances the simulation by one step and returns its snapshot.
// All repositioning completes before connectivity uses the new positions.
func (s *Simulator) Tick() Snapshot {
	tick := s.TickCount
	reg := s.Registry

	s.reposition()

	ResetConnections(reg.AccessPoints)
	conns := AssignConnectivity(reg.Devices, reg.AccessPoints, s.rng.ForSubsystem(SubsystemConnectivity))

	pairs := s.matcher.Match(reg.Drivers, reg.Passengers, s.rng.ForSubsystem(SubsystemMatching))

	s.UpdateServiceSpeeds()

	s.record(tick, conns, pairs)
	s.last = s.snapshot(tick)
	s.TickCount++

	logrus.Debugf("[tick %07d] %d/%d devices connected, %d pairs formed", tick, countConnected(conns), len(conns), len(pairs))
	return s.last.Clone()
}

// UpdateServiceSpeeds recomputes every access point's ServiceSpeed from the
// current passenger device locations and connected counts.
func (s *Simulator) UpdateServiceSpeeds() {
	locs := make([]Location, len(s.Registry.Passengers))
	for i, p := range s.Registry.Passengers {
		locs[i] = s.Registry.DeviceOf(p).Location
	}
	for _, ap := range s.Registry.AccessPoints {
		ap.Speed = EstimateServiceSpeed(ap, locs, s.BaseSpeed)
	}
}

// reposition redraws each passenger's device location and destination
// (never equal to the device location), then each driver's location.
func (s *Simulator) reposition() {
	rng := s.rng.ForSubsystem(SubsystemMobility)
	for _, p := range s.Registry.Passengers {
		dev := s.Registry.DeviceOf(p)
		dev.Location = s.Locations.Random(rng)
		p.Destination = s.Locations.RandomExcept(rng, dev.Location)
	}
	for _, d := range s.Registry.Drivers {
		d.Location = s.Locations.Random(rng)
	}
}

func (s *Simulator) record(tick int64, conns []Connection, pairs []Pair) {
	if s.trace == nil || s.trace.Config.Level != trace.TraceLevelDecisions {
		return
	}
	s.trace.RecordTick(trace.TickRecord{
		Tick:       tick,
		Passengers: len(s.Registry.Passengers),
		Drivers:    len(s.Registry.Drivers),
	})
	for _, c := range conns {
		s.trace.RecordConnection(trace.ConnectionRecord{
			Tick:          tick,
			DeviceID:      c.DeviceID,
			AccessPointID: c.AccessPointID,
			Candidates:    c.Candidates,
		})
	}
	for _, p := range pairs {
		s.trace.RecordMatch(trace.MatchRecord{
			Tick:        tick,
			PassengerID: p.PassengerID,
			DriverID:    p.DriverID,
			DriverName:  p.DriverName,
		})
	}
}

func (s *Simulator) snapshot(tick int64) Snapshot {
	reg := s.Registry
	snap := Snapshot{
		Tick:         tick,
		Drivers:      make([]DriverView, len(reg.Drivers)),
		AccessPoints: make([]AccessPointView, len(reg.AccessPoints)),
		Rides:        make([]RideView, len(reg.Passengers)),
	}
	for i, d := range reg.Drivers {
		snap.Drivers[i] = DriverView{
			Name:     d.Name,
			Location: s.Locations.Name(d.Location),
			Status:   d.Status(),
		}
	}
	for i, ap := range reg.AccessPoints {
		snap.AccessPoints[i] = AccessPointView{
			ID:               ap.ID,
			Location:         s.Locations.Name(ap.Location),
			ConnectedDevices: ap.ConnectedCount(),
			ServiceSpeed:     ap.Speed,
		}
	}
	for i, p := range reg.Passengers {
		snap.Rides[i] = RideView{
			PassengerID:    p.ID,
			Location:       s.Locations.Name(reg.DeviceOf(p).Location),
			Destination:    s.Locations.Name(p.Destination),
			AssignedDriver: p.DriverName,
		}
	}
	return snap
}

// warnUncoveredLocations logs sites where devices can never connect.
func (s *Simulator) warnUncoveredLocations() {
	covered := make(map[Location]bool, len(s.Registry.AccessPoints))
	for _, ap := range s.Registry.AccessPoints {
		covered[ap.Location] = true
	}
	for _, l := range s.Locations.All() {
		if !covered[l] {
			logrus.Warnf("No access point at %s; devices there stay unconnected", s.Locations.Name(l))
		}
	}
}

func countConnected(conns []Connection) int {
	n := 0
	for _, c := range conns {
		if c.AccessPointID != "" {
			n++
		}
	}
	return n
}

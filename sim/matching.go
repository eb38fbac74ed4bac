package sim

import (
	"fmt"
	"math/rand"
	"sort"
)

// Pair is one driver-passenger assignment formed during a tick.
type Pair struct {
	PassengerID string
	DriverID    string
	DriverName  string
}

// MatchingStrategy pairs drivers with passengers once per tick.
// Implementations must reset every previous assignment before pairing,
// and must not pair any driver or passenger more than once.
type MatchingStrategy interface {
	Match(drivers []*Driver, passengers []*Passenger, rng *rand.Rand) []Pair
}

// ValidMatchingStrategies is the set of recognized matching strategy names.
// Shared by ScenarioConfig.Validate() and NewMatchingStrategy().
var ValidMatchingStrategies = map[string]bool{"": true, "random": true}

// NewMatchingStrategy creates a strategy by name. "" selects "random".
func NewMatchingStrategy(name string) (MatchingStrategy, error) {
	switch name {
	case "", "random":
		return &RandomMatching{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown matching strategy %q", ErrInvalidConfiguration, name)
	}
}

// GetAvailableMatchingStrategies returns the supported strategy names.
func GetAvailableMatchingStrategies() []string {
	names := make([]string, 0, len(ValidMatchingStrategies))
	for n := range ValidMatchingStrategies {
		if n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// ResetAssignments marks every driver available and clears every passenger's
// assigned driver.
func ResetAssignments(drivers []*Driver, passengers []*Passenger) {
	for _, d := range drivers {
		d.Available = true
		d.PassengerID = ""
	}
	for _, p := range passengers {
		p.DriverID = ""
		p.DriverName = ""
	}
}

// RandomMatching pairs passengers, in registry order, with drivers drawn from
// the tail of a shuffled copy of the driver pool. Locations are ignored.
// Forms exactly min(len(drivers), len(passengers)) pairs.
type RandomMatching struct{}

// Match implements MatchingStrategy for RandomMatching.
func (m *RandomMatching) Match(drivers []*Driver, passengers []*Passenger, rng *rand.Rand) []Pair {
	ResetAssignments(drivers, passengers)

	pool := make([]*Driver, len(drivers))
	copy(pool, drivers)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	pairs := make([]Pair, 0, min(len(pool), len(passengers)))
	for _, p := range passengers {
		if len(pool) == 0 {
			break
		}
		d := pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		d.Available = false
		d.PassengerID = p.ID
		p.DriverID = d.ID
		p.DriverName = d.Name
		pairs = append(pairs, Pair{PassengerID: p.ID, DriverID: d.ID, DriverName: d.Name})
	}
	return pairs
}

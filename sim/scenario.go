package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is wrapped by every construction-time validation failure.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DefaultCapacity is the capacity given to generated access points.
const DefaultCapacity = 5

// DefaultLocations is the canonical ordered site list.
var DefaultLocations = []string{"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Shakahola"}

// DefaultDriverNames is the canonical driver name pool.
var DefaultDriverNames = []string{
	"Alice", "Bob", "Charlie", "David", "Eva", "Frank", "Grace", "Hannah",
	"Ian", "Jane", "Kevin", "Laura", "Mike", "Nina", "Oscar",
}

// AccessPointConfig places one access point.
type AccessPointConfig struct {
	ID       string `yaml:"id"`
	Location string `yaml:"location"`
	Capacity int    `yaml:"capacity"`
}

// ScenarioConfig is the fixed startup setup of a run. Entity counts never
// change once a Simulator is built from it.
type ScenarioConfig struct {
	Locations    []string            `yaml:"locations"`
	AccessPoints []AccessPointConfig `yaml:"access_points"`
	Devices      int                 `yaml:"devices"` // one passenger per device
	Drivers      int                 `yaml:"drivers"`
	DriverNames  []string            `yaml:"driver_names"` // driver i is named DriverNames[i]
	BaseSpeed    float64             `yaml:"base_speed"`
	Matching     string              `yaml:"matching"`
}

// DefaultScenario returns the canonical setup: five sites with one
// capacity-5 access point each, ten passengers and fifteen drivers.
func DefaultScenario() ScenarioConfig {
	return ScenarioConfig{
		Locations:    append([]string(nil), DefaultLocations...),
		AccessPoints: defaultAccessPoints(DefaultLocations, DefaultCapacity),
		Devices:      10,
		Drivers:      15,
		DriverNames:  append([]string(nil), DefaultDriverNames...),
		BaseSpeed:    DefaultBaseSpeed,
		Matching:     "random",
	}
}

// defaultAccessPoints places one access point per location, BS-001 onward.
func defaultAccessPoints(locations []string, capacity int) []AccessPointConfig {
	aps := make([]AccessPointConfig, len(locations))
	for i, loc := range locations {
		aps[i] = AccessPointConfig{ID: fmt.Sprintf("BS-%03d", i+1), Location: loc, Capacity: capacity}
	}
	return aps
}

// Validate checks every constraint a Simulator relies on at tick time.
func (c ScenarioConfig) Validate() error {
	locs, err := NewLocationIndex(c.Locations)
	if err != nil {
		return err
	}
	if c.Devices < 0 {
		return fmt.Errorf("%w: devices must be non-negative, got %d", ErrInvalidConfiguration, c.Devices)
	}
	if c.Drivers < 0 {
		return fmt.Errorf("%w: drivers must be non-negative, got %d", ErrInvalidConfiguration, c.Drivers)
	}
	// A destination must differ from the device's location.
	if c.Devices > 0 && locs.Len() < 2 {
		return fmt.Errorf("%w: passengers need at least 2 locations, got %d", ErrInvalidConfiguration, locs.Len())
	}
	if c.Drivers > len(c.DriverNames) {
		return fmt.Errorf("%w: %d drivers but only %d driver names", ErrInvalidConfiguration, c.Drivers, len(c.DriverNames))
	}
	for i, n := range c.DriverNames[:c.Drivers] {
		if n == "" {
			return fmt.Errorf("%w: driver name %d is empty", ErrInvalidConfiguration, i)
		}
	}
	seen := make(map[string]bool, len(c.AccessPoints))
	for _, ap := range c.AccessPoints {
		if ap.ID == "" {
			return fmt.Errorf("%w: access point id is empty", ErrInvalidConfiguration)
		}
		if seen[ap.ID] {
			return fmt.Errorf("%w: duplicate access point %q", ErrInvalidConfiguration, ap.ID)
		}
		seen[ap.ID] = true
		if _, ok := locs.Lookup(ap.Location); !ok {
			return fmt.Errorf("%w: access point %s references unknown location %q", ErrInvalidConfiguration, ap.ID, ap.Location)
		}
		if ap.Capacity <= 0 {
			return fmt.Errorf("%w: access point %s capacity must be > 0, got %d", ErrInvalidConfiguration, ap.ID, ap.Capacity)
		}
	}
	if c.BaseSpeed <= 0 || math.IsInf(c.BaseSpeed, 0) || math.IsNaN(c.BaseSpeed) {
		return fmt.Errorf("%w: base_speed must be a positive finite number, got %v", ErrInvalidConfiguration, c.BaseSpeed)
	}
	if !ValidMatchingStrategies[c.Matching] {
		return fmt.Errorf("%w: unknown matching strategy %q (available: %v)", ErrInvalidConfiguration, c.Matching, GetAvailableMatchingStrategies())
	}
	return nil
}

// scenarioFile is the on-disk form of ScenarioConfig.
// Nil fields mean "not set in YAML" and keep the DefaultScenario value.
type scenarioFile struct {
	Locations    []string          `yaml:"locations"`
	AccessPoints []accessPointFile `yaml:"access_points"`
	Capacity     *int              `yaml:"capacity"` // for generated access points
	Devices      *int              `yaml:"devices"`
	Drivers      *int              `yaml:"drivers"`
	DriverNames  []string          `yaml:"driver_names"`
	BaseSpeed    *float64          `yaml:"base_speed"`
	Matching     *string           `yaml:"matching"`
}

type accessPointFile struct {
	ID       string `yaml:"id"`
	Location string `yaml:"location"`
	Capacity *int   `yaml:"capacity"` // nil → file-level capacity or DefaultCapacity
}

// LoadScenario reads, parses and validates a YAML scenario file.
func LoadScenario(path string) (ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScenarioConfig{}, fmt.Errorf("reading scenario: %w", err)
	}
	cfg, err := ParseScenario(data)
	if err != nil {
		return ScenarioConfig{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return cfg, nil
}

// ParseScenario overlays YAML on DefaultScenario and validates the result.
// Unknown fields are rejected so typos cause errors. Empty input yields the default.
func ParseScenario(data []byte) (ScenarioConfig, error) {
	var f scenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return ScenarioConfig{}, fmt.Errorf("parsing scenario: %w", err)
	}

	cfg := DefaultScenario()
	capacity := DefaultCapacity
	if f.Capacity != nil {
		capacity = *f.Capacity
	}
	if f.Locations != nil {
		cfg.Locations = f.Locations
	}
	switch {
	case f.AccessPoints != nil:
		cfg.AccessPoints = make([]AccessPointConfig, len(f.AccessPoints))
		for i, ap := range f.AccessPoints {
			c := capacity
			if ap.Capacity != nil {
				c = *ap.Capacity
			}
			cfg.AccessPoints[i] = AccessPointConfig{ID: ap.ID, Location: ap.Location, Capacity: c}
		}
	case f.Locations != nil || f.Capacity != nil:
		cfg.AccessPoints = defaultAccessPoints(cfg.Locations, capacity)
	}
	if f.Devices != nil {
		cfg.Devices = *f.Devices
	}
	if f.Drivers != nil {
		cfg.Drivers = *f.Drivers
	}
	if f.DriverNames != nil {
		cfg.DriverNames = f.DriverNames
	}
	if f.BaseSpeed != nil {
		cfg.BaseSpeed = *f.BaseSpeed
	}
	if f.Matching != nil {
		cfg.Matching = *f.Matching
	}

	if err := cfg.Validate(); err != nil {
		return ScenarioConfig{}, err
	}
	return cfg, nil
}

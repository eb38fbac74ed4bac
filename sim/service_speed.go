package sim

import (
	"encoding/json"
	"fmt"
	"math"
)

// DefaultBaseSpeed is the unloaded, zero-distance service speed.
const DefaultBaseSpeed = 100.0

// ServiceSpeed is an optional metric. The zero value is absent, which is
// distinct from a computed speed of 0.
type ServiceSpeed struct {
	value float64
	valid bool
}

// SpeedOf returns a present ServiceSpeed.
func SpeedOf(v float64) ServiceSpeed { return ServiceSpeed{value: v, valid: true} }

// NoSpeed returns the absent ServiceSpeed.
func NoSpeed() ServiceSpeed { return ServiceSpeed{} }

// Value returns the speed and whether it is present.
func (s ServiceSpeed) Value() (float64, bool) { return s.value, s.valid }

// Present reports whether a speed was computed.
func (s ServiceSpeed) Present() bool { return s.valid }

func (s ServiceSpeed) String() string {
	if !s.valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", s.value)
}

// MarshalJSON encodes an absent speed as null.
func (s ServiceSpeed) MarshalJSON() ([]byte, error) {
	if !s.valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON decodes null as absent and a number as present.
func (s *ServiceSpeed) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = NoSpeed()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("service speed: %w", err)
	}
	*s = SpeedOf(v)
	return nil
}

// EstimateServiceSpeed averages, over every passenger device located at the
// access point's site, baseSpeed / (distanceFactor × loadFactor), where
//
//	distanceFactor = 1 + Distance(device, ap)
//	loadFactor     = 1 + len(ap.Connected) / ap.Capacity
//
// Qualifying devices are selected by location equality, not by membership in
// ap.Connected, so distanceFactor is always 1 and the metric does not depend
// on which co-located access point a device actually attached to.
//
// The mean is rounded to two decimals. With no qualifying device the result
// is absent. Pure: depends only on its arguments.
func EstimateServiceSpeed(ap *AccessPoint, deviceLocations []Location, baseSpeed float64) ServiceSpeed {
	loadFactor := 1 + float64(len(ap.Connected))/float64(ap.Capacity)
	var sum float64
	n := 0
	for _, loc := range deviceLocations {
		if loc != ap.Location {
			continue
		}
		distanceFactor := 1 + float64(Distance(loc, ap.Location))
		sum += baseSpeed / (distanceFactor * loadFactor)
		n++
	}
	if n == 0 {
		return NoSpeed()
	}
	return SpeedOf(roundTo2(sum / float64(n)))
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

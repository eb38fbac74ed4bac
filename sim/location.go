package sim

import (
	"fmt"
	"math/rand"
)

// Location is a site's ordinal position in its LocationIndex.
// The zero value is the first site.
type Location int

// Distance returns |a - b|, the only notion of distance between sites.
func Distance(a, b Location) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// LocationIndex is the fixed, ordered set of named sites for a run.
type LocationIndex struct {
	names  []string
	byName map[string]Location
}

// NewLocationIndex builds an index from ordered site names.
// Names must be non-empty and unique; at least one is required.
func NewLocationIndex(names []string) (*LocationIndex, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one location is required", ErrInvalidConfiguration)
	}
	idx := &LocationIndex{
		names:  make([]string, len(names)),
		byName: make(map[string]Location, len(names)),
	}
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("%w: location %d has an empty name", ErrInvalidConfiguration, i)
		}
		if _, dup := idx.byName[n]; dup {
			return nil, fmt.Errorf("%w: duplicate location %q", ErrInvalidConfiguration, n)
		}
		idx.names[i] = n
		idx.byName[n] = Location(i)
	}
	return idx, nil
}

// Len returns the number of sites.
func (li *LocationIndex) Len() int { return len(li.names) }

// Name returns the site name for l, or "" if l is outside the index.
func (li *LocationIndex) Name(l Location) string {
	if l < 0 || int(l) >= len(li.names) {
		return ""
	}
	return li.names[l]
}

// Lookup resolves a site name.
func (li *LocationIndex) Lookup(name string) (Location, bool) {
	l, ok := li.byName[name]
	return l, ok
}

// All returns every site in order.
func (li *LocationIndex) All() []Location {
	all := make([]Location, len(li.names))
	for i := range all {
		all[i] = Location(i)
	}
	return all
}

// Random draws a site uniformly.
func (li *LocationIndex) Random(rng *rand.Rand) Location {
	return Location(rng.Intn(len(li.names)))
}

// RandomExcept draws uniformly from every site other than exclude.
// Panics if the index holds fewer than two sites.
func (li *LocationIndex) RandomExcept(rng *rand.Rand, exclude Location) Location {
	if len(li.names) < 2 {
		panic("LocationIndex.RandomExcept: need at least two locations")
	}
	l := Location(rng.Intn(len(li.names) - 1))
	if l >= exclude {
		l++
	}
	return l
}

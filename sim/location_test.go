package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_ZeroOnSelf_Symmetric(t *testing.T) {
	idx, err := NewLocationIndex(DefaultLocations)
	require.NoError(t, err)

	for _, a := range idx.All() {
		assert.Equal(t, 0, Distance(a, a), "distance(%s, %s)", idx.Name(a), idx.Name(a))
		for _, b := range idx.All() {
			assert.Equal(t, Distance(a, b), Distance(b, a), "symmetry for %d,%d", a, b)
			if a != b {
				assert.Positive(t, Distance(a, b))
			}
		}
	}
}

func TestDistance_IsOrdinalDifference(t *testing.T) {
	idx, err := NewLocationIndex(DefaultLocations)
	require.NoError(t, err)
	nairobi, _ := idx.Lookup("Nairobi")
	nakuru, _ := idx.Lookup("Nakuru")
	assert.Equal(t, 3, Distance(nairobi, nakuru))
}

func TestNewLocationIndex_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{"empty", nil},
		{"blank name", []string{"A", ""}},
		{"duplicate", []string{"A", "B", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLocationIndex(tt.names)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("NewLocationIndex(%v) error = %v, want ErrInvalidConfiguration", tt.names, err)
			}
		})
	}
}

func TestLocationIndex_NameAndLookup(t *testing.T) {
	idx, err := NewLocationIndex([]string{"A", "B", "C"})
	require.NoError(t, err)

	l, ok := idx.Lookup("C")
	require.True(t, ok)
	assert.Equal(t, Location(2), l)
	assert.Equal(t, "C", idx.Name(l))
	assert.Equal(t, "", idx.Name(Location(7)))
	_, ok = idx.Lookup("Z")
	assert.False(t, ok)
}

func TestLocationIndex_RandomExcept_NeverReturnsExcluded(t *testing.T) {
	idx, err := NewLocationIndex(DefaultLocations)
	require.NoError(t, err)
	rng := newRandFromSeed(7)

	seen := make(map[Location]int)
	for i := 0; i < 5000; i++ {
		exclude := idx.Random(rng)
		got := idx.RandomExcept(rng, exclude)
		if got == exclude {
			t.Fatalf("RandomExcept(%d) returned the excluded location", exclude)
		}
		if got < 0 || int(got) >= idx.Len() {
			t.Fatalf("RandomExcept returned out-of-range location %d", got)
		}
		seen[got]++
	}
	// every site is reachable as a destination
	assert.Len(t, seen, idx.Len())
}

func TestLocationIndex_RandomExcept_PanicsWithSingleSite(t *testing.T) {
	idx, err := NewLocationIndex([]string{"only"})
	require.NoError(t, err)
	assert.Panics(t, func() { idx.RandomExcept(newRandFromSeed(1), 0) })
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAccessPoint(t *testing.T, id string, loc Location, capacity int) *AccessPoint {
	t.Helper()
	ap, err := NewAccessPoint(id, loc, capacity)
	require.NoError(t, err)
	return ap
}

func TestAssignConnectivity_OnlyCoLocated(t *testing.T) {
	// GIVEN one access point per location and devices spread over all of them
	aps := []*AccessPoint{
		mustAccessPoint(t, "BS-001", 0, 5),
		mustAccessPoint(t, "BS-002", 1, 5),
		mustAccessPoint(t, "BS-003", 2, 5),
	}
	devices := []*Device{
		{ID: "D-1", Location: 0}, {ID: "D-2", Location: 2}, {ID: "D-3", Location: 2}, {ID: "D-4", Location: 4},
	}
	byID := map[string]*Device{}
	for _, d := range devices {
		byID[d.ID] = d
	}

	// WHEN connectivity is assigned
	conns := AssignConnectivity(devices, aps, newRandFromSeed(1))

	// THEN every connected pair shares a location
	for _, ap := range aps {
		for _, id := range ap.Connected {
			assert.Equal(t, ap.Location, byID[id].Location, "device %s on %s", id, ap.ID)
		}
	}
	assert.Equal(t, []string{"D-1"}, aps[0].Connected)
	assert.Empty(t, aps[1].Connected)
	assert.ElementsMatch(t, []string{"D-2", "D-3"}, aps[2].Connected)

	// AND the device with no co-located access point stays unconnected
	require.Len(t, conns, 4)
	assert.Equal(t, "", conns[3].AccessPointID)
	assert.Equal(t, 0, conns[3].Candidates)
}

func TestAssignConnectivity_AtMostOneAccessPointPerDevice(t *testing.T) {
	aps := []*AccessPoint{
		mustAccessPoint(t, "A", 1, 5),
		mustAccessPoint(t, "B", 1, 5),
		mustAccessPoint(t, "C", 1, 5),
	}
	devices := make([]*Device, 20)
	for i := range devices {
		devices[i] = &Device{ID: string(rune('a' + i)), Location: 1}
	}

	AssignConnectivity(devices, aps, newRandFromSeed(3))

	seen := map[string]int{}
	for _, ap := range aps {
		for _, id := range ap.Connected {
			seen[id]++
		}
	}
	assert.Len(t, seen, len(devices))
	for id, n := range seen {
		assert.Equal(t, 1, n, "device %s connected %d times", id, n)
	}
}

func TestResetConnections_ClearsPreviousTick(t *testing.T) {
	ap := mustAccessPoint(t, "A", 0, 5)
	ap.Connected = []string{"D-1", "D-2"}

	ResetConnections([]*AccessPoint{ap})

	assert.Equal(t, 0, ap.ConnectedCount())
}

// TestAssignConnectivity_TieBreakIsUniform verifies that with two access
// points at the same location each is picked in roughly half the draws.
func TestAssignConnectivity_TieBreakIsUniform(t *testing.T) {
	const runs = 2000
	counts := map[string]int{}
	for seed := int64(0); seed < runs; seed++ {
		aps := []*AccessPoint{mustAccessPoint(t, "AP-1", 0, 5), mustAccessPoint(t, "AP-2", 0, 5)}
		conns := AssignConnectivity([]*Device{{ID: "D-1", Location: 0}}, aps, newRandFromSeed(seed))
		require.Equal(t, 2, conns[0].Candidates)
		counts[conns[0].AccessPointID]++
	}

	// Expected 1000 each; σ ≈ 22, allow ±10%.
	for _, id := range []string{"AP-1", "AP-2"} {
		if c := counts[id]; c < 900 || c > 1100 {
			t.Errorf("%s selected %d/%d times, want roughly half", id, c, runs)
		}
	}
}

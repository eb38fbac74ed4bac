package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/netride-sim/netride-sim/sim"
	"github.com/netride-sim/netride-sim/sim/trace"
)

func sampleSnapshot() sim.Snapshot {
	return sim.Snapshot{
		Tick: 4,
		Drivers: []sim.DriverView{
			{Name: "Alice", Location: "Nairobi", Status: sim.StatusBusy},
			{Name: "Bob", Location: "Kisumu", Status: sim.StatusAvailable},
		},
		AccessPoints: []sim.AccessPointView{
			{ID: "BS-001", Location: "Nairobi", ConnectedDevices: 5, ServiceSpeed: sim.SpeedOf(50)},
			{ID: "BS-002", Location: "Mombasa", ConnectedDevices: 0, ServiceSpeed: sim.NoSpeed()},
		},
		Rides: []sim.RideView{
			{PassengerID: "P-300", Location: "Nairobi", Destination: "Nakuru", AssignedDriver: "Alice"},
			{PassengerID: "P-301", Location: "Nairobi", Destination: "Kisumu"},
		},
	}
}

func TestTableRenderer_WritesThreeTables(t *testing.T) {
	var buf bytes.Buffer
	r := &tableRenderer{out: &buf}

	require.NoError(t, r.Render(sampleSnapshot()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "--- Step 4 ---\n"), "no clear sequence when clear=false")
	for _, want := range []string{"Driver", "Access Point", "Assigned Driver", "Busy", "Available", "50.00"} {
		assert.Contains(t, out, want)
	}
	// absent speed and absent driver render as "-"
	assert.Regexp(t, `BS-002\s+Mombasa\s+0\s+-`, out)
	assert.Regexp(t, `P-301\s+Nairobi\s+Kisumu\s+-`, out)
}

func TestTableRenderer_ClearsScreen(t *testing.T) {
	var buf bytes.Buffer
	r := &tableRenderer{out: &buf, clear: true}
	require.NoError(t, r.Render(sampleSnapshot()))
	assert.True(t, strings.HasPrefix(buf.String(), "\033[H\033[2J"))
}

func TestJSONRenderer_AbsentValuesAreNullOrOmitted(t *testing.T) {
	var buf bytes.Buffer
	r, err := newRenderer("json", &buf, "run-1", false, nil)
	require.NoError(t, err)

	require.NoError(t, r.Render(sampleSnapshot()))

	var m struct {
		RunID        string `json:"run_id"`
		Tick         int64  `json:"tick"`
		AccessPoints []struct {
			ServiceSpeed *float64 `json:"service_speed"`
		} `json:"access_points"`
		Rides []map[string]any `json:"rides"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "run-1", m.RunID)
	assert.Equal(t, int64(4), m.Tick)
	require.NotNil(t, m.AccessPoints[0].ServiceSpeed)
	assert.Equal(t, 50.0, *m.AccessPoints[0].ServiceSpeed)
	assert.Nil(t, m.AccessPoints[1].ServiceSpeed)
	assert.Equal(t, "Alice", m.Rides[0]["assigned_driver"])
	assert.NotContains(t, m.Rides[1], "assigned_driver")
}

func TestNewRenderer_UnknownKind(t *testing.T) {
	_, err := newRenderer("xml", &bytes.Buffer{}, "", false, nil)
	assert.Error(t, err)
}

func TestPrintTraceSummary_SortsAccessPoints(t *testing.T) {
	var buf bytes.Buffer
	printTraceSummary(&buf, &trace.TraceSummary{
		Ticks:                  2,
		TotalConnections:       3,
		TotalPairs:             4,
		MeanPairsPerTick:       2,
		ConnectionDistribution: map[string]int{"BS-002": 1, "BS-001": 2},
	})
	out := buf.String()
	assert.Contains(t, out, "Mean Pairs per Tick  : 2.00")
	assert.Less(t, strings.Index(out, "BS-001"), strings.Index(out, "BS-002"))
}

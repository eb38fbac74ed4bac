package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	sim "github.com/netride-sim/netride-sim/sim"
	"github.com/netride-sim/netride-sim/sim/trace"
)

// Renderer consumes one snapshot per tick.
type Renderer interface {
	Render(snap sim.Snapshot) error
	Close()
}

// validOutputs is the set of recognized --output values.
var validOutputs = map[string]bool{"table": true, "json": true, "tui": true}

// newRenderer creates a renderer by output name. cancel is invoked by
// interactive renderers when the user asks to quit.
func newRenderer(kind string, out io.Writer, runID string, clear bool, cancel context.CancelFunc) (Renderer, error) {
	switch kind {
	case "table":
		return &tableRenderer{out: out, clear: clear}, nil
	case "json":
		return &jsonRenderer{enc: json.NewEncoder(out), runID: runID}, nil
	case "tui":
		r, err := newTUIRenderer(cancel)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", kind)
	}
}

// Table headers shared by the text and terminal UI renderers.
var (
	driverHeader      = []string{"Driver", "Location", "Status"}
	accessPointHeader = []string{"Access Point", "Location", "Connected Devices", "Service Speed"}
	rideHeader        = []string{"Passenger", "Location", "Destination", "Assigned Driver"}
)

func driverRows(snap sim.Snapshot) [][]string {
	rows := make([][]string, 0, len(snap.Drivers))
	for _, d := range snap.Drivers {
		rows = append(rows, []string{d.Name, d.Location, d.Status})
	}
	return rows
}

func accessPointRows(snap sim.Snapshot) [][]string {
	rows := make([][]string, 0, len(snap.AccessPoints))
	for _, ap := range snap.AccessPoints {
		rows = append(rows, []string{ap.ID, ap.Location, fmt.Sprint(ap.ConnectedDevices), ap.ServiceSpeed.String()})
	}
	return rows
}

func rideRows(snap sim.Snapshot) [][]string {
	rows := make([][]string, 0, len(snap.Rides))
	for _, r := range snap.Rides {
		driver := r.AssignedDriver
		if driver == "" {
			driver = "-"
		}
		rows = append(rows, []string{r.PassengerID, r.Location, r.Destination, driver})
	}
	return rows
}

// tableRenderer prints three aligned text tables per tick.
type tableRenderer struct {
	out   io.Writer
	clear bool
}

func (t *tableRenderer) Render(snap sim.Snapshot) error {
	if t.clear {
		fmt.Fprint(t.out, "\033[H\033[2J")
	}
	fmt.Fprintf(t.out, "--- Step %d ---\n", snap.Tick)
	for _, table := range []struct {
		header []string
		rows   [][]string
	}{
		{driverHeader, driverRows(snap)},
		{accessPointHeader, accessPointRows(snap)},
		{rideHeader, rideRows(snap)},
	} {
		tw := tabwriter.NewWriter(t.out, 0, 0, 2, ' ', 0)
		writeRow(tw, table.header)
		for _, row := range table.rows {
			writeRow(tw, row)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(t.out)
	}
	return nil
}

func (t *tableRenderer) Close() {}

func writeRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}

// jsonFrame is one line of --output json.
type jsonFrame struct {
	RunID string `json:"run_id"`
	sim.Snapshot
}

// jsonRenderer writes one JSON object per tick.
type jsonRenderer struct {
	enc   *json.Encoder
	runID string
}

func (j *jsonRenderer) Render(snap sim.Snapshot) error {
	return j.enc.Encode(jsonFrame{RunID: j.runID, Snapshot: snap})
}

func (j *jsonRenderer) Close() {}

// printTraceSummary prints aggregate decision statistics.
func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace Summary ===")
	fmt.Fprintf(w, "Ticks                : %d\n", s.Ticks)
	fmt.Fprintf(w, "Connections          : %d\n", s.TotalConnections)
	fmt.Fprintf(w, "Unconnected Devices  : %d\n", s.UnconnectedDevices)
	fmt.Fprintf(w, "Pairs Formed         : %d\n", s.TotalPairs)
	fmt.Fprintf(w, "Unmatched Passengers : %d\n", s.UnmatchedPassengers)
	fmt.Fprintf(w, "Mean Pairs per Tick  : %.2f\n", s.MeanPairsPerTick)

	ids := make([]string, 0, len(s.ConnectionDistribution))
	for id := range s.ConnectionDistribution {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "  %-18s : %d\n", id, s.ConnectionDistribution[id])
	}
}

package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Ticks                  int
	TotalConnections       int
	UnconnectedDevices     int
	ConnectionDistribution map[string]int // access point ID → times selected
	TotalPairs             int
	UnmatchedPassengers    int
	MeanPairsPerTick       float64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ConnectionDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.Ticks = len(st.Ticks)
	for _, c := range st.Connections {
		if c.AccessPointID == "" {
			summary.UnconnectedDevices++
			continue
		}
		summary.TotalConnections++
		summary.ConnectionDistribution[c.AccessPointID]++
	}

	summary.TotalPairs = len(st.Matches)
	passengerTicks := 0
	for _, t := range st.Ticks {
		passengerTicks += t.Passengers
	}
	summary.UnmatchedPassengers = passengerTicks - summary.TotalPairs

	if summary.Ticks > 0 {
		summary.MeanPairsPerTick = float64(summary.TotalPairs) / float64(summary.Ticks)
	}

	return summary
}

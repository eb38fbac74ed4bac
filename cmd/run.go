package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	sim "github.com/netride-sim/netride-sim/sim"
	"github.com/netride-sim/netride-sim/sim/trace"
)

// runOptions carries the resolved flags of one run.
type runOptions struct {
	Seed         int64
	MaxTicks     int64
	Interval     time.Duration
	ScenarioPath string
	Output       string
	TraceLevel   string
	ClearScreen  bool
}

// runSimulation builds the simulator, drives it until ctx is cancelled or
// MaxTicks is reached, and prints the closing message. Frames go to out;
// status text goes to out too, except for json output where it goes to
// status so the frame stream stays machine-readable.
func runSimulation(ctx context.Context, opts runOptions, out, status io.Writer) error {
	cfg := sim.DefaultScenario()
	if opts.ScenarioPath != "" {
		var err error
		if cfg, err = sim.LoadScenario(opts.ScenarioPath); err != nil {
			return err
		}
	}
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", opts.TraceLevel)
	}
	if !validOutputs[opts.Output] {
		return fmt.Errorf("unknown output format %q", opts.Output)
	}

	s, err := sim.NewSimulator(cfg, sim.NewSimulationKey(opts.Seed))
	if err != nil {
		return err
	}
	if trace.TraceLevel(opts.TraceLevel) == trace.TraceLevelDecisions {
		s.SetTrace(trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions}))
	}

	runID := uuid.NewString()
	log := logrus.WithFields(logrus.Fields{"run_id": runID, "seed": opts.Seed})
	log.Infof("Starting simulation with %d locations, %d access points, %d passengers, %d drivers",
		s.Locations.Len(), len(s.Registry.AccessPoints), len(s.Registry.Passengers), len(s.Registry.Drivers))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r, err := newRenderer(opts.Output, out, runID, opts.ClearScreen, cancel)
	if err != nil {
		return err
	}
	cancelled, loopErr := runLoop(ctx, s, r, opts.Interval, opts.MaxTicks)
	r.Close()
	if loopErr != nil {
		return loopErr
	}

	if opts.Output != "json" {
		status = out
	}
	if cancelled {
		fmt.Fprintln(status, "\nSimulation stopped manually.")
	} else {
		fmt.Fprintf(status, "Simulation complete after %d ticks.\n", s.TickCount)
	}
	if st := s.Trace(); st != nil {
		printTraceSummary(status, trace.Summarize(st))
	}
	log.WithField("ticks", s.TickCount).Info("Simulation ended")
	return nil
}

// runLoop ticks s and hands each snapshot to r, pausing interval between
// ticks. The pause is best effort; late ticks are not compensated. Returns
// cancelled=true when ctx ended the loop.
func runLoop(ctx context.Context, s *sim.Simulator, r Renderer, interval time.Duration, maxTicks int64) (cancelled bool, err error) {
	for maxTicks <= 0 || s.TickCount < maxTicks {
		if ctx.Err() != nil {
			return true, nil
		}
		snap := s.Tick()
		if err := r.Render(snap); err != nil {
			return false, fmt.Errorf("rendering tick %d: %w", snap.Tick, err)
		}
		if maxTicks > 0 && s.TickCount >= maxTicks {
			break
		}
		if interval > 0 {
			select {
			case <-ctx.Done():
				return true, nil
			case <-time.After(interval):
			}
		}
	}
	return false, nil
}

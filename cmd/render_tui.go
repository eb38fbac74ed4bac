package cmd

import (
	"context"
	"fmt"
	"io"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/sirupsen/logrus"

	sim "github.com/netride-sim/netride-sim/sim"
)

// tuiRenderer draws the three tables with termui. Pressing q or <C-c>
// cancels the run; the terminal is in raw mode so SIGINT never arrives.
type tuiRenderer struct {
	header       *widgets.Paragraph
	drivers      *widgets.Table
	accessPoints *widgets.Table
	rides        *widgets.Table
	done         chan struct{}
	restoreLogs  func()
	closed       bool
}

func newTUIRenderer(cancel context.CancelFunc) (*tuiRenderer, error) {
	if err := ui.Init(); err != nil {
		return nil, fmt.Errorf("termui init: %w", err)
	}
	r := &tuiRenderer{
		header:       widgets.NewParagraph(),
		drivers:      newTable("Drivers"),
		accessPoints: newTable("Access Points"),
		rides:        newTable("Rides"),
		done:         make(chan struct{}),
		restoreLogs:  muteLogs(),
	}
	r.header.Title = "netride-sim"
	go watchQuit(ui.PollEvents(), r.done, cancel)
	return r, nil
}

// watchQuit calls cancel on q or <C-c>. It returns once done is closed or
// events ends.
func watchQuit(events <-chan ui.Event, done <-chan struct{}, cancel context.CancelFunc) {
	for {
		select {
		case <-done:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.ID == "q" || e.ID == "<C-c>" {
				cancel()
				return
			}
		}
	}
}

// muteLogs discards standard logger output so log lines do not draw over
// the screen. The returned func restores the previous writer.
func muteLogs() (restore func()) {
	l := logrus.StandardLogger()
	prev := l.Out
	l.SetOutput(io.Discard)
	return func() { l.SetOutput(prev) }
}

func newTable(title string) *widgets.Table {
	t := widgets.NewTable()
	t.Title = title
	t.TextStyle = ui.NewStyle(ui.ColorWhite)
	t.RowSeparator = false
	return t
}

func (r *tuiRenderer) Render(snap sim.Snapshot) error {
	r.header.Text = fmt.Sprintf("Step %d | busy drivers %d/%d | matched rides %d/%d | q to quit",
		snap.Tick, snap.BusyDrivers(), len(snap.Drivers), snap.MatchedRides(), len(snap.Rides))
	r.drivers.Rows = append([][]string{driverHeader}, driverRows(snap)...)
	r.accessPoints.Rows = append([][]string{accessPointHeader}, accessPointRows(snap)...)
	r.rides.Rows = append([][]string{rideHeader}, rideRows(snap)...)

	w, h := ui.TerminalDimensions()
	third := w / 3
	r.header.SetRect(0, 0, w, 3)
	r.drivers.SetRect(0, 3, third, h)
	r.accessPoints.SetRect(third, 3, 2*third, h)
	r.rides.SetRect(2*third, 3, w, h)

	ui.Clear()
	ui.Render(r.header, r.drivers, r.accessPoints, r.rides)
	return nil
}

func (r *tuiRenderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	close(r.done)
	ui.Close()
	r.restoreLogs()
}

package main

import (
	"fmt"
	"io"
	"time"
)

const (
	defaultHeadlessTicks = 3600 // one minute at 60 FPS
	reportEvery          = 60
)

// runHeadless drives the simulation for ticks frames on a manual clock advanced by
// dt per frame, printing progress every reportEvery ticks and a final summary
func runHeadless(w io.Writer, h *host, ticks int, dt time.Duration, advance func(time.Duration)) totals {
	if ticks <= 0 {
		ticks = defaultHeadlessTicks
	}

	for i := 0; i < ticks; i++ {
		advance(dt)
		stats, _ := h.frame()
		if stats.Tick%reportEvery == 0 {
			fmt.Fprintf(w, "tick=%d live=%d escaped=%d rotation=%.3f\n",
				stats.Tick, stats.Live, h.totals.Escaped, h.sim.Rotation())
		}
	}

	t := h.totals
	fmt.Fprintf(w, "done ticks=%d live=%d peak=%d escaped=%d spawned=%d dropped=%d bounced=%d refills=%d caps=%d sim_time=%s\n",
		t.Ticks, h.sim.Count(), t.PeakLive, t.Escaped, t.Spawned, t.Dropped, t.Bounced, t.Refills, t.CapHits, h.sim.SimTime())
	return t
}

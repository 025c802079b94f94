package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringfall/audio"
	"github.com/lixenwraith/ringfall/engine"
)

// totals accumulates TickStats over a run
type totals struct {
	Ticks    uint64
	Escaped  int
	Spawned  int
	Dropped  int
	Bounced  int
	Refills  int
	CapHits  int
	PeakLive int
}

// host is the loop-side state shared by the terminal and headless runs
// Only the loop goroutine touches it
type host struct {
	sim   *engine.Simulation
	sound *audio.SoundManager
	now   engine.TimeProvider
	clock *engine.FrameClock

	last      time.Time
	paused    bool
	step      bool
	wasCapped bool
	totals    totals
}

func newHost(sim *engine.Simulation, sound *audio.SoundManager, now engine.TimeProvider) *host {
	return &host{
		sim:   sim,
		sound: sound,
		now:   now,
		clock: engine.NewFrameClock(now),
		last:  now.Now(),
	}
}

// handleKey applies one key press and reports whether the host should quit
func (h *host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case ' ':
		h.paused = !h.paused
		log.Printf("paused=%v at tick %d", h.paused, h.sim.TickCount())
	case '.':
		if h.paused {
			h.step = true
		}
	case 'r', 'R':
		h.reset()
	case 'm', 'M':
		h.sound.SetMuted(!h.sound.Muted())
	}
	return false
}

func (h *host) reset() {
	h.sim.Reset()
	h.clock.Restart()
	h.wasCapped = false
	h.last = h.now.Now()
	log.Printf("simulation reset")
}

// frame runs one loop iteration: measure dt, tick unless paused, record the frame
// Returns the stats and whether a tick happened
func (h *host) frame() (engine.TickStats, bool) {
	now := h.now.Now()
	dt := now.Sub(h.last)
	h.last = now
	h.clock.Frame()

	if h.paused && !h.step {
		return engine.TickStats{}, false
	}
	h.step = false

	stats := h.sim.Tick(dt)
	h.react(stats)
	return stats, true
}

// react turns tick events into sound cues, log lines and totals
func (h *host) react(stats engine.TickStats) {
	t := &h.totals
	t.Ticks = stats.Tick
	t.Escaped += stats.Escaped
	t.Spawned += stats.Spawned
	t.Dropped += stats.Dropped
	t.Bounced += stats.Bounced
	if stats.Live > t.PeakLive {
		t.PeakLive = stats.Live
	}

	if stats.Escaped > 0 {
		h.sound.PlayEscape(stats.Escaped)
		log.Printf("tick %d: %d escaped, %d spawned, %d dropped, live %d",
			stats.Tick, stats.Escaped, stats.Spawned, stats.Dropped, stats.Live)
	}
	if stats.Refilled {
		t.Refills++
		h.sound.PlayRefill()
		log.Printf("tick %d: ring empty, reseeded", stats.Tick)
	}

	capped := h.sim.Capped()
	switch {
	case capped && !h.wasCapped:
		t.CapHits++
		h.sound.PlayCapReached()
		log.Printf("tick %d: population capped at %d", stats.Tick, stats.Live)
	case !capped && h.wasCapped:
		log.Printf("tick %d: population below cap, live %d", stats.Tick, stats.Live)
	}
	h.wasCapped = capped
}

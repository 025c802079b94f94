package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/lixenwraith/ringfall/audio"
	"github.com/lixenwraith/ringfall/config"
	"github.com/lixenwraith/ringfall/engine"
	"github.com/lixenwraith/ringfall/render"
	"github.com/lixenwraith/ringfall/vmath"
)

var (
	configFlag   = flag.String("config", "", "TOML config file")
	envFlag      = flag.String("env", ".env", "Environment file loaded before overrides")
	seedFlag     = flag.Int64("seed", 0, "Random seed, overrides config (0 keeps config or clock)")
	debugFlag    = flag.Bool("debug", false, "Write debug log to logs/ringfall.log")
	muteFlag     = flag.Bool("mute", false, "Start with sound muted")
	headlessFlag = flag.Bool("headless", false, "Run without a screen and print progress")
	ticksFlag    = flag.Int("ticks", 0, "Stop after this many ticks (0: run until quit, headless default 3600)")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := config.LoadEnvFile(*envFlag); err != nil {
		fmt.Fprintf(os.Stderr, "ringfall: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ringfall: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	seed := cfg.ResolveSeed(time.Now())
	log.Printf("config source=%q seed=%d fps=%d max_balls=%d", cfg.Source, seed, cfg.Display.FPS, cfg.Physics.MaxBalls)

	sim := engine.New(cfg.Params(), vmath.NewFastRand(seed))

	// Piped output gets the text report instead of a screen
	if *headlessFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		clock := engine.NewManualClock(time.Unix(0, 0))
		h := newHost(sim, audio.NewSoundManager(cfg.Audio.Volume), clock)
		fmt.Printf("ringfall headless seed=%d\n", seed)
		runHeadless(os.Stdout, h, *ticksFlag, cfg.FrameInterval(), clock.Advance)
		return
	}

	if err := runTerminal(cfg, sim, *ticksFlag, *muteFlag); err != nil {
		fmt.Fprintf(os.Stderr, "ringfall: %v\n", err)
		os.Exit(1)
	}
}

// runTerminal owns the screen until the user quits or maxTicks is reached
func runTerminal(cfg config.Config, sim *engine.Simulation, maxTicks int, mute bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer screen.Fini()

	// Panic Recovery: restore the terminal before reporting
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nRINGFALL CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.SetStyle(tcell.StyleDefault.Background(render.RgbBackground))
	screen.HideCursor()

	sound := audio.NewSoundManager(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, run silently
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sound.Cleanup()
		}
	}
	sound.SetMuted(mute)

	h := newHost(sim, sound, engine.NewMonotonicTimeProvider())
	renderer := render.NewTerminalRenderer(screen, sim.Params())

	eventChan := make(chan tcell.Event, 64)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\nEVENT POLLER CRASHED: %v\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	frameTicker := time.NewTicker(cfg.FrameInterval())
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if h.handleKey(ev) {
					log.Printf("quit at tick %d", sim.TickCount())
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-frameTicker.C:
			h.frame()
			renderer.RenderFrame(sim, render.FrameInfo{
				FPS:     h.clock.FPS(),
				Elapsed: h.clock.Elapsed(),
				Paused:  h.paused,
				Muted:   sound.Muted(),
			})
			if maxTicks > 0 && sim.TickCount() >= uint64(maxTicks) {
				return nil
			}
		}
	}
}

// Command ringfall-window runs the simulation in a desktop window laid out on the
// full field, one pixel per simulation unit, scaled down to half size on screen
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/ringfall/audio"
	"github.com/lixenwraith/ringfall/config"
	"github.com/lixenwraith/ringfall/constants"
	"github.com/lixenwraith/ringfall/engine"
	"github.com/lixenwraith/ringfall/physics"
	"github.com/lixenwraith/ringfall/render"
	"github.com/lixenwraith/ringfall/vmath"
)

const windowTitle = "Ball Game"

var (
	configFlag = flag.String("config", "", "TOML config file")
	envFlag    = flag.String("env", ".env", "Environment file loaded before overrides")
	seedFlag   = flag.Int64("seed", 0, "Random seed, overrides config (0 keeps config or clock)")
	debugFlag  = flag.Bool("debug", false, "Log to stderr")
	muteFlag   = flag.Bool("mute", false, "Start with sound muted")
)

// whitePixel is the source texture for solid-color triangles
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

type game struct {
	sim    *engine.Simulation
	sound  *audio.SoundManager
	clock  *engine.FrameClock
	params physics.Params
	width  int
	height int
	dt     time.Duration

	paused    bool
	wasCapped bool
	overlay   render.Overlay

	// Reused per frame
	balls []engine.BallView
	vs    []ebiten.Vertex
	is    []uint16
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.sound.SetMuted(!g.sound.Muted())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset()
		g.clock.Restart()
		g.wasCapped = false
	}

	step := inpututil.IsKeyJustPressed(ebiten.KeyPeriod)
	if g.paused && !step {
		return nil
	}

	stats := g.sim.Tick(g.dt)
	if stats.Escaped > 0 {
		g.sound.PlayEscape(stats.Escaped)
	}
	if stats.Refilled {
		g.sound.PlayRefill()
		log.Printf("tick %d: ring empty, reseeded", stats.Tick)
	}
	capped := g.sim.Capped()
	if capped && !g.wasCapped {
		g.sound.PlayCapReached()
		log.Printf("tick %d: population capped at %d", stats.Tick, stats.Live)
	}
	g.wasCapped = capped
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.clock.Frame()
	screen.Fill(color.Black)

	bd := g.sim.Boundary()
	vector.StrokeCircle(screen, float32(bd.Center.X), float32(bd.Center.Y), float32(bd.Radius),
		float32(bd.Thickness), color.White, true)
	g.drawCutout(screen, &bd)

	g.balls = g.sim.Balls(g.balls[:0])
	r := float32(g.params.BallRadius)
	inner := r - constants.BallInnerInset
	for _, b := range g.balls {
		x, y := float32(b.Pos.X), float32(b.Pos.Y)
		vector.DrawFilledCircle(screen, x, y, r, rgba(render.OuterColor(b.Color)), true)
		vector.DrawFilledCircle(screen, x, y, inner, rgba(b.Color), true)
	}

	g.overlay.Update(len(g.balls), g.clock.FPS(), g.clock.Elapsed())
	for i, line := range g.overlay.Lines() {
		ebitenutil.DebugPrintAt(screen, line, 20, 20+50*i)
	}
}

// drawCutout paints the gap wedge in the background color over the ring
func (g *game) drawCutout(screen *ebiten.Image, bd *physics.Boundary) {
	pts := bd.CutoutPolygon(constants.CutoutSteps)

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	g.vs, g.is = path.AppendVerticesAndIndicesForFilling(g.vs[:0], g.is[:0])
	for i := range g.vs {
		g.vs[i].SrcX = 1
		g.vs[i].SrcY = 1
		g.vs[i].ColorR = 0
		g.vs[i].ColorG = 0
		g.vs[i].ColorB = 0
		g.vs[i].ColorA = 1
	}
	screen.DrawTriangles(g.vs, g.is, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func rgba(c physics.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func main() {
	flag.Parse()

	if *debugFlag {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := config.LoadEnvFile(*envFlag); err != nil {
		fmt.Fprintf(os.Stderr, "ringfall-window: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ringfall-window: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	seed := cfg.ResolveSeed(time.Now())
	log.Printf("config source=%q seed=%d", cfg.Source, seed)

	sound := audio.NewSoundManager(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sound.Cleanup()
		}
	}
	sound.SetMuted(*muteFlag)

	params := cfg.Params()
	g := &game{
		sim:    engine.New(params, vmath.NewFastRand(seed)),
		sound:  sound,
		clock:  engine.NewFrameClock(engine.NewMonotonicTimeProvider()),
		params: params,
		width:  cfg.Display.Width,
		height: cfg.Display.Height,
		dt:     cfg.FrameInterval(),
	}

	ebiten.SetWindowSize(cfg.Display.Width/2, cfg.Display.Height/2)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Display.FPS)

	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "ringfall-window: %v\n", err)
		os.Exit(1)
	}
}

package render

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ringfall/engine"
	"github.com/lixenwraith/ringfall/physics"
	"github.com/lixenwraith/ringfall/vmath"
)

const (
	ballRune  = '●'
	crowdRune = '◉' // two or more balls in one cell
	ringRune  = '•'

	// minRingSteps bounds ring sampling on tiny terminals
	minRingSteps = 64
)

// FrameInfo carries host state shown alongside the field
type FrameInfo struct {
	FPS     float64
	Elapsed time.Duration
	Paused  bool
	Muted   bool
}

// TerminalRenderer draws the simulation onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	params physics.Params
	width  int
	height int
	view   Viewport

	overlay Overlay

	// Per-cell color accumulators, reset after each frame via touched
	mix     []colorMix
	touched []int
	balls   []engine.BallView
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen, p physics.Params) *TerminalRenderer {
	r := &TerminalRenderer{
		screen: screen,
		params: p,
	}
	w, h := screen.Size()
	r.Resize(w, h)
	return r
}

// Resize refits the viewport so the ring plus one ball diameter fills the screen
func (r *TerminalRenderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.view = FitCircle(width, height, r.params.Center, r.params.BoundaryRadius+2*r.params.BallRadius)

	need := r.view.Cols * r.view.Rows
	if cap(r.mix) < need {
		r.mix = make([]colorMix, need)
	} else {
		r.mix = r.mix[:need]
	}
}

// Viewport returns the current field-to-cell mapping
func (r *TerminalRenderer) Viewport() Viewport {
	return r.view
}

// Overlay returns the cached status text
func (r *TerminalRenderer) Overlay() *Overlay {
	return &r.overlay
}

// RenderFrame snapshots the simulation and draws one frame
func (r *TerminalRenderer) RenderFrame(sim *engine.Simulation, info FrameInfo) {
	r.balls = sim.Balls(r.balls[:0])
	r.Draw(sim.Boundary(), r.balls, info)
}

// Draw paints boundary, balls and overlay, then shows the screen
func (r *TerminalRenderer) Draw(bd physics.Boundary, balls []engine.BallView, info FrameInfo) {
	if w, h := r.screen.Size(); w != r.width || h != r.height {
		r.Resize(w, h)
	}

	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	r.drawRing(&bd, defaultStyle)
	r.drawBalls(balls, defaultStyle)

	r.overlay.Update(len(balls), info.FPS, info.Elapsed)
	r.overlay.Draw(r.screen, 0, 0)
	r.drawStatus(info, defaultStyle)

	r.screen.Show()
}

// drawRing samples the rim densely enough to mark every cell it crosses, skipping the gap
func (r *TerminalRenderer) drawRing(bd *physics.Boundary, defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbRing)

	steps := int(2 * vmath.TwoPi * bd.Radius * r.view.Scale)
	if steps < minRingSteps {
		steps = minRingSteps
	}

	for i := 0; i < steps; i++ {
		angle := vmath.TwoPi * float64(i) / float64(steps)
		if bd.InCutout(angle) {
			continue
		}
		x, y, ok := r.view.ToCell(bd.RimPoint(angle))
		if !ok {
			continue
		}
		r.screen.SetContent(x, y, ringRune, nil, style)
	}
}

func (r *TerminalRenderer) drawBalls(balls []engine.BallView, defaultStyle tcell.Style) {
	cols := r.view.Cols
	r.touched = r.touched[:0]

	for i := range balls {
		x, y, ok := r.view.ToCell(balls[i].Pos)
		if !ok {
			continue
		}
		idx := y*cols + x
		if r.mix[idx].n == 0 {
			r.touched = append(r.touched, idx)
		}
		r.mix[idx].add(balls[i].Color)
	}

	for _, idx := range r.touched {
		m := &r.mix[idx]
		ch := ballRune
		if m.n > 1 {
			ch = crowdRune
		}
		style := defaultStyle.Foreground(TcellColor(m.color()))
		r.screen.SetContent(idx%cols, idx/cols, ch, nil, style)
		*m = colorMix{}
	}
}

// drawStatus shows pause and mute flags on the bottom row
func (r *TerminalRenderer) drawStatus(info FrameInfo, defaultStyle tcell.Style) {
	if !info.Paused && !info.Muted || r.height < 1 {
		return
	}
	style := defaultStyle.Foreground(RgbStatusFg)
	x := 0
	if info.Paused {
		x = drawText(r.screen, x, r.height-1, "PAUSED", style) + 1
	}
	if info.Muted {
		drawText(r.screen, x, r.height-1, "MUTED", style)
	}
}

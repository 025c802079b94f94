package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Overlay holds the three status lines shown over the field
// Strings are rebuilt only when a displayed integer changes
type Overlay struct {
	balls   int
	fps     int
	seconds int
	valid   bool

	lines   [3]string
	width   int
	version uint64
}

// Update refreshes the cached lines and reports whether any text changed
func (o *Overlay) Update(balls int, fps float64, elapsed time.Duration) bool {
	f := int(fps)
	s := int(elapsed / time.Second)
	if o.valid && balls == o.balls && f == o.fps && s == o.seconds {
		return false
	}

	o.balls, o.fps, o.seconds = balls, f, s
	o.valid = true
	o.lines[0] = fmt.Sprintf("Balls: %d", balls)
	o.lines[1] = fmt.Sprintf("FPS: %d", f)
	o.lines[2] = fmt.Sprintf("Time: %ds", s)

	o.width = 0
	for _, line := range o.lines {
		if w := runewidth.StringWidth(line); w > o.width {
			o.width = w
		}
	}
	o.version++
	return true
}

// Lines returns the cached text, top to bottom
func (o *Overlay) Lines() []string {
	return o.lines[:]
}

// Width is the display width of the widest line in cells
func (o *Overlay) Width() int {
	return o.width
}

// Version counts rebuilds, for hosts that cache rendered text
func (o *Overlay) Version() uint64 {
	return o.version
}

// Draw paints the lines in a padded box with its top-left corner at (x, y)
func (o *Overlay) Draw(screen tcell.Screen, x, y int) {
	boxStyle := tcell.StyleDefault.Foreground(RgbOverlayFg).Background(RgbOverlayBg)
	boxWidth := o.width + 2

	for row, line := range o.lines {
		for col := 0; col < boxWidth; col++ {
			screen.SetContent(x+col, y+row, ' ', nil, boxStyle)
		}
		drawText(screen, x+1, y+row, line, boxStyle)
	}
}

// drawText writes s starting at (x, y), advancing by each rune's display width
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
	return x
}

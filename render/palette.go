package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/ringfall/constants"
	"github.com/lixenwraith/ringfall/physics"
)

// Fixed colors
var (
	RgbBackground = tcell.NewRGBColor(0, 0, 0)       // Black field
	RgbRing       = tcell.NewRGBColor(255, 255, 255) // White boundary
	RgbOverlayFg  = tcell.NewRGBColor(255, 255, 255) // White text
	RgbOverlayBg  = tcell.NewRGBColor(30, 30, 30)    // Dark gray box
	RgbStatusFg   = tcell.NewRGBColor(255, 165, 0)   // Orange pause/mute flags
)

// OuterColor brightens a ball color for its rim, saturating at 255
func OuterColor(c physics.Color) physics.Color {
	return physics.Color{
		R: boost(c.R),
		G: boost(c.G),
		B: boost(c.B),
	}
}

func boost(v uint8) uint8 {
	n := int(v) + constants.OuterColorBoost
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// TcellColor converts a ball color to a terminal color
func TcellColor(c physics.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toColorful(c physics.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) physics.Color {
	r, g, b := c.Clamped().RGB255()
	return physics.Color{R: r, G: g, B: b}
}

// colorMix is a running mean of colors in Lab space, used when several balls land on one cell
type colorMix struct {
	n   int
	acc colorful.Color
}

func (m *colorMix) add(c physics.Color) {
	m.n++
	if m.n == 1 {
		m.acc = toColorful(c)
		return
	}
	m.acc = m.acc.BlendLab(toColorful(c), 1/float64(m.n))
}

func (m *colorMix) color() physics.Color {
	return fromColorful(m.acc)
}

// BlendColors mixes colors perceptually; an empty input yields black
func BlendColors(colors ...physics.Color) physics.Color {
	var m colorMix
	for _, c := range colors {
		m.add(c)
	}
	if m.n == 0 {
		return physics.Color{}
	}
	return m.color()
}

package render

import (
	"math"

	"github.com/lixenwraith/ringfall/vmath"
)

// cellAspect is terminal cell height over width
const cellAspect = 2.0

// Viewport maps field coordinates to terminal cells
// Scale is columns per field unit; rows get half of it to undo the tall cell shape
type Viewport struct {
	Origin vmath.Vec2 // field point at the top-left corner of cell (0, 0)
	Scale  float64
	Cols   int
	Rows   int
}

// FitCircle returns a viewport of cols x rows cells centered on center that
// shows a circle of the given radius whole
func FitCircle(cols, rows int, center vmath.Vec2, radius float64) Viewport {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	span := 2 * radius
	if span <= 0 {
		span = 1
	}
	scale := math.Min(float64(cols)/span, cellAspect*float64(rows)/span)

	halfW := float64(cols) / scale / 2
	halfH := float64(rows) * cellAspect / scale / 2
	return Viewport{
		Origin: vmath.V2(center.X-halfW, center.Y-halfH),
		Scale:  scale,
		Cols:   cols,
		Rows:   rows,
	}
}

// ToCell returns the cell containing p and whether it lies inside the viewport
func (v Viewport) ToCell(p vmath.Vec2) (x, y int, ok bool) {
	fx := math.Floor((p.X - v.Origin.X) * v.Scale)
	fy := math.Floor((p.Y - v.Origin.Y) * v.Scale / cellAspect)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	if fx < 0 || fy < 0 || fx >= float64(v.Cols) || fy >= float64(v.Rows) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

// CellCenter returns the field point at the middle of cell (x, y)
func (v Viewport) CellCenter(x, y int) vmath.Vec2 {
	return vmath.V2(
		v.Origin.X+(float64(x)+0.5)/v.Scale,
		v.Origin.Y+(float64(y)+0.5)*cellAspect/v.Scale,
	)
}

package physics

import "github.com/lixenwraith/ringfall/vmath"

// Boundary is the rotating ring with an angular cutout
// Rotation only ever grows; consumers wrap it themselves
type Boundary struct {
	Center      vmath.Vec2
	Radius      float64
	Thickness   float64
	CutoutWidth float64
	Rotation    float64
}

func NewBoundary(p Params) Boundary {
	return Boundary{
		Center:      p.Center,
		Radius:      p.BoundaryRadius,
		Thickness:   p.BoundaryThickness,
		CutoutWidth: p.CutoutWidth,
	}
}

// Advance rotates the ring by step radians
func (b *Boundary) Advance(step float64) {
	b.Rotation += step
}

// CutoutStart returns the cutout start angle in [0, 2π)
func (b *Boundary) CutoutStart() float64 {
	return vmath.NormalizeAngle(b.Rotation)
}

// InCutout reports whether angle (in [0, 2π)) is inside the open gap, ends inclusive
func (b *Boundary) InCutout(angle float64) bool {
	return vmath.AngleInArc(angle, b.Rotation, b.CutoutWidth)
}

// RimPoint returns the ring point at angle
func (b *Boundary) RimPoint(angle float64) vmath.Vec2 {
	return vmath.FromPolar(b.Center, b.Radius, angle)
}

// CutoutPolygon returns the wedge covering the gap: center first, then steps+1 rim
// points from the cutout start to its end
func (b *Boundary) CutoutPolygon(steps int) []vmath.Vec2 {
	if steps < 1 {
		steps = 1
	}
	points := make([]vmath.Vec2, 0, steps+2)
	points = append(points, b.Center)
	for i := 0; i <= steps; i++ {
		angle := b.Rotation + float64(i)/float64(steps)*b.CutoutWidth
		points = append(points, b.RimPoint(angle))
	}
	return points
}

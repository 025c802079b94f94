package vmath

import "math"

// TwoPi is one full turn in radians
const TwoPi = 2 * math.Pi

// Vec2 is a float64 2D vector in simulation space (+X right, +Y down)
type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Len returns the magnitude using math.Hypot
func (a Vec2) Len() float64 { return math.Hypot(a.X, a.Y) }

// --- Angles ---

// NormalizeAngle wraps angle to [0, 2π)
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// Mod of a tiny negative can round up to exactly 2π
	if a >= TwoPi {
		a -= TwoPi
	}
	return a
}

// ToPolar returns offset, distance and angle of pos relative to center
// Angle is atan2(dy, dx) wrapped to [0, 2π)
func ToPolar(pos, center Vec2) (dx, dy, dist, angle float64) {
	dx = pos.X - center.X
	dy = pos.Y - center.Y
	dist = math.Hypot(dx, dy)
	angle = NormalizeAngle(math.Atan2(dy, dx))
	return dx, dy, dist, angle
}

// AngleInArc reports whether angle lies on the closed arc that starts at start
// and sweeps width radians in the positive direction
// angle is expected in [0, 2π); start may be any value
func AngleInArc(angle, start, width float64) bool {
	s := NormalizeAngle(start)
	e := math.Mod(s+width, TwoPi)
	if s < e {
		return s <= angle && angle <= e
	}
	// Arc wraps past 0
	return angle >= s || angle <= e
}

// FromPolar returns center + (cos, sin) * radius
func FromPolar(center Vec2, radius, angle float64) Vec2 {
	return Vec2{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

// --- Collision ---

// Reflect returns velocity reflected off surface with given unit normal
// vel' = vel - 2 * dot(vel, normal) * normal
func Reflect(vel, normal Vec2) Vec2 {
	dot2 := 2 * vel.Dot(normal)
	return Vec2{vel.X - dot2*normal.X, vel.Y - dot2*normal.Y}
}

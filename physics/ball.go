package physics

import (
	"math"

	"github.com/lixenwraith/ringfall/vmath"
)

// Color is an 8-bit RGB triple, fixed at creation
type Color struct {
	R, G, B uint8
}

// Ball is a point mass with a draw color
type Ball struct {
	Pos   vmath.Vec2
	Vel   vmath.Vec2
	Color Color
}

// NewBall creates a ball at pos with random horizontal speed, zero vertical speed
// and a mid-to-bright random color
// RNG draw order: vx, R, G, B
func NewBall(pos vmath.Vec2, p Params, rng *vmath.FastRand) Ball {
	vx := rng.Range(-p.MaxSpawnSpeedX, p.MaxSpawnSpeedX)
	return Ball{
		Pos: pos,
		Vel: vmath.V2(vx, 0),
		Color: Color{
			R: uint8(rng.IntRange(p.ColorMin, p.ColorMax)),
			G: uint8(rng.IntRange(p.ColorMin, p.ColorMax)),
			B: uint8(rng.IntRange(p.ColorMin, p.ColorMax)),
		},
	}
}

// Update integrates one tick: gravity into velocity, velocity into position
func (b *Ball) Update(gravity float64) {
	b.Vel.Y += gravity
	b.Pos = b.Pos.Add(b.Vel)
}

// Polar returns offset, distance and angle relative to center
func (b *Ball) Polar(center vmath.Vec2) (dx, dy, dist, angle float64) {
	return vmath.ToPolar(b.Pos, center)
}

// IsThroughCutout reports whether the ball reached the ring inside the open gap
func (b *Ball) IsThroughCutout(bd *Boundary, ballRadius float64) bool {
	_, _, dist, angle := b.Polar(bd.Center)
	return throughCutout(bd, ballRadius, dist, angle)
}

func throughCutout(bd *Boundary, ballRadius, dist, angle float64) bool {
	return dist >= bd.Radius-ballRadius && bd.InCutout(angle)
}

// ResolveCircleCollision pushes a ball that penetrated the ring back onto it and
// reflects its velocity about the radial normal
// Balls inside the ring, passing through the gap, or at the exact center are untouched
// Returns true if a bounce happened
func (b *Ball) ResolveCircleCollision(bd *Boundary, p Params, rng *vmath.FastRand) bool {
	dx, dy, dist, angle := b.Polar(bd.Center)
	limit := bd.Radius - p.BallRadius
	if dist <= limit {
		return false
	}
	if throughCutout(bd, p.BallRadius, dist, angle) {
		return false
	}
	if dist == 0 {
		return false
	}

	n := vmath.V2(dx/dist, dy/dist)

	overlap := dist - limit
	b.Pos = b.Pos.Sub(n.Scale(overlap))

	b.Vel = vmath.Reflect(b.Vel, n).Scale(p.Restitution)

	// Anti-stall: a bounce that leaves almost no vertical motion gets an upward kick
	if math.Abs(b.Vel.Y) < p.StallThreshold {
		b.Vel.Y = -rng.Range(p.KickMin, p.KickMax)
	}
	return true
}

package physics

import (
	"github.com/lixenwraith/ringfall/constants"
	"github.com/lixenwraith/ringfall/vmath"
)

// Params holds the simulation constants, fixed for the lifetime of a simulation
// Distances are simulation units, velocities are units per tick
type Params struct {
	Center            vmath.Vec2
	BoundaryRadius    float64
	BoundaryThickness float64
	CutoutWidth       float64 // radians
	RotationStep      float64 // radians per tick

	BallRadius            float64
	Gravity               float64
	MaxBalls              int
	ReplacementsPerEscape int
	SpawnInset            float64
	SpawnJitter           int
	MaxSpawnSpeedX        float64
	ColorMin, ColorMax    int

	Restitution    float64
	StallThreshold float64
	KickMin        float64
	KickMax        float64
}

// DefaultParams returns the stock ring: 400 radius, 60° cutout, 1200 ball cap
func DefaultParams() Params {
	return Params{
		Center:            vmath.V2(constants.CenterX, constants.CenterY),
		BoundaryRadius:    constants.BoundaryRadius,
		BoundaryThickness: constants.BoundaryThickness,
		CutoutWidth:       constants.CutoutWidth,
		RotationStep:      constants.RotationStep,

		BallRadius:            constants.BallRadius,
		Gravity:               constants.Gravity,
		MaxBalls:              constants.MaxBalls,
		ReplacementsPerEscape: constants.ReplacementsPerEscape,
		SpawnInset:            constants.SpawnInset,
		SpawnJitter:           constants.SpawnJitter,
		MaxSpawnSpeedX:        constants.MaxSpawnSpeedX,
		ColorMin:              constants.ColorMin,
		ColorMax:              constants.ColorMax,

		Restitution:    constants.Restitution,
		StallThreshold: constants.StallThreshold,
		KickMin:        constants.KickMin,
		KickMax:        constants.KickMax,
	}
}

// InnerRadius is the largest center distance a ball can sit at without touching the ring
func (p Params) InnerRadius() float64 {
	return p.BoundaryRadius - p.BallRadius
}

// SpawnPoint returns the canonical spawn point just inside the top of the ring, offset horizontally
func (p Params) SpawnPoint(offsetX float64) vmath.Vec2 {
	return vmath.V2(p.Center.X+offsetX, p.Center.Y-p.BoundaryRadius+p.SpawnInset)
}

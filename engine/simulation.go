package engine

import (
	"time"

	"github.com/lixenwraith/ringfall/physics"
	"github.com/lixenwraith/ringfall/vmath"
)

// BallView is the read-only draw data of one live ball
type BallView struct {
	Pos   vmath.Vec2
	Color physics.Color
}

// TickStats reports what happened during one Tick
type TickStats struct {
	Tick     uint64
	Escaped  int  // balls removed through the cutout
	Spawned  int  // replacement balls merged into the live set
	Dropped  int  // staged replacements discarded by the cap
	Bounced  int  // boundary collisions resolved
	Refilled bool // live set was empty and got a fresh ball
	Live     int
}

// Simulation owns the population, the boundary and the random stream
// Not safe for concurrent use: one goroutine drives Tick and reads snapshots
type Simulation struct {
	params   physics.Params
	rng      *vmath.FastRand
	boundary physics.Boundary

	balls   []physics.Ball
	pending []physics.Ball

	tick    uint64
	simTime time.Duration
}

// New creates a simulation seeded with one ball at the spawn point
func New(p physics.Params, rng *vmath.FastRand) *Simulation {
	s := &Simulation{
		params:  p,
		rng:     rng,
		balls:   make([]physics.Ball, 0, p.MaxBalls),
		pending: make([]physics.Ball, 0, p.ReplacementsPerEscape*8),
	}
	s.Reset()
	return s
}

// Reset restores the initial state: zero rotation and a single seed ball
// The random stream is not rewound
func (s *Simulation) Reset() {
	s.boundary = physics.NewBoundary(s.params)
	s.balls = s.balls[:0]
	s.pending = s.pending[:0]
	s.tick = 0
	s.simTime = 0
	s.balls = append(s.balls, s.spawnBall(0))
}

// Clear empties the live set; the next Tick refills it
func (s *Simulation) Clear() {
	s.balls = s.balls[:0]
}

// Tick advances the simulation by one frame
// Physics constants are per tick; dt only accumulates into SimTime
func (s *Simulation) Tick(dt time.Duration) TickStats {
	p := &s.params
	s.tick++
	s.simTime += dt
	stats := TickStats{Tick: s.tick}

	// 1. Boundary geometry for this frame is fixed before any ball test
	s.boundary.Advance(p.RotationStep)

	// 2. Integrate
	for i := range s.balls {
		s.balls[i].Update(p.Gravity)
	}

	// 3-4. Escape or collide, compacting retained balls in place
	// Replacements go to the pending buffer so this pass only sees pre-tick balls
	s.pending = s.pending[:0]
	n := len(s.balls)
	w := 0
	for r := 0; r < n; r++ {
		ball := s.balls[r]
		if ball.IsThroughCutout(&s.boundary, p.BallRadius) {
			stats.Escaped++
			// Balls still live after this removal: retained so far plus not yet visited
			remaining := w + (n - r - 1)
			if remaining+p.ReplacementsPerEscape <= p.MaxBalls {
				for k := 0; k < p.ReplacementsPerEscape; k++ {
					offset := float64(s.rng.IntRange(-p.SpawnJitter, p.SpawnJitter))
					s.pending = append(s.pending, s.spawnBall(offset))
				}
			}
			continue
		}
		if ball.ResolveCircleCollision(&s.boundary, *p, s.rng) {
			stats.Bounced++
		}
		s.balls[w] = ball
		w++
	}
	s.balls = s.balls[:w]

	// 5. Merge staged balls up to the cap
	if room := p.MaxBalls - len(s.balls); room > 0 {
		add := s.pending
		if len(add) > room {
			add = add[:room]
		}
		s.balls = append(s.balls, add...)
		stats.Spawned = len(add)
	}
	stats.Dropped = len(s.pending) - stats.Spawned
	s.pending = s.pending[:0]

	// 6. Never leave the ring empty
	if len(s.balls) == 0 {
		s.balls = append(s.balls, s.spawnBall(0))
		stats.Refilled = true
	}

	stats.Live = len(s.balls)
	return stats
}

func (s *Simulation) spawnBall(offsetX float64) physics.Ball {
	return physics.NewBall(s.params.SpawnPoint(offsetX), s.params, s.rng)
}

// Balls appends a snapshot of every live ball to dst and returns it
func (s *Simulation) Balls(dst []BallView) []BallView {
	for i := range s.balls {
		dst = append(dst, BallView{Pos: s.balls[i].Pos, Color: s.balls[i].Color})
	}
	return dst
}

// Count returns the live ball count
func (s *Simulation) Count() int { return len(s.balls) }

// Capped reports whether the population is at MaxBalls
func (s *Simulation) Capped() bool { return len(s.balls) >= s.params.MaxBalls }

// Rotation returns the current, unwrapped boundary angle
func (s *Simulation) Rotation() float64 { return s.boundary.Rotation }

// Boundary returns a copy of the boundary state
func (s *Simulation) Boundary() physics.Boundary { return s.boundary }

func (s *Simulation) Params() physics.Params { return s.params }

func (s *Simulation) TickCount() uint64 { return s.tick }

// SimTime is the sum of dt passed to Tick
func (s *Simulation) SimTime() time.Duration { return s.simTime }

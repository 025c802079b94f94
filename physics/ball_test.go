package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/ringfall/vmath"
)

const eps = 1e-9

// ballAt places a ball at dist/angle from the center of p's ring
func ballAt(p Params, dist, angle float64, vel vmath.Vec2) Ball {
	return Ball{Pos: vmath.FromPolar(p.Center, dist, angle), Vel: vel}
}

func TestNewBall(t *testing.T) {
	p := DefaultParams()
	rng := vmath.NewFastRand(11)
	for i := 0; i < 2000; i++ {
		pos := p.SpawnPoint(0)
		b := NewBall(pos, p, rng)
		if b.Pos != pos {
			t.Fatalf("position = %v, want %v", b.Pos, pos)
		}
		if b.Vel.Y != 0 {
			t.Fatalf("initial vy = %v, want 0", b.Vel.Y)
		}
		if b.Vel.X < -2 || b.Vel.X > 2 {
			t.Fatalf("initial vx = %v out of [-2, 2]", b.Vel.X)
		}
		for _, c := range []uint8{b.Color.R, b.Color.G, b.Color.B} {
			if c < 120 {
				t.Fatalf("color channel %d below 120", c)
			}
		}
	}
}

func TestBallUpdate(t *testing.T) {
	b := Ball{Pos: vmath.V2(10, 20), Vel: vmath.V2(1.5, -2)}
	b.Update(0.8)

	if math.Abs(b.Vel.Y-(-1.2)) > eps || b.Vel.X != 1.5 {
		t.Errorf("velocity = %v, want (1.5, -1.2)", b.Vel)
	}
	if math.Abs(b.Pos.X-11.5) > eps || math.Abs(b.Pos.Y-18.8) > eps {
		t.Errorf("position = %v, want (11.5, 18.8)", b.Pos)
	}
}

func TestIsThroughCutout(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p) // cutout spans [0°, 60°]
	limit := p.InnerRadius()

	tests := []struct {
		name  string
		dist  float64
		angle float64
		want  bool
	}{
		{"just past rim inside gap", limit + 1e-7, math.Pi / 6, true},
		{"beyond rim inside gap", limit + 15, math.Pi / 6, true},
		{"gap start edge", limit + 1, 0, true},
		{"short of rim inside gap", limit - 1, math.Pi / 6, false},
		{"at rim outside gap", limit + 1, math.Pi, false},
		{"center", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ballAt(p, tt.dist, tt.angle, vmath.Vec2{})
			if got := b.IsThroughCutout(&bd, p.BallRadius); got != tt.want {
				t.Errorf("IsThroughCutout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsThroughCutout_ExactlyAtRim(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p)

	// Exact coordinates so distance is exactly the inner radius at angle 0
	b := Ball{Pos: p.Center.Add(vmath.V2(p.InnerRadius(), 0))}
	if !b.IsThroughCutout(&bd, p.BallRadius) {
		t.Error("ball exactly at the rim on the gap edge should escape")
	}
}

func TestIsThroughCutout_FollowsRotation(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p)
	bottom := ballAt(p, p.InnerRadius()+2, math.Pi/2, vmath.Vec2{})

	if bottom.IsThroughCutout(&bd, p.BallRadius) {
		t.Fatal("bottom is closed at rotation 0")
	}
	bd.Advance(math.Pi / 3) // gap now [60°, 120°]
	if !bottom.IsThroughCutout(&bd, p.BallRadius) {
		t.Fatal("bottom should be open after rotating 60°")
	}
}

func TestResolveCircleCollision_InsideIsNoop(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p)
	rng := vmath.NewFastRand(1)

	vel := vmath.V2(3, 4)
	b := Ball{Pos: p.Center.Add(vmath.V2(-p.InnerRadius(), 0)), Vel: vel}
	before := b
	if b.ResolveCircleCollision(&bd, p, rng) {
		t.Fatal("ball exactly at rim distance must not bounce")
	}
	if b != before {
		t.Errorf("ball changed: %+v -> %+v", before, b)
	}

	b = ballAt(p, 100, math.Pi, vel)
	before = b
	b.ResolveCircleCollision(&bd, p, rng)
	if b != before {
		t.Errorf("interior ball changed: %+v -> %+v", before, b)
	}
}

func TestResolveCircleCollision_GapIsNoop(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p)
	rng := vmath.NewFastRand(1)

	b := ballAt(p, p.InnerRadius()+10, math.Pi/6, vmath.V2(1, 1))
	before := b
	if b.ResolveCircleCollision(&bd, p, rng) {
		t.Fatal("ball in the gap must not bounce")
	}
	if b != before {
		t.Errorf("ball changed: %+v -> %+v", before, b)
	}
}

func TestResolveCircleCollision_PushesBackToRim(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p)
	rng := vmath.NewFastRand(3)

	for _, angle := range []float64{math.Pi / 2, math.Pi, 4, 5.5} {
		b := ballAt(p, p.InnerRadius()+12.5, angle, vmath.V2(0.5, 9))
		if !b.ResolveCircleCollision(&bd, p, rng) {
			t.Fatalf("angle %v: expected bounce", angle)
		}
		_, _, dist, gotAngle := b.Polar(p.Center)
		if math.Abs(dist-p.InnerRadius()) > 1e-9 {
			t.Errorf("angle %v: distance after push = %v, want %v", angle, dist, p.InnerRadius())
		}
		if math.Abs(gotAngle-angle) > 1e-9 {
			t.Errorf("angle %v: push changed direction to %v", angle, gotAngle)
		}
	}
}

func TestResolveCircleCollision_ReflectionPreservesSpeed(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p)
	rng := vmath.NewFastRand(5)

	// Bottom of the ring, falling fast: reflected vy stays large so no kick applies
	vel := vmath.V2(1.25, 10)
	b := ballAt(p, p.InnerRadius()+3, math.Pi/2, vel)
	b.ResolveCircleCollision(&bd, p, rng)

	if math.Abs(b.Vel.Len()-vel.Len()) > 1e-9 {
		t.Errorf("speed %v -> %v", vel.Len(), b.Vel.Len())
	}
	if math.Abs(b.Vel.X-1.25) > 1e-9 || math.Abs(b.Vel.Y+10) > 1e-9 {
		t.Errorf("velocity = %v, want (1.25, -10)", b.Vel)
	}
}

func TestResolveCircleCollision_ReflectionPreservesSpeedRandom(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p)
	bd.Rotation = 3 * math.Pi / 2 // gap at the top, away from most samples
	rng := vmath.NewFastRand(8)

	checked := 0
	for i := 0; i < 5000; i++ {
		angle := rng.Range(0, vmath.TwoPi)
		vel := vmath.V2(rng.Range(-15, 15), rng.Range(-15, 15))
		b := ballAt(p, p.InnerRadius()+rng.Range(0.1, 10), angle, vel)
		if !b.ResolveCircleCollision(&bd, p, rng) {
			continue
		}
		n := vmath.V2(math.Cos(angle), math.Sin(angle))
		reflected := vmath.Reflect(vel, n)
		if math.Abs(reflected.Y) < p.StallThreshold+1e-6 {
			continue // kicked
		}
		checked++
		if math.Abs(b.Vel.Len()-vel.Len()) > 1e-6 {
			t.Fatalf("speed %v -> %v at angle %v", vel.Len(), b.Vel.Len(), angle)
		}
	}
	if checked == 0 {
		t.Fatal("no unkicked bounces sampled")
	}
}

func TestResolveCircleCollision_AntiStallKick(t *testing.T) {
	p := DefaultParams()
	bd := NewBoundary(p)
	rng := vmath.NewFastRand(9)

	for i := 0; i < 500; i++ {
		// Left wall, moving horizontally: reflected vy is ~0
		b := ballAt(p, p.InnerRadius()+1, math.Pi, vmath.V2(-4, rng.Range(-1.5, 1.5)))
		if !b.ResolveCircleCollision(&bd, p, rng) {
			t.Fatal("expected bounce on the left wall")
		}
		if b.Vel.Y >= 0 || math.Abs(b.Vel.Y) < 2 || math.Abs(b.Vel.Y) > 5 {
			t.Fatalf("kick vy = %v, want in [-5, -2]", b.Vel.Y)
		}
		if math.Abs(b.Vel.X-4) > 1e-9 {
			t.Fatalf("vx = %v, want 4 after reflecting off the left wall", b.Vel.X)
		}
	}
}

func TestResolveCircleCollision_Restitution(t *testing.T) {
	p := DefaultParams()
	p.Restitution = 0.5
	bd := NewBoundary(p)
	rng := vmath.NewFastRand(2)

	b := ballAt(p, p.InnerRadius()+1, math.Pi/2, vmath.V2(0, 12))
	b.ResolveCircleCollision(&bd, p, rng)
	if math.Abs(b.Vel.Y+6) > 1e-9 {
		t.Errorf("vy = %v, want -6 with restitution 0.5", b.Vel.Y)
	}
}

func TestResolveCircleCollision_ZeroRadiusRing(t *testing.T) {
	// A ring whose inner radius is negative puts the center ball past the rim
	p := DefaultParams()
	p.BoundaryRadius = 10
	p.BallRadius = 20
	p.CutoutWidth = 0.1
	bd := NewBoundary(p)
	bd.Rotation = math.Pi // keep angle 0 out of the gap
	rng := vmath.NewFastRand(4)

	b := Ball{Pos: p.Center, Vel: vmath.V2(1, 1)}
	before := b
	if b.ResolveCircleCollision(&bd, p, rng) {
		t.Fatal("ball at the center must not bounce")
	}
	if b != before {
		t.Errorf("ball changed: %+v -> %+v", before, b)
	}
}

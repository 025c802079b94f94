package constants

import (
	"math"
	"time"
)

// Game Loop Timing
const (
	// TargetFPS is the frame cap of the host loop
	TargetFPS = 60

	// FrameUpdateInterval is the frame interval at TargetFPS (~60 FPS)
	FrameUpdateInterval = time.Second / TargetFPS

	// FPSWindow is the number of frames averaged by the FPS meter
	FPSWindow = 10
)

// Playfield, in simulation units (pixels of a 1080x2400 portrait window)
const (
	FieldWidth  = 1080
	FieldHeight = 2400

	CenterX = FieldWidth / 2
	CenterY = FieldHeight / 2
)

// Boundary
const (
	BoundaryRadius    = 400.0
	BoundaryThickness = 3.0

	// CutoutDegrees is the angular width of the gap
	CutoutDegrees = 60.0

	// RotationStep is radians added to the boundary angle every tick
	RotationStep = 0.01

	// CutoutSteps is the rim tessellation of the painted cutout wedge
	CutoutSteps = 30
)

// CutoutWidth is CutoutDegrees in radians
const CutoutWidth = CutoutDegrees * math.Pi / 180

// Balls
const (
	BallRadius = 20.0

	// BallInnerInset is the ring width between outer and inner ball circles
	BallInnerInset = 5.0

	// Gravity is added to vertical velocity every tick
	Gravity = 0.8

	// MaxBalls caps the live population
	MaxBalls = 1200

	// ReplacementsPerEscape is how many balls replace one escaped ball
	ReplacementsPerEscape = 3

	// SpawnInset is the distance below the top of the boundary where balls spawn
	SpawnInset = 40.0

	// SpawnJitter bounds the integer horizontal offset of replacement spawns
	SpawnJitter = 30

	// MaxSpawnSpeedX bounds the initial horizontal speed
	MaxSpawnSpeedX = 2.0

	ColorMin = 120
	ColorMax = 255

	// OuterColorBoost is added per channel for the outer ring of a drawn ball
	OuterColorBoost = 50
)

// Collision response
const (
	// Restitution scales velocity after a bounce (1.0 = elastic)
	Restitution = 1.0

	// StallThreshold is the |vy| below which a bounce gets an upward kick
	StallThreshold = 2.0

	KickMin = 2.0
	KickMax = 5.0
)

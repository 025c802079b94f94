// Package config loads ringfall settings: built-in defaults, then an optional
// TOML file, then environment overrides (optionally read from a .env file).
//
// Example file:
//
//	seed = 42
//
//	[physics]
//	boundary_radius = 400
//	cutout_degrees = 60
//	max_balls = 1200
//
//	[display]
//	fps = 60
//
//	[audio]
//	enabled = false
package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/lixenwraith/ringfall/constants"
	"github.com/lixenwraith/ringfall/physics"
	"github.com/lixenwraith/ringfall/vmath"
)

// Environment overrides, applied after the config file
const (
	EnvSeed     = "RINGFALL_SEED"
	EnvMaxBalls = "RINGFALL_MAX_BALLS"
	EnvFPS      = "RINGFALL_FPS"
	EnvAudio    = "RINGFALL_AUDIO"
)

// Config holds everything fixed at startup
type Config struct {
	// Seed for the simulation random stream, 0 picks one from the clock
	Seed int64 `toml:"seed"`

	Physics PhysicsConfig `toml:"physics"`
	Display DisplayConfig `toml:"display"`
	Audio   AudioConfig   `toml:"audio"`

	// Source is the file the config was read from, empty for defaults
	Source string `toml:"-"`
}

// PhysicsConfig is in simulation units; gravity and rotation_step are per tick
type PhysicsConfig struct {
	BoundaryRadius    float64 `toml:"boundary_radius"`
	BoundaryThickness float64 `toml:"boundary_thickness"`
	CutoutDegrees     float64 `toml:"cutout_degrees"`
	BallRadius        float64 `toml:"ball_radius"`
	Gravity           float64 `toml:"gravity"`
	RotationStep      float64 `toml:"rotation_step"`
	MaxBalls          int     `toml:"max_balls"`
}

type DisplayConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	FPS    int `toml:"fps"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`

	// Volume is a base-2 exponent: 0 is unity gain, -1 is half
	Volume float64 `toml:"volume"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			BoundaryRadius:    constants.BoundaryRadius,
			BoundaryThickness: constants.BoundaryThickness,
			CutoutDegrees:     constants.CutoutDegrees,
			BallRadius:        constants.BallRadius,
			Gravity:           constants.Gravity,
			RotationStep:      constants.RotationStep,
			MaxBalls:          constants.MaxBalls,
		},
		Display: DisplayConfig{
			Width:  constants.FieldWidth,
			Height: constants.FieldHeight,
			FPS:    constants.TargetFPS,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  -1,
		},
	}
}

// Load builds a config from defaults, the TOML file at path (skipped when path
// is empty) and the environment, then validates it
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	c.Source = path
	return nil
}

// LoadEnvFile reads KEY=VALUE pairs from path into the process environment
// Variables already set are kept; a missing file is not an error
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "load env file %s", path)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s=%q", EnvSeed, v)
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvMaxBalls); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s=%q", EnvMaxBalls, v)
		}
		c.Physics.MaxBalls = n
	}
	if v, ok := lookup(EnvFPS); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s=%q", EnvFPS, v)
		}
		c.Display.FPS = n
	}
	if v, ok := lookup(EnvAudio); ok {
		on, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return errors.Wrapf(err, "%s=%q", EnvAudio, v)
		}
		c.Audio.Enabled = on
	}
	return nil
}

// Validate rejects configurations the simulation cannot run
func (c *Config) Validate() error {
	p := c.Physics
	switch {
	case p.BoundaryRadius <= 0:
		return errors.Errorf("physics.boundary_radius must be positive, got %v", p.BoundaryRadius)
	case p.BoundaryThickness <= 0:
		return errors.Errorf("physics.boundary_thickness must be positive, got %v", p.BoundaryThickness)
	case p.BallRadius <= 0:
		return errors.Errorf("physics.ball_radius must be positive, got %v", p.BallRadius)
	case p.BallRadius >= p.BoundaryRadius:
		return errors.Errorf("physics.ball_radius %v must be smaller than boundary_radius %v", p.BallRadius, p.BoundaryRadius)
	case p.BoundaryRadius <= constants.SpawnInset:
		return errors.Errorf("physics.boundary_radius must exceed the spawn inset %v, got %v", constants.SpawnInset, p.BoundaryRadius)
	case p.BallRadius >= constants.SpawnInset:
		return errors.Errorf("physics.ball_radius must be below the spawn inset %v, got %v", constants.SpawnInset, p.BallRadius)
	case p.CutoutDegrees <= 0 || p.CutoutDegrees >= 360:
		return errors.Errorf("physics.cutout_degrees must be in (0, 360), got %v", p.CutoutDegrees)
	case math.IsNaN(p.Gravity) || math.IsInf(p.Gravity, 0):
		return errors.Errorf("physics.gravity must be finite, got %v", p.Gravity)
	case math.IsNaN(p.RotationStep) || math.IsInf(p.RotationStep, 0):
		return errors.Errorf("physics.rotation_step must be finite, got %v", p.RotationStep)
	case p.MaxBalls < 1:
		return errors.Errorf("physics.max_balls must be at least 1, got %d", p.MaxBalls)
	}

	d := c.Display
	switch {
	case d.FPS <= 0:
		return errors.Errorf("display.fps must be positive, got %d", d.FPS)
	case d.Width <= 0 || d.Height <= 0:
		return errors.Errorf("display size must be positive, got %dx%d", d.Width, d.Height)
	}

	if c.Audio.Volume < -10 || c.Audio.Volume > 2 {
		return errors.Errorf("audio.volume must be in [-10, 2], got %v", c.Audio.Volume)
	}
	return nil
}

// Params converts the physics section into simulation parameters centered on the display field
func (c *Config) Params() physics.Params {
	p := physics.DefaultParams()
	p.Center = vmath.V2(float64(c.Display.Width)/2, float64(c.Display.Height)/2)
	p.BoundaryRadius = c.Physics.BoundaryRadius
	p.BoundaryThickness = c.Physics.BoundaryThickness
	p.CutoutWidth = c.Physics.CutoutDegrees * math.Pi / 180
	p.BallRadius = c.Physics.BallRadius
	p.Gravity = c.Physics.Gravity
	p.RotationStep = c.Physics.RotationStep
	p.MaxBalls = c.Physics.MaxBalls
	return p
}

// FrameInterval is the host loop period at the configured FPS
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Display.FPS)
}

// ResolveSeed returns the configured seed, or one derived from now when unset
func (c *Config) ResolveSeed(now time.Time) uint64 {
	if c.Seed != 0 {
		return uint64(c.Seed)
	}
	return uint64(now.UnixNano())
}

// Package config holds the table configuration: schema, defaults, loading and validation
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/billiard/engine"
	"github.com/lixenwraith/billiard/parameter"
	"github.com/lixenwraith/billiard/physics"
	"github.com/lixenwraith/billiard/toml"
	"github.com/lixenwraith/billiard/vmath"
)

// ErrInvalidConfig wraps every validation failure, the message names the offending field
var ErrInvalidConfig = errors.New("invalid config")

// Config mirrors the TOML file layout
type Config struct {
	Arena     ArenaConfig       `toml:"arena"`
	Wall      WallConfig        `toml:"wall"`
	Impulse   ImpulseConfig     `toml:"impulse"`
	Collision CollisionConfig   `toml:"collision"`
	Loop      LoopConfig        `toml:"loop"`
	Palette   PaletteConfig     `toml:"palette"`
	Audio     AudioConfig       `toml:"audio"`
	Keys      map[string]string `toml:"keys"` // key name -> action, overlays the default bindings
	Balls     []BallConfig      `toml:"balls"`
}

type ArenaConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type WallConfig struct {
	Restitution float64 `toml:"restitution"`
}

type ImpulseConfig struct {
	ReferenceSpeed float64 `toml:"reference_speed"`
	Scaling        string  `toml:"scaling"` // "raw" or "unit"
	UnitSpeed      float64 `toml:"unit_speed"`
}

type CollisionConfig struct {
	PairVisit string `toml:"pair_visit"` // "once" or "twice"
}

type LoopConfig struct {
	TickMS int `toml:"tick_ms"`
}

type PaletteConfig struct {
	Colors []string `toml:"colors"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// BallConfig is one initial ball; an empty color takes parameter.DefaultBallColor
type BallConfig struct {
	ID     int     `toml:"id"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Radius float64 `toml:"radius"`
	Color  string  `toml:"color"`
	VX     float64 `toml:"vx"`
	VY     float64 `toml:"vy"`
}

// Default returns the stock table: 800x600, four resting balls of growing size
func Default() *Config {
	return &Config{
		Arena: ArenaConfig{Width: parameter.DefaultArenaWidth, Height: parameter.DefaultArenaHeight},
		Wall:  WallConfig{Restitution: parameter.DefaultRestitution},
		Impulse: ImpulseConfig{
			ReferenceSpeed: parameter.ImpulseReferenceSpeed,
			Scaling:        engine.ScaleRaw.String(),
			UnitSpeed:      parameter.DefaultUnitImpulseSpeed,
		},
		Collision: CollisionConfig{PairVisit: physics.PairVisitOnce.String()},
		Loop:      LoopConfig{TickMS: int(parameter.TickInterval / time.Millisecond)},
		Palette:   PaletteConfig{Colors: append([]string(nil), parameter.DefaultPalette...)},
		Audio:     AudioConfig{Enabled: true, Volume: parameter.DefaultAudioVolume},
		Balls: []BallConfig{
			{ID: 0, X: 100, Y: 100, Radius: 20, Color: parameter.DefaultBallColor},
			{ID: 1, X: 200, Y: 200, Radius: 30, Color: parameter.DefaultBallColor},
			{ID: 2, X: 300, Y: 300, Radius: 40, Color: parameter.DefaultBallColor},
			{ID: 3, X: 400, Y: 150, Radius: 50, Color: parameter.DefaultBallColor},
		},
	}
}

// Load reads a TOML file over the defaults and validates the result
// Keys missing from the file keep their default, unknown keys are an error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file read
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func invalid(field, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks every field and reports the first failure with its path
func (c *Config) Validate() error {
	if !(c.Arena.Width > 0) || !finite(c.Arena.Width) {
		return invalid("arena.width", "must be positive, got %v", c.Arena.Width)
	}
	if !(c.Arena.Height > 0) || !finite(c.Arena.Height) {
		return invalid("arena.height", "must be positive, got %v", c.Arena.Height)
	}
	if !(c.Wall.Restitution > 0) || c.Wall.Restitution > 1 {
		return invalid("wall.restitution", "must be in (0, 1], got %v", c.Wall.Restitution)
	}
	if !(c.Impulse.ReferenceSpeed > 0) || !finite(c.Impulse.ReferenceSpeed) {
		return invalid("impulse.reference_speed", "must be positive, got %v", c.Impulse.ReferenceSpeed)
	}
	scaling, err := engine.ParseImpulseScaling(c.Impulse.Scaling)
	if err != nil {
		return invalid("impulse.scaling", "%v", err)
	}
	if scaling == engine.ScaleUnit && (!(c.Impulse.UnitSpeed > 0) || !finite(c.Impulse.UnitSpeed)) {
		return invalid("impulse.unit_speed", "must be positive with unit scaling, got %v", c.Impulse.UnitSpeed)
	}
	if _, err := physics.ParsePairVisit(c.Collision.PairVisit); err != nil {
		return invalid("collision.pair_visit", "%v", err)
	}
	if time.Duration(c.Loop.TickMS)*time.Millisecond < parameter.MinTickInterval {
		return invalid("loop.tick_ms", "must be at least %v, got %d", parameter.MinTickInterval, c.Loop.TickMS)
	}
	if len(c.Palette.Colors) == 0 {
		return invalid("palette.colors", "must not be empty")
	}
	for i, color := range c.Palette.Colors {
		if strings.TrimSpace(color) == "" {
			return invalid(fmt.Sprintf("palette.colors[%d]", i), "empty color name")
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 || math.IsNaN(c.Audio.Volume) {
		return invalid("audio.volume", "must be in [0, 1], got %v", c.Audio.Volume)
	}

	seen := make(map[int]int, len(c.Balls))
	for i, b := range c.Balls {
		field := fmt.Sprintf("balls[%d]", i)
		if _, err := physics.NewBall(b.ID, vmath.V2(b.X, b.Y), b.Radius, b.Color, vmath.V2(b.VX, b.VY)); err != nil {
			return invalid(field, "%v", err)
		}
		if prev, dup := seen[b.ID]; dup {
			return invalid(field+".id", "%d already used by balls[%d]", b.ID, prev)
		}
		seen[b.ID] = i
	}
	return nil
}

// ApplyLossy switches walls to the lossy restitution
func (c *Config) ApplyLossy() {
	c.Wall.Restitution = parameter.LossyRestitution
}

// TickInterval returns the loop period
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Loop.TickMS) * time.Millisecond
}

// SimConfig converts a validated config into simulation input
func (c *Config) SimConfig() (engine.SimConfig, error) {
	if err := c.Validate(); err != nil {
		return engine.SimConfig{}, err
	}
	scaling, _ := engine.ParseImpulseScaling(c.Impulse.Scaling)
	visit, _ := physics.ParsePairVisit(c.Collision.PairVisit)

	balls := make([]physics.Ball, len(c.Balls))
	for i, b := range c.Balls {
		color := b.Color
		if color == "" {
			color = parameter.DefaultBallColor
		}
		balls[i] = physics.Ball{
			ID:     b.ID,
			Pos:    vmath.V2(b.X, b.Y),
			Vel:    vmath.V2(b.VX, b.VY),
			Radius: b.Radius,
			Color:  color,
		}
	}

	return engine.SimConfig{
		Arena:          physics.Arena{Width: c.Arena.Width, Height: c.Arena.Height},
		Balls:          balls,
		Step:           physics.StepParams{Restitution: c.Wall.Restitution, PairVisit: visit},
		ReferenceSpeed: c.Impulse.ReferenceSpeed,
		Impulse:        engine.ImpulsePolicy{Scaling: scaling, UnitSpeed: c.Impulse.UnitSpeed},
	}, nil
}

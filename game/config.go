package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure reported by Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// LaneDirectionPolicy decides which way a newly spawned vehicle travels.
type LaneDirectionPolicy string

const (
	// LanesAlternating sends vehicles right on even lanes and left on odd lanes.
	LanesAlternating LaneDirectionPolicy = "alternating"
	// LanesRandom picks a direction per vehicle.
	LanesRandom LaneDirectionPolicy = "random"
)

// PowerUpMotion decides whether power-ups sit still or fall from the top edge.
type PowerUpMotion string

const (
	PowerUpsStatic  PowerUpMotion = "static"
	PowerUpsFalling PowerUpMotion = "falling"
)

// GoalEdge is the edge the player must reach to score.
type GoalEdge string

const (
	GoalTop    GoalEdge = "top"
	GoalBottom GoalEdge = "bottom"
)

// SpeedBoostMode decides how a speed boost changes the player's step.
type SpeedBoostMode string

const (
	BoostAdd      SpeedBoostMode = "add"
	BoostMultiply SpeedBoostMode = "multiply"
)

// Config is the full tuning surface of a game. The zero value is not usable;
// start from DefaultConfig or Preset.
type Config struct {
	World    WorldConfig   `yaml:"world"`
	Player   PlayerConfig  `yaml:"player"`
	Spawn    SpawnConfig   `yaml:"spawn"`
	Scoring  ScoringConfig `yaml:"scoring"`
	PowerUps PowerUpConfig `yaml:"powerups"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width" ini:"width"`
	Height float64 `yaml:"height" ini:"height"`
	// TickInterval is the simulated time covered by one tick.
	TickInterval time.Duration `yaml:"tick_interval" ini:"tick_interval"`
	// DayNightPeriod is the number of ticks between time-of-day toggles.
	DayNightPeriod int `yaml:"day_night_period" ini:"day_night_period"`

	Roads        int     `yaml:"roads" ini:"roads"`
	RoadHeight   float64 `yaml:"road_height" ini:"road_height"`
	VergeHeight  float64 `yaml:"verge_height" ini:"verge_height"`
	BottomMargin float64 `yaml:"bottom_margin" ini:"bottom_margin"`
}

type PlayerConfig struct {
	Width  float64 `yaml:"width" ini:"width"`
	Height float64 `yaml:"height" ini:"height"`
	// Step is the distance covered by one move command.
	Step        float64 `yaml:"step" ini:"step"`
	StartMargin float64 `yaml:"start_margin" ini:"start_margin"`
}

type SpawnConfig struct {
	// VehicleChance is the per-tick spawn probability at level 1; it grows linearly with level.
	VehicleChance    float64             `yaml:"vehicle_chance" ini:"vehicle_chance"`
	MaxVehicleChance float64             `yaml:"max_vehicle_chance" ini:"max_vehicle_chance"`
	LaneDirection    LaneDirectionPolicy `yaml:"lane_direction" ini:"lane_direction"`
	// VehicleTypes enables motorcycles, cars and trucks with their own speed bands.
	VehicleTypes    bool    `yaml:"vehicle_types" ini:"vehicle_types"`
	SpeedScaling    bool    `yaml:"speed_scaling" ini:"speed_scaling"`
	SpeedScaleEvery int     `yaml:"speed_scale_every" ini:"speed_scale_every"`
	SpeedScaleStep  float64 `yaml:"speed_scale_step" ini:"speed_scale_step"`
}

type ScoringConfig struct {
	Award     int      `yaml:"award" ini:"award"`
	LevelSize int      `yaml:"level_size" ini:"level_size"`
	GoalEdge  GoalEdge `yaml:"goal_edge" ini:"goal_edge"`
}

type PowerUpConfig struct {
	Enabled    bool           `yaml:"enabled" ini:"enabled"`
	Chance     float64        `yaml:"chance" ini:"chance"`
	Motion     PowerUpMotion  `yaml:"motion" ini:"motion"`
	FallSpeed  float64        `yaml:"fall_speed" ini:"fall_speed"`
	Size       float64        `yaml:"size" ini:"size"`
	Duration   time.Duration  `yaml:"duration" ini:"duration"`
	SlowFactor float64        `yaml:"slow_factor" ini:"slow_factor"`
	BoostMode  SpeedBoostMode `yaml:"boost_mode" ini:"boost_mode"`
	Boost      float64        `yaml:"boost" ini:"boost"`
}

// DefaultConfig returns the arcade preset.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:          400,
			Height:         600,
			TickInterval:   time.Second / 60,
			DayNightPeriod: 900,
			Roads:          4,
			RoadHeight:     80,
			VergeHeight:    40,
			BottomMargin:   60,
		},
		Player: PlayerConfig{
			Width:       40,
			Height:      40,
			Step:        10,
			StartMargin: 10,
		},
		Spawn: SpawnConfig{
			VehicleChance:    0.02,
			MaxVehicleChance: 0.25,
			LaneDirection:    LanesAlternating,
			VehicleTypes:     true,
			SpeedScaling:     true,
			SpeedScaleEvery:  5,
			SpeedScaleStep:   0.1,
		},
		Scoring: ScoringConfig{
			Award:     10,
			LevelSize: 50,
			GoalEdge:  GoalTop,
		},
		PowerUps: PowerUpConfig{
			Enabled:    true,
			Chance:     0.003,
			Motion:     PowerUpsStatic,
			FallSpeed:  1.5,
			Size:       24,
			Duration:   5 * time.Second,
			SlowFactor: 0.5,
			BoostMode:  BoostAdd,
			Boost:      5,
		},
	}
}

// Preset returns one of the named tunings: "classic" (random lanes,
// untyped cars, no power-ups, one point per crossing),
// "arcade" (DefaultConfig) or "inverted" (goal at the bottom, falling
// power-ups, multiplicative boost).
func Preset(name string) (Config, bool) {
	cfg := DefaultConfig()
	switch strings.ToLower(name) {
	case "", "arcade":
		return cfg, true
	case "classic":
		cfg.World.Roads = 5
		cfg.World.BottomMargin = 0
		cfg.World.Height = 640
		cfg.Spawn.LaneDirection = LanesRandom
		cfg.Spawn.VehicleTypes = false
		cfg.Spawn.SpeedScaling = false
		cfg.Scoring.Award = 1
		cfg.Scoring.LevelSize = 5
		cfg.PowerUps.Enabled = false
		return cfg, true
	case "inverted":
		cfg.Scoring.GoalEdge = GoalBottom
		cfg.PowerUps.Motion = PowerUpsFalling
		cfg.PowerUps.BoostMode = BoostMultiply
		cfg.World.DayNightPeriod = 600
		return cfg, true
	}
	return Config{}, false
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	w, p, s, sc, pu := c.World, c.Player, c.Spawn, c.Scoring, c.PowerUps

	check(w.Width > 0 && w.Height > 0, "world size %vx%v must be positive", w.Width, w.Height)
	check(w.TickInterval > 0, "tick interval %s must be positive", w.TickInterval)
	check(w.DayNightPeriod > 0, "day/night period %d must be positive", w.DayNightPeriod)
	check(w.Roads > 0, "need at least one road, got %d", w.Roads)
	check(w.RoadHeight > 0 && w.VergeHeight >= 0 && w.BottomMargin >= 0, "road layout sizes must not be negative")

	check(p.Width > 0 && p.Height > 0, "player size %vx%v must be positive", p.Width, p.Height)
	check(p.Width <= w.Width && p.Height <= w.Height, "player %vx%v does not fit the world", p.Width, p.Height)
	check(p.Step > 0, "player step %v must be positive", p.Step)
	check(p.StartMargin >= 0 && p.StartMargin+p.Height < w.Height, "start margin %v leaves no room to move", p.StartMargin)

	roadsTop := w.BottomMargin + float64(w.Roads)*w.RoadHeight + float64(w.Roads-1)*w.VergeHeight
	check(roadsTop <= w.Height, "roads reach %v, above the world height %v", roadsTop, w.Height)

	check(s.VehicleChance >= 0 && s.VehicleChance <= 1, "vehicle chance %v outside [0,1]", s.VehicleChance)
	check(s.MaxVehicleChance >= 0 && s.MaxVehicleChance <= 1, "max vehicle chance %v outside [0,1]", s.MaxVehicleChance)
	check(s.LaneDirection == LanesAlternating || s.LaneDirection == LanesRandom, "unknown lane direction policy %q", s.LaneDirection)
	check(!s.SpeedScaling || (s.SpeedScaleEvery > 0 && s.SpeedScaleStep >= 0), "speed scaling needs a positive period and non-negative step")

	check(sc.Award > 0, "score award %d must be positive", sc.Award)
	check(sc.LevelSize > 0, "level size %d must be positive", sc.LevelSize)
	check(sc.GoalEdge == GoalTop || sc.GoalEdge == GoalBottom, "unknown goal edge %q", sc.GoalEdge)

	if pu.Enabled {
		check(pu.Chance >= 0 && pu.Chance <= 1, "power-up chance %v outside [0,1]", pu.Chance)
		check(pu.Motion == PowerUpsStatic || pu.Motion == PowerUpsFalling, "unknown power-up motion %q", pu.Motion)
		check(pu.Motion != PowerUpsFalling || pu.FallSpeed > 0, "falling power-ups need a positive fall speed")
		check(pu.Size > 0 && pu.Size <= w.Width && pu.Size <= w.Height, "power-up size %v does not fit the world", pu.Size)
		check(pu.Duration > 0, "power-up duration %s must be positive", pu.Duration)
		check(pu.SlowFactor > 0 && pu.SlowFactor <= 1, "slow factor %v outside (0,1]", pu.SlowFactor)
		check(pu.BoostMode == BoostAdd || pu.BoostMode == BoostMultiply, "unknown boost mode %q", pu.BoostMode)
		check(pu.BoostMode != BoostAdd || pu.Boost > 0, "additive boost %v must be positive", pu.Boost)
	}

	return errors.Join(errs...)
}

// LoadConfig reads a YAML (.yaml, .yml) or INI (.ini) file over DefaultConfig
// and validates the result. Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".ini":
		if err := loadINI(path, &cfg); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadINI(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("parse ini config %s: %w", path, err)
	}

	sections := []struct {
		name   string
		target any
	}{
		{"world", &cfg.World},
		{"player", &cfg.Player},
		{"spawn", &cfg.Spawn},
		{"scoring", &cfg.Scoring},
		{"powerups", &cfg.PowerUps},
	}
	for _, s := range sections {
		section, err := file.GetSection(s.name)
		if err != nil {
			continue
		}
		if err := section.MapTo(s.target); err != nil {
			return fmt.Errorf("ini config %s [%s]: %w", path, s.name, err)
		}
	}
	return nil
}

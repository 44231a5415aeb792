package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/blastar/internal/config"
)

// ErrInvalidConfig is wrapped by every field rejected in Config.Normalize.
var ErrInvalidConfig = errors.New("invalid match config")

// Scene geometry in world units. The origin is the center of the play area, y grows upward.
const (
	SceneWidth  = 445.0
	SceneHeight = 768.0

	GroundWidth  = SceneWidth
	GroundHeight = 60.0
	GroundY      = -SceneHeight/2 + GroundHeight/2 // Ground center

	PlayerWidth  = 50.0
	PlayerHeight = 40.0
	PlayerY      = -280.0
	PlayerMargin = PlayerWidth / 2 // Ship stays fully on screen
)

// Hazard spawn parameters.
const (
	BaseHazardSize = 128.0
	HazardMinX     = -200
	HazardMaxX     = 200
	HoldMinY       = 0
	HoldMaxY       = 350
)

// Hazard timeline.
const (
	DescendDuration  = 5 * time.Second
	GrowSize         = 80.0
	GrowDuration     = 3 * time.Second
	SpinRevolutions  = 12
	RevolutionPeriod = 400 * time.Millisecond
	FallDuration     = 500 * time.Millisecond
)

// Config holds the tunable rules of a match.
type Config struct {
	SpawnInterval   time.Duration // Time between hazard spawns
	HazardHP        int           // Hit points of a new hazard
	HitDamage       int           // Hazard hp removed per projectile contact
	GroundHP        int           // Initial and maximum ground health
	GroundDamage    int           // Ground hp removed per hazard contact
	HitScore        int           // Score for a non-lethal hit
	KillScore       int           // Score for a lethal hit
	ProjectileSpeed float64       // Units per second, upward
	PlayerGlide     time.Duration // Time for the ship to reach a new target x
	GameOverDelay   time.Duration // Time between the game-over latch and the end of the session
	MaxStep         time.Duration // Longest slice of simulated time between contact checks
	Seed            int64         // Random source seed; 0 picks one from the clock
}

// DefaultConfig returns the standard rules.
func DefaultConfig() Config {
	return Config{
		SpawnInterval:   1500 * time.Millisecond,
		HazardHP:        30,
		HitDamage:       10,
		GroundHP:        600,
		GroundDamage:    30,
		HitScore:        1,
		KillScore:       5,
		ProjectileSpeed: 700,
		PlayerGlide:     200 * time.Millisecond,
		GameOverDelay:   2 * time.Second,
		MaxStep:         20 * time.Millisecond,
	}
}

// Normalize replaces every out-of-range field with its default. The returned
// error joins one ErrInvalidConfig entry per replaced field; the config is
// usable either way.
func (c *Config) Normalize() error {
	def := DefaultConfig()
	var errs []error

	reject := func(field string, value any) {
		errs = append(errs, fmt.Errorf("%w: %s=%v", ErrInvalidConfig, field, value))
	}

	if c.SpawnInterval <= 0 {
		reject("SpawnInterval", c.SpawnInterval)
		c.SpawnInterval = def.SpawnInterval
	}
	if c.HazardHP <= 0 {
		reject("HazardHP", c.HazardHP)
		c.HazardHP = def.HazardHP
	}
	if c.HitDamage <= 0 {
		reject("HitDamage", c.HitDamage)
		c.HitDamage = def.HitDamage
	}
	if c.GroundHP <= 0 {
		reject("GroundHP", c.GroundHP)
		c.GroundHP = def.GroundHP
	}
	if c.GroundDamage <= 0 {
		reject("GroundDamage", c.GroundDamage)
		c.GroundDamage = def.GroundDamage
	}
	if c.HitScore < 0 {
		reject("HitScore", c.HitScore)
		c.HitScore = def.HitScore
	}
	if c.KillScore < 0 {
		reject("KillScore", c.KillScore)
		c.KillScore = def.KillScore
	}
	if c.ProjectileSpeed <= 0 {
		reject("ProjectileSpeed", c.ProjectileSpeed)
		c.ProjectileSpeed = def.ProjectileSpeed
	}
	if c.PlayerGlide < 0 {
		reject("PlayerGlide", c.PlayerGlide)
		c.PlayerGlide = def.PlayerGlide
	}
	if c.GameOverDelay < 0 {
		reject("GameOverDelay", c.GameOverDelay)
		c.GameOverDelay = def.GameOverDelay
	}
	if c.MaxStep <= 0 {
		reject("MaxStep", c.MaxStep)
		c.MaxStep = def.MaxStep
	}

	return errors.Join(errs...)
}

// ConfigFromEnv returns DefaultConfig overlaid with BLASTAR_SPAWN_INTERVAL,
// BLASTAR_GROUND_HP, BLASTAR_HAZARD_HP and BLASTAR_SEED. Unparsable values keep
// the default and are reported in the returned error.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	var err error
	if cfg.SpawnInterval, err = config.GetEnvDuration("BLASTAR_SPAWN_INTERVAL", cfg.SpawnInterval); err != nil {
		errs = append(errs, err)
	}
	if cfg.GroundHP, err = config.GetEnvInt("BLASTAR_GROUND_HP", cfg.GroundHP); err != nil {
		errs = append(errs, err)
	}
	if cfg.HazardHP, err = config.GetEnvInt("BLASTAR_HAZARD_HP", cfg.HazardHP); err != nil {
		errs = append(errs, err)
	}
	seed, err := config.GetEnvInt("BLASTAR_SEED", 0)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Seed = int64(seed)

	return cfg, errors.Join(errs...)
}

package rain

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// MaxIntensity is the value of a freshly spawned head.
const MaxIntensity = 255

// Engine tuning defaults.
const (
	DefaultFalloff     = 40
	DefaultBrightAt    = 150
	DefaultHeadAt      = 250
	DefaultSpawnChance = 1.0 / 24
	DefaultDecayChance = 3.0 / 5
)

// ErrInvalidConfig is returned for engine settings outside their valid range.
var ErrInvalidConfig = errors.New("invalid rain config")

// Config holds the tunables of the spawn/decay rule and the color thresholds.
type Config struct {
	// Falloff is subtracted from a decaying cell each tick. Cells below it
	// render blank.
	Falloff uint8
	// BrightAt is the first intensity drawn in the bright trail color.
	BrightAt uint8
	// HeadAt is the first intensity drawn in the head color.
	HeadAt uint8
	// SpawnChance is the probability that an empty top cell becomes a head.
	SpawnChance float64
	// DecayChance is the probability that a top-row trail keeps decaying
	// instead of being cut off.
	DecayChance float64
}

// DefaultConfig returns the stock look.
func DefaultConfig() Config {
	return Config{
		Falloff:     DefaultFalloff,
		BrightAt:    DefaultBrightAt,
		HeadAt:      DefaultHeadAt,
		SpawnChance: DefaultSpawnChance,
		DecayChance: DefaultDecayChance,
	}
}

// Validate checks the config ranges.
func (c Config) Validate() error {
	switch {
	case c.Falloff == 0 || c.Falloff == MaxIntensity:
		return fmt.Errorf("%w: falloff must be in 1..254, got %d", ErrInvalidConfig, c.Falloff)
	case c.BrightAt < c.Falloff:
		return fmt.Errorf("%w: bright_at (%d) below falloff (%d)", ErrInvalidConfig, c.BrightAt, c.Falloff)
	case c.HeadAt < c.BrightAt:
		return fmt.Errorf("%w: head_at (%d) below bright_at (%d)", ErrInvalidConfig, c.HeadAt, c.BrightAt)
	case c.SpawnChance < 0 || c.SpawnChance > 1:
		return fmt.Errorf("%w: spawn_chance must be in [0,1], got %g", ErrInvalidConfig, c.SpawnChance)
	case c.DecayChance < 0 || c.DecayChance > 1:
		return fmt.Errorf("%w: decay_chance must be in [0,1], got %g", ErrInvalidConfig, c.DecayChance)
	}
	return nil
}

// NewRand returns a PCG source seeded with seed, or from the runtime's
// random state when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

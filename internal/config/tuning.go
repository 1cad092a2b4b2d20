package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Tuning holds the gameplay parameters. Zero-config play uses DefaultTuning;
// a TOML file can override any subset of fields.
type Tuning struct {
	LayerHeight      float64 `toml:"layer_height"`       // Height of every block
	BoxSize          float64 `toml:"box_size"`           // Width and depth of the seed layers
	BackLimit        float64 `toml:"back_limit"`         // Travel start and lower bounce limit
	FrontLimit       float64 `toml:"front_limit"`        // Upper bounce limit
	BounceEpsilon    float64 `toml:"bounce_epsilon"`     // Slack below BackLimit before bouncing
	BaseSpeed        float64 `toml:"base_speed"`         // Units per tick with only the seed layers
	SpeedGrowth      float64 `toml:"speed_growth"`       // Fractional speed gain per placed layer
	CameraBaseHeight float64 `toml:"camera_base_height"` // Camera height at the start of a game
	Gravity          float64 `toml:"gravity"`            // Vertical acceleration for falling blocks
	OverhangMass     float64 `toml:"overhang_mass"`      // Mass given to cut-off pieces
	FixedStep        float64 `toml:"fixed_step"`         // Physics step per tick, in seconds
}

// DefaultTuning returns the classic parameters.
func DefaultTuning() Tuning {
	return Tuning{
		LayerHeight:      1,
		BoxSize:          3,
		BackLimit:        -8,
		FrontLimit:       8,
		BounceEpsilon:    0.01,
		BaseSpeed:        0.15,
		SpeedGrowth:      0.02,
		CameraBaseHeight: 4,
		Gravity:          -10,
		OverhangMass:     5,
		FixedStep:        1.0 / 60.0,
	}
}

// LoadTuning reads a TOML file on top of DefaultTuning.
// An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("load tuning %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, fmt.Errorf("load tuning %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("load tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects parameter sets the game loop cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	positive := []struct {
		name  string
		value float64
	}{
		{"layer_height", t.LayerHeight},
		{"box_size", t.BoxSize},
		{"base_speed", t.BaseSpeed},
		{"overhang_mass", t.OverhangMass},
		{"fixed_step", t.FixedStep},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %g", p.name, p.value))
		}
	}
	if t.SpeedGrowth < 0 {
		errs = append(errs, fmt.Errorf("speed_growth must not be negative, got %g", t.SpeedGrowth))
	}
	if t.BounceEpsilon < 0 {
		errs = append(errs, fmt.Errorf("bounce_epsilon must not be negative, got %g", t.BounceEpsilon))
	}
	if t.BackLimit >= t.FrontLimit {
		errs = append(errs, fmt.Errorf("back_limit (%g) must be below front_limit (%g)", t.BackLimit, t.FrontLimit))
	}
	return errors.Join(errs...)
}

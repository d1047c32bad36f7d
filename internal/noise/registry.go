package noise

import (
	"fmt"

	"terrainforge/internal/raster"
)

// Config is the union of every field a registered generator might need,
// populated from the heightmap_generation block of the parameter document.
// Only the fields relevant to a given Type are read.
type Config struct {
	Type string `mapstructure:"type"`

	// simple + shared
	Octaves      int     `mapstructure:"octaves"`
	Persistence  float64 `mapstructure:"persistence"`
	Lacunarity   float64 `mapstructure:"lacunarity"`
	InitialScale float64 `mapstructure:"initial_scale"`

	// island-only
	RadiusCoef             float64 `mapstructure:"radius_coef"`
	CenterRadiusCoef       float64 `mapstructure:"center_radius_coef"`
	VariationInitialScale  float64 `mapstructure:"variation_initial_scale"`
	VariationAmplitudeCoef float64 `mapstructure:"variation_amplitude_coef"`
	EasePower              float64 `mapstructure:"ease_power"`
}

// Generator synthesizes a [W,H] field in [0,1] from a Config, dimensions
// and seed.
type Generator func(cfg Config, w, h int, seed int64) (*raster.FloatGrid, error)

var registry = map[string]Generator{
	"simple": GenerateSimple,
	"island": GenerateIsland,
}

// Register adds (or replaces) a named generator. It exists so tests and
// callers outside this package can exercise the dispatch path without a
// hardcoded type switch.
func Register(name string, gen Generator) {
	registry[name] = gen
}

// ErrUnknownGenerator is returned when heightmap_generation.type names a
// generator that was never registered.
type ErrUnknownGenerator struct {
	Type string
}

func (e *ErrUnknownGenerator) Error() string {
	return fmt.Sprintf("unknown heightmap generator module: %q", e.Type)
}

// Generate dispatches cfg.Type to its registered Generator.
func Generate(cfg Config, w, h int, seed int64) (*raster.FloatGrid, error) {
	gen, ok := registry[cfg.Type]
	if !ok {
		return nil, &ErrUnknownGenerator{Type: cfg.Type}
	}
	return gen(cfg, w, h, seed)
}

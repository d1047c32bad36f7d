// Package params loads and validates the parameter document that drives
// an entire generation run: a single JSON file naming dimensions,
// per-stage tunables, the output path template, and an optional debug
// override block.
package params

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"terrainforge/internal/erosion"
	"terrainforge/internal/noise"
	"terrainforge/internal/stratums"
	"terrainforge/internal/waters"
)

// MapConfig is the map block of the parameter document: the user-declared
// final dimensions. Generation runs at half resolution and upscales back,
// so these are the post-resize dimensions.
type MapConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// DebugConfig is the optional _debug block: lets a run
// resume from a prior checkpoint step and override the generation id used
// for the output folder and checkpoint database name.
type DebugConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Step    int    `mapstructure:"step"`
	Name    string `mapstructure:"name"`
}

// Params is the whole parameter document, decoded from JSON via viper.
type Params struct {
	Seed          int64 `mapstructure:"seed"`
	RandomizeSeed bool  `mapstructure:"randomize_seed"`

	Map                 MapConfig       `mapstructure:"map"`
	HeightmapGeneration noise.Config    `mapstructure:"heightmap_generation"`
	Erosion             erosion.Config  `mapstructure:"erosion"`
	CliffMapping        stratums.Config `mapstructure:"cliff_mapping"`
	WaterMapping        waters.Config   `mapstructure:"water_mapping"`

	Outputs string      `mapstructure:"outputs"`
	Debug   DebugConfig `mapstructure:"_debug"`

	sourcePath string
}

// ErrMissingParameter reports a required field the parameter document
// didn't supply. Structural errors like this are fatal; the caller logs
// and aborts.
type ErrMissingParameter struct {
	Field string
}

func (e *ErrMissingParameter) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Field)
}

// Load reads and decodes the parameter document at path, applying seed
// randomization and structural validation before returning it.
func Load(path string) (*Params, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("TERRAINFORGE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read parameters file %s: %w", path, err)
	}

	var p Params
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("decode parameters file %s: %w", path, err)
	}
	p.sourcePath = path

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.resolveSeed(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the structural fields every stage needs to even start;
// per-stage numeric tunables (e.g. zero droplets, zero sources) are valid
// no-ops and are left to each stage to interpret.
func (p *Params) Validate() error {
	if p.Map.Width <= 0 {
		return &ErrMissingParameter{Field: "map.width"}
	}
	if p.Map.Height <= 0 {
		return &ErrMissingParameter{Field: "map.height"}
	}
	if strings.TrimSpace(p.HeightmapGeneration.Type) == "" {
		return &ErrMissingParameter{Field: "heightmap_generation.type"}
	}
	if p.CliffMapping.StepCount <= 0 {
		return &ErrMissingParameter{Field: "cliff_mapping.step_count"}
	}
	if strings.TrimSpace(p.Outputs) == "" {
		return &ErrMissingParameter{Field: "outputs"}
	}
	return nil
}

// resolveSeed replaces Seed with a uniform 32-bit value when
// randomize_seed is set.
func (p *Params) resolveSeed() error {
	if !p.RandomizeSeed {
		return nil
	}
	var buf [4]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return fmt.Errorf("randomize seed: %w", err)
	}
	p.Seed = int64(binary.BigEndian.Uint32(buf[:]))
	return nil
}

// GenerationID returns the id used for the {folder} output token and the
// checkpoint database's directory name: _debug.name if set, else a fresh
// UUID. Pinning the name lets a debug run find its prior checkpoints.
func (p *Params) GenerationID() string {
	if strings.TrimSpace(p.Debug.Name) != "" {
		return p.Debug.Name
	}
	return uuid.NewString()
}

// ResolveOutputPath expands the outputs template's {directory} and
// {folder} tokens: {directory} is the parameter file's own directory,
// {folder} is genID.
func (p *Params) ResolveOutputPath(genID string) string {
	dir := filepath.Dir(p.sourcePath)
	out := strings.ReplaceAll(p.Outputs, "{directory}", dir)
	out = strings.ReplaceAll(out, "{folder}", genID)
	return out
}

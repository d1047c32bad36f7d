package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
	"seed": 42,
	"randomize_seed": false,
	"map": {"width": 64, "height": 64},
	"heightmap_generation": {
		"type": "simple",
		"octaves": 4,
		"persistence": 0.5,
		"lacunarity": 2.0,
		"initial_scale": 1.0
	},
	"erosion": {
		"droplets": 1000,
		"brush_radius": 3,
		"inertia": 0.05,
		"sediment_capacity_factor": 4,
		"sediment_min_capacity": 0.01,
		"erode_speed": 0.3,
		"deposit_speed": 0.3,
		"evaporate_speed": 0.01,
		"gravity": 4,
		"droplet_lifetime": 30,
		"initial_water_volume": 1,
		"initial_speed": 1
	},
	"cliff_mapping": {"step_count": 8},
	"water_mapping": {
		"river_lifetime": 30,
		"sea_level": 0.2,
		"sources": {
			"amount": 3,
			"distance": 5,
			"power_range": [0.5, 1],
			"x_range": [0, 1],
			"y_range": [0, 1],
			"height_range": [0.3, 1]
		},
		"pooling": {"layer_size": 0.01, "max_depth": 0.2, "basin_trim": 0.05}
	},
	"outputs": "{directory}/outputs/{folder}"
}`

func writeDoc(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "generation_parameters.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeDoc(t, sampleDoc)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.Seed)
	assert.Equal(t, 64, p.Map.Width)
	assert.Equal(t, "simple", p.HeightmapGeneration.Type)
	assert.Equal(t, 8, p.CliffMapping.StepCount)
	assert.Equal(t, 3, p.WaterMapping.Sources.Amount)
}

func TestLoadMissingField(t *testing.T) {
	path := writeDoc(t, `{"map": {"width": 10, "height": 10}, "outputs": "x"}`)
	_, err := Load(path)
	var missing *ErrMissingParameter
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "heightmap_generation.type", missing.Field)
}

func TestResolveOutputPath(t *testing.T) {
	path := writeDoc(t, sampleDoc)
	p, err := Load(path)
	require.NoError(t, err)

	out := p.ResolveOutputPath("gen123")
	assert.Equal(t, filepath.Dir(path)+"/outputs/gen123", out)
}

func TestGenerationIDUsesDebugName(t *testing.T) {
	path := writeDoc(t, sampleDoc)
	p, err := Load(path)
	require.NoError(t, err)
	p.Debug.Name = "fixed-name"
	assert.Equal(t, "fixed-name", p.GenerationID())
}

func TestGenerationIDFallsBackToUUID(t *testing.T) {
	path := writeDoc(t, sampleDoc)
	p, err := Load(path)
	require.NoError(t, err)
	id := p.GenerationID()
	assert.NotEmpty(t, id)
	assert.Len(t, id, 36)
}

func TestRandomizeSeedReplacesSeed(t *testing.T) {
	path := writeDoc(t, `{
		"seed": 7,
		"randomize_seed": true,
		"map": {"width": 10, "height": 10},
		"heightmap_generation": {"type": "simple"},
		"cliff_mapping": {"step_count": 4},
		"outputs": "{directory}/out"
	}`)
	p, err := Load(path)
	require.NoError(t, err)
	assert.NotEqual(t, int64(7), p.Seed)
}

package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrainforge/internal/raster"
)

func simpleConfig() Config {
	return Config{
		Type:         "simple",
		Octaves:      4,
		Persistence:  0.5,
		Lacunarity:   2,
		InitialScale: 1,
	}
}

func islandConfig() Config {
	cfg := simpleConfig()
	cfg.Type = "island"
	cfg.RadiusCoef = 0.9
	cfg.CenterRadiusCoef = 0.2
	cfg.VariationInitialScale = 1
	cfg.VariationAmplitudeCoef = 0.1
	cfg.EasePower = 2
	return cfg
}

func TestGenerateSimpleIsDeterministic(t *testing.T) {
	a, err := GenerateSimple(simpleConfig(), 16, 16, 42)
	require.NoError(t, err)
	b, err := GenerateSimple(simpleConfig(), 16, 16, 42)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestGenerateSimpleDiffersBySeed(t *testing.T) {
	a, err := GenerateSimple(simpleConfig(), 16, 16, 1)
	require.NoError(t, err)
	b, err := GenerateSimple(simpleConfig(), 16, 16, 2)
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}

func TestGenerateSimpleNormalizedRange(t *testing.T) {
	grid, err := GenerateSimple(simpleConfig(), 32, 32, 7)
	require.NoError(t, err)
	min, max := grid.MinMax()
	assert.GreaterOrEqual(t, min, 0.0)
	assert.LessOrEqual(t, max, 1.0)
}

func TestGenerateIslandTapersTowardEdges(t *testing.T) {
	grid, err := GenerateIsland(islandConfig(), 64, 64, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, grid.At(0, 0))
	assert.Equal(t, 0.0, grid.At(63, 0))
}

func TestGenerateIslandCenterIsN4Mean(t *testing.T) {
	grid, err := GenerateIsland(islandConfig(), 16, 16, 3)
	require.NoError(t, err)
	// the center cell is set after its neighbors, so it must lie within
	// their range rather than at a falloff discontinuity.
	cx, cy := 8, 8
	min, max := grid.At(cx-1, cy), grid.At(cx-1, cy)
	for _, n := range [][2]int{{cx + 1, cy}, {cx, cy - 1}, {cx, cy + 1}} {
		v := grid.At(n[0], n[1])
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	center := grid.At(cx, cy)
	assert.GreaterOrEqual(t, center, min-0.001)
	assert.LessOrEqual(t, center, max+0.001)

	mean := (grid.At(cx-1, cy) + grid.At(cx+1, cy) + grid.At(cx, cy-1) + grid.At(cx, cy+1)) / 4
	assert.InDelta(t, mean, center, 1e-9)
}

func TestGenerateUnknownType(t *testing.T) {
	_, err := Generate(Config{Type: "nonexistent"}, 8, 8, 1)
	require.Error(t, err)
	var target *ErrUnknownGenerator
	assert.ErrorAs(t, err, &target)
}

func TestRegisterAddsGenerator(t *testing.T) {
	called := false
	Register("flat", func(cfg Config, w, h int, seed int64) (*raster.FloatGrid, error) {
		called = true
		return raster.NewFloatGrid(w, h), nil
	})
	_, err := Generate(Config{Type: "flat"}, 4, 4, 1)
	require.NoError(t, err)
	assert.True(t, called)
}

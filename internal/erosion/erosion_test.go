package erosion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terrainforge/internal/raster"
)

func testConfig() Config {
	return Config{
		Droplets:               200,
		BrushRadius:            3,
		Inertia:                0.3,
		SedimentCapacityFactor: 4,
		SedimentMinCapacity:    0.01,
		ErodeSpeed:             0.3,
		DepositSpeed:           0.3,
		EvaporateSpeed:         0.01,
		Gravity:                4,
		DropletLifetime:        30,
		InitialWaterVolume:     1,
		InitialSpeed:           1,
	}
}

func slopedHeightmap(w, h int) *raster.FloatGrid {
	g := raster.NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, float64(w-x)/float64(w))
		}
	}
	return g
}

func TestErodeZeroDropletsIsNoOp(t *testing.T) {
	g := slopedHeightmap(20, 20)
	before := g.Clone()

	cfg := testConfig()
	cfg.Droplets = 0
	Erode(g, cfg, 1, nil)

	assert.True(t, g.Equal(before))
}

func TestErodeIsDeterministic(t *testing.T) {
	a := slopedHeightmap(20, 20)
	b := slopedHeightmap(20, 20)

	Erode(a, testConfig(), 99, nil)
	Erode(b, testConfig(), 99, nil)

	assert.True(t, a.Equal(b))
}

func TestErodeChangesHeightmap(t *testing.T) {
	g := slopedHeightmap(20, 20)
	before := g.Clone()

	Erode(g, testConfig(), 7, nil)

	assert.False(t, g.Equal(before))
}

func TestErodeRespectsSeaLevel(t *testing.T) {
	g := raster.NewFloatGrid(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			g.Set(x, y, 0.001*float64(20-x))
		}
	}
	before := g.Clone()
	sea := 0.5
	cfg := testConfig()
	cfg.SeaLevel = &sea

	require.NotPanics(t, func() {
		Erode(g, cfg, 3, nil)
	})
	// Every cell is below sea level, so each droplet stops after its first
	// move, before it erodes or deposits anything.
	assert.True(t, g.Equal(before))
}

func TestNewBrushWeightsSumToOne(t *testing.T) {
	b := newBrush(4)
	sum := 0.0
	for _, p := range b.points {
		sum += p.weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestNewBrushPointsWithinRadius(t *testing.T) {
	b := newBrush(4)
	for _, p := range b.points {
		assert.Less(t, p.dx*p.dx+p.dy*p.dy, 16)
	}
}

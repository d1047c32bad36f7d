package waters

import (
	"math"
	"math/rand/v2"

	"terrainforge/internal/raster"
)

// Source is one river's spawn point and flow intensity.
type Source struct {
	X, Y  int
	Power float64
}

const sourceAttempts = 100

// selectSources places cfg.Sources.Amount river sources, each chosen by up
// to 100 random attempts inside the resolved x/y ranges, accepted when the
// candidate cell's height falls in range, isn't a cliff, and lies far
// enough from every prior source. A source that exhausts its attempts
// falls back to the last coordinate tried rather than being skipped.
func selectSources(heightmap *raster.FloatGrid, cliffsGrid *raster.IntGrid, cfg Config, min, max float64, rng *rand.Rand) []Source {
	heightRange := resolveHeightRange(cfg.Sources.HeightRange, min, max)
	xRange := resolveSpatialRange(cfg.Sources.XRange, heightmap.W)
	yRange := resolveSpatialRange(cfg.Sources.YRange, heightmap.H)
	distanceSqr := cfg.Sources.Distance * cfg.Sources.Distance

	sources := make([]Source, 0, cfg.Sources.Amount)
	for i := 0; i < cfg.Sources.Amount; i++ {
		x, y := 0, 0
		for attempt := 0; attempt < sourceAttempts; attempt++ {
			x = clampInt(int(xRange[0]+rng.Float64()*(xRange[1]-xRange[0])), 0, heightmap.W-1)
			y = clampInt(int(yRange[0]+rng.Float64()*(yRange[1]-yRange[0])), 0, heightmap.H-1)

			h := heightmap.At(x, y)
			if h < heightRange[0] || h > heightRange[1] {
				continue
			}
			if cliffsGrid.At(x, y) != 0 {
				continue
			}
			if minSqrDistance(sources, x, y) < distanceSqr {
				continue
			}
			break
		}

		power := cfg.Sources.PowerRange[0] + rng.Float64()*(cfg.Sources.PowerRange[1]-cfg.Sources.PowerRange[0])
		sources = append(sources, Source{X: x, Y: y, Power: power})
	}
	return sources
}

func minSqrDistance(sources []Source, x, y int) float64 {
	min := math.Inf(1)
	for _, s := range sources {
		dx := float64(x - s.X)
		dy := float64(y - s.Y)
		d := dx*dx + dy*dy
		if d < min {
			min = d
		}
	}
	return min
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

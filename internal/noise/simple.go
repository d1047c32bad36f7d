package noise

import (
	"math/rand/v2"

	"terrainforge/internal/parallel"
	"terrainforge/internal/raster"
)

// offsetRange bounds the per-octave sample-space offsets drawn before
// synthesis: [-1000, 1000] on each axis, so octaves don't all sample the
// noise field around the origin.
const offsetRange = 1000.0

type octaveOffset struct {
	x, y float64
}

// drawOffsets seeds a PRNG from seed and draws one (x, y) offset pair per
// octave. The PRNG is local to this call: two calls with the same seed and
// octave count always produce the same offsets.
func drawOffsets(seed int64, octaves int) []octaveOffset {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	offsets := make([]octaveOffset, octaves)
	for i := range offsets {
		offsets[i] = octaveOffset{
			x: rng.Float64()*2*offsetRange - offsetRange,
			y: rng.Float64()*2*offsetRange - offsetRange,
		}
	}
	return offsets
}

// scaleClamp is the divisor that keeps per-octave sample coordinates in a
// resolution-independent range: min(w, h).
func scaleClamp(w, h int) float64 {
	if w < h {
		return float64(w)
	}
	return float64(h)
}

// GenerateSimple synthesizes a heightmap as a normalized sum of octaves of
// coherent noise, each octave offset into the sample space and weighted by
// persistence. This is the "simple" heightmap generator.
func GenerateSimple(cfg Config, w, h int, seed int64) (*raster.FloatGrid, error) {
	src := NewSource(seed)
	offsets := drawOffsets(seed, cfg.Octaves)
	clamp := scaleClamp(w, h)

	grid := raster.NewFloatGrid(w, h)
	sumOctaves(grid, src, offsets, cfg.Persistence, cfg.Lacunarity, cfg.InitialScale, clamp)
	normalize(grid)
	return grid, nil
}

// sumOctaves fills grid with the raw (unnormalized) octave sum for every
// cell. GenerateIsland does not go through here: it calls octaveSum per
// cell itself and applies its radial falloff to that value.
func sumOctaves(grid *raster.FloatGrid, src Source, offsets []octaveOffset, persistence, lacunarity, initialScale, clamp float64) {
	parallel.Rows(grid.H, func(fromY, toY int) {
		for y := fromY; y < toY; y++ {
			for x := 0; x < grid.W; x++ {
				grid.Set(x, y, octaveSum(src, offsets, persistence, lacunarity, initialScale, clamp, x, y))
			}
		}
	})
}

func octaveSum(src Source, offsets []octaveOffset, persistence, lacunarity, initialScale, clamp float64, x, y int) float64 {
	scale := initialScale
	weight := 1.0
	value := 0.0
	for _, off := range offsets {
		sx := off.x + scale*float64(x)/clamp
		sy := off.y + scale*float64(y)/clamp
		value += (src.Noise2D(sx, sy) + 1) * weight
		weight *= persistence
		scale *= lacunarity
	}
	return value
}

// normalize rescales grid in place to [0, 1]. A constant field (min == max)
// collapses to all zeros rather than dividing by zero.
func normalize(grid *raster.FloatGrid) {
	min, max := grid.MinMax()
	if min == max {
		for i := range grid.Data {
			grid.Data[i] = 0
		}
		return
	}
	span := max - min
	for i, v := range grid.Data {
		grid.Data[i] = (v - min) / span
	}
}

// Package resize upscales working-resolution rasters to final resolution
// and derives the waterfall mask.
package resize

import (
	"terrainforge/internal/cliffs"
	"terrainforge/internal/parallel"
	"terrainforge/internal/raster"
)

// Scale is the fixed upscale factor between working and final resolution.
const Scale = 2

// Upscale nearest-neighbor-scales in by Scale on each axis: out[x,y] =
// in[x/Scale, y/Scale].
func Upscale(in *raster.FloatGrid) *raster.FloatGrid {
	out := raster.NewFloatGrid(in.W*Scale, in.H*Scale)
	parallel.Rows(out.H, func(fromY, toY int) {
		for y := fromY; y < toY; y++ {
			for x := 0; x < out.W; x++ {
				out.Set(x, y, in.At(x/Scale, y/Scale))
			}
		}
	})
	return out
}

// Waterfalls marks every cell where a cliff coincides with flowing river,
// at final resolution. Cliffs must be recomputed from the upscaled
// stratums rather than upscaled directly: nearest-neighbor-scaling an 8-bit
// neighbor mask would produce nonsense once source and destination cells
// no longer line up 1:1.
func Waterfalls(finalCliffs *raster.IntGrid, finalRivermap *raster.FloatGrid) *raster.FloatGrid {
	out := raster.NewFloatGrid(finalCliffs.W, finalCliffs.H)
	parallel.Rows(out.H, func(fromY, toY int) {
		for y := fromY; y < toY; y++ {
			for x := 0; x < out.W; x++ {
				mask := finalCliffs.At(x, y)
				if mask > 0 && finalRivermap.At(x, y) > 0 {
					out.Set(x, y, float64(mask))
				}
			}
		}
	})
	return out
}

// RecomputeCliffs is a thin re-export of the cliffs package's calculation,
// named for this stage's role in the pipeline: cliffs at final resolution
// are derived fresh from the upscaled stratums, never upscaled themselves.
func RecomputeCliffs(finalStratums *raster.FloatGrid) *raster.IntGrid {
	return cliffs.Calculate(finalStratums)
}

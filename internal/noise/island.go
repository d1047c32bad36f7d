package noise

import (
	"math"

	"terrainforge/internal/raster"
)

// GenerateIsland layers a radial falloff onto the same octave-summed noise
// field GenerateSimple produces: cells outside a noise-perturbed radius
// are forced to zero, and cells inside it are eased toward the coastline
// and tapered linearly between a center radius and the coastline so the
// landmass reads as an island rather than a hard disc.
func GenerateIsland(cfg Config, w, h int, seed int64) (*raster.FloatGrid, error) {
	src := NewSource(seed)
	offsets := drawOffsets(seed, cfg.Octaves)
	clamp := scaleClamp(w, h)

	grid := raster.NewFloatGrid(w, h)

	cx := float64(w) / 2
	cy := float64(h) / 2
	radius := cfg.RadiusCoef * clamp / 2
	centerRadius := cfg.CenterRadiusCoef * clamp / 2
	amplitude := cfg.VariationAmplitudeCoef * clamp / 2

	centerX, centerY := -1, -1
	minCenterDist := math.Inf(1)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			d := math.Hypot(dx, dy)
			if d < minCenterDist {
				minCenterDist, centerX, centerY = d, x, y
			}

			raw := octaveSum(src, offsets, cfg.Persistence, cfg.Lacunarity, cfg.InitialScale, clamp, x, y)
			grid.Set(x, y, islandFalloff(src, raw, dx, dy, d, radius, centerRadius, amplitude, cfg.EasePower))
		}
	}

	if centerX >= 0 {
		grid.Set(centerX, centerY, n4Mean(grid, centerX, centerY))
	}

	normalize(grid)
	return grid, nil
}

// islandFalloff applies the radial ease/taper to a single cell's raw
// octave-sum value.
func islandFalloff(src Source, raw, dx, dy, d, radius, centerRadius, amplitude, easePower float64) float64 {
	if d > radius {
		return 0
	}

	angle := math.Asin(dy/d) * math.Acos(dx/d)
	variation := amplitude * (src.Noise2D(angle, 0) + 1) / 2

	if d > radius-variation {
		return 0
	}

	ease := 1 - math.Pow(d, easePower)/math.Pow(radius, easePower)

	taper := 1.0
	if d > centerRadius {
		taper = 1 - (d-centerRadius)/(radius-variation-centerRadius)
	}

	return raw * ease * taper
}

// n4Mean averages the four axis-adjacent neighbors of (x, y), skipping any
// that fall outside the grid. It exists because the exact map center has no
// well-defined angle for the radial falloff formula above (d == 0 makes the
// asin/acos division undefined), so the center cell takes the mean of its
// N4 neighborhood instead.
func n4Mean(grid *raster.FloatGrid, x, y int) float64 {
	type offset struct{ dx, dy int }
	neighbors := []offset{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	sum := 0.0
	count := 0
	for _, n := range neighbors {
		nx, ny := x+n.dx, y+n.dy
		if nx < 0 || nx >= grid.W || ny < 0 || ny >= grid.H {
			continue
		}
		sum += grid.At(nx, ny)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

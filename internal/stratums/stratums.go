// Package stratums quantizes a heightmap into discrete elevation bands and
// repairs the bands so their contour lines stay locally connected.
package stratums

import (
	"math"

	"terrainforge/internal/raster"
)

// n8Offsets matches the cliff mask's neighbor ordering: the first
// neighbor occupies the mask's MSB. Broken-line correction walks the same
// order for consistency with the cliffs package, though its own output
// doesn't depend on the order.
var n8Offsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

var n4Offsets = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Config carries the quantization granularity.
type Config struct {
	StepCount int `mapstructure:"step_count"`
}

// Calculate quantizes heightmap into step-sized bands, corrects broken
// contour lines top-down, then repairs orphan cells with no N4 neighbor at
// the same level. A heightmap with zero range (flatland) yields an
// all-zero result.
func Calculate(heightmap *raster.FloatGrid, cfg Config) *raster.FloatGrid {
	min, max := heightmap.MinMax()
	step := (max - min) / float64(cfg.StepCount)

	out := raster.NewFloatGrid(heightmap.W, heightmap.H)
	if step == 0 {
		return out
	}

	baseQuantize(heightmap, out, step)
	correctBrokenLines(out, step, cfg.StepCount)
	repairOrphans(out, step)
	return out
}

func baseQuantize(heightmap, out *raster.FloatGrid, step float64) {
	for y := 0; y < heightmap.H; y++ {
		for x := 0; x < heightmap.W; x++ {
			h := heightmap.At(x, y)
			out.Set(x, y, h-math.Mod(h, step))
		}
	}
}

// correctBrokenLines walks elevation bands from the highest down and, for
// every cell at the current band, lowers any N8 neighbor whose gradient
// exceeds one step: a cliff can only ever span exactly one band.
func correctBrokenLines(stratums *raster.FloatGrid, step float64, stepCount int) {
	_, highest := stratums.MinMax()
	filterRange := 0.1 * step

	for i := 0; i <= stepCount+1; i++ {
		filterHeight := highest - step*float64(i)
		for y := 0; y < stratums.H; y++ {
			for x := 0; x < stratums.W; x++ {
				current := stratums.At(x, y)
				if current <= filterHeight-filterRange || current >= filterHeight+filterRange {
					continue
				}
				for _, d := range n8Offsets {
					nx, ny := x+d[0], y+d[1]
					if !stratums.InBounds(nx, ny) {
						continue
					}
					gradient := current - stratums.At(nx, ny)
					if gradient > step {
						stratums.Set(nx, ny, current-step)
					}
				}
			}
		}
	}
}

// repairOrphans replaces any cell whose N4 neighborhood contains no cell at
// the same band with the band at or below the mean of its neighbors, removing
// single-cell islands the broken-line pass can leave behind.
func repairOrphans(stratums *raster.FloatGrid, step float64) {
	width, height := stratums.W, stratums.H
	original := stratums.Clone()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			current := original.At(x, y)
			hasMatch := false
			sum := 0.0
			count := 0
			for _, d := range n4Offsets {
				nx, ny := x+d[0], y+d[1]
				if !original.InBounds(nx, ny) {
					continue
				}
				n := original.At(nx, ny)
				if n == current {
					hasMatch = true
					break
				}
				sum += n
				count++
			}
			if hasMatch || count == 0 {
				continue
			}
			mean := sum / float64(count)
			stratums.Set(x, y, math.Floor(mean/step)*step)
		}
	}
}

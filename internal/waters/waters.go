package waters

import (
	"log/slog"
	"math/rand/v2"

	"terrainforge/internal/progress"
	"terrainforge/internal/raster"
)

// Generate routes and floods rivers across heightmap, using cliffsGrid to
// gate traversal and stratums to locate sea level during cleanup. It
// returns fresh rivermap and poolmap rasters; heightmap, cliffsGrid and
// stratums are read-only. log may be nil; when set, river advancement is
// reported every ~10,000 simulated steps across all sources.
func Generate(heightmap, stratums *raster.FloatGrid, cliffsGrid *raster.IntGrid, cfg Config, seed int64, log *slog.Logger) (rivermap, poolmap *raster.FloatGrid) {
	w, h := heightmap.W, heightmap.H
	rivermap = raster.NewFloatGrid(w, h)
	poolmap = raster.NewFloatGrid(w, h)
	if w == 0 || h == 0 {
		return rivermap, poolmap
	}
	drains := raster.NewCoordGrid(w, h)

	min, max := heightmap.MinMax()
	// A zero-range heightmap has no gradient for rivers to follow.
	if min == max {
		return rivermap, poolmap
	}
	seaLevel := min + cfg.SeaLevel*(max-min)

	rng := rand.New(rand.NewPCG(uint64(seed+2), uint64(seed+2)))
	sources := selectSources(heightmap, cliffsGrid, cfg, min, max, rng)

	prog := progress.New(log, "routing rivers", len(sources)*cfg.RiverLifetime, progress.DefaultCadence)
	step := 0
	for _, src := range sources {
		simulateRiver(heightmap, cliffsGrid, rivermap, poolmap, drains, cfg, seaLevel, src, prog, &step)
	}
	prog.Done()

	cleanup(stratums, rivermap, poolmap)
	return rivermap, poolmap
}

func simulateRiver(heightmap *raster.FloatGrid, cliffsGrid *raster.IntGrid, rivermap, poolmap *raster.FloatGrid, drains *raster.CoordGrid, cfg Config, seaLevel float64, src Source, prog *progress.Logger, step *int) {
	head := raster.Coord{X: src.X, Y: src.Y}

	for iter := 0; iter < cfg.RiverLifetime; iter++ {
		prog.Tick(*step)
		*step++
		path := route(heightmap, cliffsGrid, drains, seaLevel, cfg.Pooling.BasinTrim, head)
		if len(path) == 0 {
			return
		}
		for _, c := range path {
			rivermap.Add(c.X, c.Y, src.Power)
		}

		last := path[len(path)-1]
		if d := drains.At(last.X, last.Y); d.Valid() {
			head = d
		} else {
			head = last
		}

		if heightmap.At(head.X, head.Y) <= seaLevel {
			return
		}

		tooDeep := flood(heightmap, poolmap, cliffsGrid, drains, seaLevel, cfg.Pooling.LayerSize, cfg.Pooling.MaxDepth, head)
		if tooDeep {
			return
		}
		if heightmap.At(head.X, head.Y) <= seaLevel {
			return
		}

		if d := drains.At(head.X, head.Y); d.Valid() {
			head = d
		}
	}
}

// cleanup binarizes rivermap/poolmap and resolves sea cells: sea cells
// always read as pooled water with no river
// intensity, any pooled cell masks its river intensity, and any remaining
// river cell collapses to a flat intensity of 1.
func cleanup(stratums, rivermap, poolmap *raster.FloatGrid) {
	minStratum, _ := stratums.MinMax()
	w, h := rivermap.W, rivermap.H

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if stratums.At(x, y) <= minStratum {
				poolmap.Set(x, y, 1)
				rivermap.Set(x, y, 0)
				continue
			}
			if poolmap.At(x, y) > 0 {
				rivermap.Set(x, y, 0)
				poolmap.Set(x, y, 1)
				continue
			}
			if rivermap.At(x, y) > 0 {
				rivermap.Set(x, y, 1)
			}
		}
	}
}

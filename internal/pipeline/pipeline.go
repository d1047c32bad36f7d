package pipeline

import (
	"context"
	"log/slog"
	"time"

	"terrainforge/internal/checkpoint"
	"terrainforge/internal/cliffs"
	"terrainforge/internal/erosion"
	"terrainforge/internal/noise"
	"terrainforge/internal/params"
	"terrainforge/internal/raster"
	"terrainforge/internal/resize"
	"terrainforge/internal/stratums"
	"terrainforge/internal/waters"
)

// Run executes the seven generation stages in order over a single shared
// RawMap, consulting mgr before and after each one so a resumed run skips
// whatever the checkpoint already covers. ctx is only consulted between
// stages: the stages themselves are blocking and not individually
// cancellable.
func Run(ctx context.Context, p *params.Params, mgr *checkpoint.Manager, log *slog.Logger) (*raster.RawMap, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(discard{}, nil))
	}

	rm := mgr.InitData(p.Map.Width, p.Map.Height)

	stages := []struct {
		id   checkpoint.Stage
		name string
		run  func(*raster.RawMap) (*raster.RawMap, error)
	}{
		{StageHeightmap, "heightmap", func(rm *raster.RawMap) (*raster.RawMap, error) { return runHeightmap(rm, p, log) }},
		{StageErosion, "erosion", func(rm *raster.RawMap) (*raster.RawMap, error) { return runErosion(rm, p, log) }},
		{StageStratums, "stratums", func(rm *raster.RawMap) (*raster.RawMap, error) { return runStratums(rm, p, log) }},
		{StageCliffs, "cliffs", func(rm *raster.RawMap) (*raster.RawMap, error) { return runCliffs(rm, log) }},
		{StageWaters, "waters", func(rm *raster.RawMap) (*raster.RawMap, error) { return runWaters(rm, p, log) }},
		{StageResizing, "resizing", func(rm *raster.RawMap) (*raster.RawMap, error) { return runResizing(rm, log) }},
		{StageWaterfalls, "waterfalls", func(rm *raster.RawMap) (*raster.RawMap, error) { return runWaterfalls(rm, log) }},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := mgr.Step(s.id, func() (*raster.RawMap, error) { return s.run(rm) })
		if err != nil {
			return nil, err
		}
		rm = next
	}

	return rm, nil
}

func runHeightmap(rm *raster.RawMap, p *params.Params, log *slog.Logger) (*raster.RawMap, error) {
	start := time.Now()
	ww, wh := rm.WorkingWidth(), rm.WorkingHeight()

	grid, err := noise.Generate(p.HeightmapGeneration, ww, wh, p.Seed)
	if err != nil {
		return nil, err
	}
	rm.Heightmap = grid

	log.Info("stage complete", "stage", "heightmap", "width", ww, "height", wh, "elapsed_ms", time.Since(start).Milliseconds())
	return rm, nil
}

func runErosion(rm *raster.RawMap, p *params.Params, log *slog.Logger) (*raster.RawMap, error) {
	start := time.Now()
	erosion.Erode(rm.Heightmap, p.Erosion, p.Seed, log)
	log.Info("stage complete", "stage", "erosion", "droplets", p.Erosion.Droplets, "elapsed_ms", time.Since(start).Milliseconds())
	return rm, nil
}

func runStratums(rm *raster.RawMap, p *params.Params, log *slog.Logger) (*raster.RawMap, error) {
	start := time.Now()
	rm.Stratums = stratums.Calculate(rm.Heightmap, p.CliffMapping)
	log.Info("stage complete", "stage", "stratums", "step_count", p.CliffMapping.StepCount, "elapsed_ms", time.Since(start).Milliseconds())
	return rm, nil
}

func runCliffs(rm *raster.RawMap, log *slog.Logger) (*raster.RawMap, error) {
	start := time.Now()
	rm.Cliffs = cliffs.Calculate(rm.Stratums)
	log.Info("stage complete", "stage", "cliffs", "elapsed_ms", time.Since(start).Milliseconds())
	return rm, nil
}

func runWaters(rm *raster.RawMap, p *params.Params, log *slog.Logger) (*raster.RawMap, error) {
	start := time.Now()
	rivermap, poolmap := waters.Generate(rm.Heightmap, rm.Stratums, rm.Cliffs, p.WaterMapping, p.Seed, log)
	rm.Rivermap = rivermap
	rm.Poolmap = poolmap
	log.Info("stage complete", "stage", "waters", "sources", p.WaterMapping.Sources.Amount, "elapsed_ms", time.Since(start).Milliseconds())
	return rm, nil
}

// runResizing upscales stratums/rivermap/poolmap to final resolution and
// recomputes cliffs from the upscaled stratums: a cliff mask cannot be
// upscaled directly.
func runResizing(rm *raster.RawMap, log *slog.Logger) (*raster.RawMap, error) {
	start := time.Now()

	rm.Stratums = resize.Upscale(rm.Stratums)
	rm.Rivermap = resize.Upscale(rm.Rivermap)
	rm.Poolmap = resize.Upscale(rm.Poolmap)
	rm.Cliffs = resize.RecomputeCliffs(rm.Stratums)
	rm.Width = rm.Stratums.W
	rm.Height = rm.Stratums.H

	log.Info("stage complete", "stage", "resizing", "width", rm.Width, "height", rm.Height, "elapsed_ms", time.Since(start).Milliseconds())
	return rm, nil
}

func runWaterfalls(rm *raster.RawMap, log *slog.Logger) (*raster.RawMap, error) {
	start := time.Now()
	rm.Waterfallmap = resize.Waterfalls(rm.Cliffs, rm.Rivermap)
	log.Info("stage complete", "stage", "waterfalls", "elapsed_ms", time.Since(start).Milliseconds())
	return rm, nil
}

// discard is an io.Writer that drops everything, used so Run never holds a
// nil *slog.Logger internally even if a caller passes one.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

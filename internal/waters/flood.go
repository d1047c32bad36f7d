package waters

import (
	"math"

	"terrainforge/internal/raster"
)

// flood runs the rising-layer basin fill rooted at head: water rises one
// layer_size slice at a time, each layer's cells get their pool depth set,
// and flooding stops either when a drain (a lower escape route, or the
// sea) is found for the whole layer, or when any cell in the layer exceeds
// max_depth. It reports whether the basin overflowed without draining.
func flood(heightmap, poolmap *raster.FloatGrid, cliffsGrid *raster.IntGrid, drains *raster.CoordGrid, seaLevel, layerSize, maxDepth float64, head raster.Coord) bool {
	w, h := heightmap.W, heightmap.H
	top := heightmap.At(head.X, head.Y) + poolmap.At(head.X, head.Y)

	// The plane must be able to rise one full layer past the highest
	// terrain before the basin is declared drainless: a drain at the rim
	// height is only recognized once bottom exceeds it.
	_, maxHeight := heightmap.MinMax()
	maxLayers := int((maxHeight-top)/layerSize) + 3
	if maxLayers < 1 {
		maxLayers = 1
	}

	for layerIdx := 0; layerIdx < maxLayers; layerIdx++ {
		bottom := top
		top += layerSize

		tried := make([]bool, w*h)
		tried[head.Y*w+head.X] = true

		layer := []raster.Coord{head}
		drainFound := false
		drainHeight := math.Inf(1)
		var drainCoord raster.Coord
		tooDeep := false

		queue := []raster.Coord{head}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			for _, off := range n4Offsets {
				next := raster.Coord{X: cur.X + off[0], Y: cur.Y + off[1]}
				if next.X < 0 || next.X >= w || next.Y < 0 || next.Y >= h {
					continue
				}
				idx := next.Y*w + next.X
				if tried[idx] {
					continue
				}
				tried[idx] = true

				// The drain test comes before the cliff test: a cliff cell
				// can drain the pool even though it may never join a layer.
				nh := heightmap.At(next.X, next.Y) + poolmap.At(next.X, next.Y)
				if nh < bottom || heightmap.At(next.X, next.Y) <= seaLevel {
					if heightmap.At(next.X, next.Y) < drainHeight {
						drainHeight = heightmap.At(next.X, next.Y)
						drainCoord = next
						drainFound = true
					}
					continue
				}
				// Layer membership is judged on bare terrain height: a cell
				// already carrying pool water re-enters the layer so its
				// depth tracks the rising plane.
				if heightmap.At(next.X, next.Y) < top && cliffsGrid.At(next.X, next.Y) == 0 {
					layer = append(layer, next)
					queue = append(queue, next)
				}
			}
		}

		for _, c := range layer {
			depth := top - heightmap.At(c.X, c.Y)
			poolmap.Set(c.X, c.Y, depth)
			if depth > maxDepth {
				tooDeep = true
			}
		}

		if drainFound {
			for _, c := range layer {
				drains.Set(c.X, c.Y, drainCoord)
			}
			return false
		}
		if tooDeep {
			return true
		}
	}

	return true
}

// Package erosion simulates hydraulic erosion by dropping water droplets
// onto a heightmap and letting each one carve and deposit sediment as it
// rolls downhill.
package erosion

import "math"

// point is one weighted offset of a circular erosion brush, relative to
// the droplet's current cell.
type point struct {
	dx, dy int
	weight float64
}

// brush precomputes the circular, distance-weighted footprint erosion
// spreads over, normalized so its weights sum to 1. Built once per run and
// reused by every droplet.
type brush struct {
	points []point
}

func newBrush(radius int) brush {
	sqrRadius := radius * radius
	var points []point
	weightSum := 0.0

	for dy := -radius; dy < radius; dy++ {
		for dx := -radius; dx < radius; dx++ {
			sqrDist := dx*dx + dy*dy
			if sqrDist >= sqrRadius {
				continue
			}
			weight := 1 - math.Sqrt(float64(sqrDist))/float64(radius)
			weightSum += weight
			points = append(points, point{dx: dx, dy: dy, weight: weight})
		}
	}

	for i := range points {
		points[i].weight /= weightSum
	}

	return brush{points: points}
}

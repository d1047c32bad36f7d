package waters

import (
	"container/heap"
	"math"

	"terrainforge/internal/cliffs"
	"terrainforge/internal/raster"
)

var n4Offsets = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// frontierNode is one pending cell in the height-priority search: its
// height (the relaxation key), its insertion order (the tie-break), and
// the coordinate a river path would backtrack to if this node becomes part
// of the path.
type frontierNode struct {
	coord   raster.Coord
	pred    raster.Coord
	hasPred bool
	height  float64
	order   int
}

type frontierHeap []frontierNode

func (f frontierHeap) Len() int { return len(f) }
func (f frontierHeap) Less(i, j int) bool {
	if f[i].height != f[j].height {
		return f[i].height < f[j].height
	}
	return f[i].order < f[j].order
}
func (f frontierHeap) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontierHeap) Push(x interface{}) { *f = append(*f, x.(frontierNode)) }
func (f *frontierHeap) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// route runs a single height-priority search (relaxing on height rather
// than accumulated distance) from start toward the sea.
// It returns the cell path from start to whatever target it found:
// a sea cell if one was reached, or failing that the lowest non-cliff cell
// the search ever closed.
func route(heightmap *raster.FloatGrid, cliffsGrid *raster.IntGrid, drains *raster.CoordGrid, seaLevel, basinTrim float64, start raster.Coord) []raster.Coord {
	w, h := heightmap.W, heightmap.H
	tried := make([]bool, w*h)
	pred := map[raster.Coord]raster.Coord{}

	pq := &frontierHeap{}
	heap.Init(pq)
	order := 0

	push := func(c, from raster.Coord, hasFrom bool) {
		idx := c.Y*w + c.X
		if tried[idx] {
			return
		}
		tried[idx] = true
		heap.Push(pq, frontierNode{coord: c, pred: from, hasPred: hasFrom, height: heightmap.At(c.X, c.Y), order: order})
		order++
	}

	push(start, raster.Coord{}, false)

	var target raster.Coord
	targetFound := false
	lowestClosed := start
	lowestClosedHeight := math.Inf(1)

	for pq.Len() > 0 {
		n := heap.Pop(pq).(frontierNode)
		origin := n.coord
		if n.hasPred {
			pred[origin] = n.pred
		}

		cur := origin
		if d := drains.At(origin.X, origin.Y); d.Valid() {
			cur = d
		}

		mask := cliffsGrid.At(cur.X, cur.Y)
		if mask == 0 {
			height := heightmap.At(cur.X, cur.Y)
			if height < lowestClosedHeight {
				lowestClosedHeight = height
				lowestClosed = cur
			}

			for _, off := range n4Offsets {
				next := raster.Coord{X: cur.X + off[0], Y: cur.Y + off[1]}
				if !heightmap.InBounds(next.X, next.Y) {
					continue
				}
				nh := heightmap.At(next.X, next.Y)
				if nh <= seaLevel {
					target, targetFound = next, true
					pred[next] = origin
					goto done
				}
				if nh-heightmap.At(cur.X, cur.Y) >= basinTrim {
					continue
				}
				push(next, origin, true)
			}
			continue
		}

		dir, ok := cliffs.DirVector(mask)
		if !ok || dir.DX != 0 {
			continue
		}
		next := raster.Coord{X: cur.X, Y: cur.Y + dir.DY}
		if !heightmap.InBounds(next.X, next.Y) {
			continue
		}
		nh := heightmap.At(next.X, next.Y)
		if nh <= seaLevel {
			target, targetFound = next, true
			pred[next] = origin
			goto done
		}
		if nh-heightmap.At(cur.X, cur.Y) >= basinTrim {
			continue
		}
		push(next, origin, true)
	}

done:
	if !targetFound {
		target = lowestClosed
	}

	var path []raster.Coord
	cur := target
	for {
		path = append(path, cur)
		p, ok := pred[cur]
		if !ok {
			break
		}
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

package erosion

import "terrainforge/internal/raster"

// heightAndGradient is the bilinearly interpolated sample a droplet reads
// at its current (sub-cell) position: a height and the two components of
// the local gradient.
type heightAndGradient struct {
	height    float64
	gradientX float64
	gradientY float64
}

// sample bilinearly interpolates the height and gradient of grid at the
// continuous position (posX, posY), using the four corner nodes of the
// cell the position falls in: H[cx,cy], H[cx+1,cy], H[cx,cy+1],
// H[cx+1,cy+1]. posX/posY index columns first, matching the x-major
// addressing of RawMap grids.
func sample(grid *raster.FloatGrid, posX, posY float64) heightAndGradient {
	cx := int(posX)
	cy := int(posY)
	x := posX - float64(cx)
	y := posY - float64(cy)

	nw := grid.At(cx, cy)
	ne := grid.At(cx+1, cy)
	sw := grid.At(cx, cy+1)
	se := grid.At(cx+1, cy+1)

	return heightAndGradient{
		gradientX: (ne-nw)*(1-y) + (se-sw)*y,
		gradientY: (sw-nw)*(1-x) + (se-ne)*x,
		height:    nw*(1-x)*(1-y) + ne*x*(1-y) + sw*(1-x)*y + se*x*y,
	}
}

// depositAt bilinearly spreads amount across the four corner nodes of the
// cell a droplet occupies. Deposition, unlike erosion, isn't spread over a
// brush radius, so it can fill small pits exactly where the droplet stalls.
func depositAt(grid *raster.FloatGrid, cx, cy int, cellOffsetX, cellOffsetY, amount float64) {
	grid.Add(cx, cy, amount*(1-cellOffsetX)*(1-cellOffsetY))
	grid.Add(cx+1, cy, amount*cellOffsetX*(1-cellOffsetY))
	grid.Add(cx, cy+1, amount*(1-cellOffsetX)*cellOffsetY)
	grid.Add(cx+1, cy+1, amount*cellOffsetX*cellOffsetY)
}

package cliffs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terrainforge/internal/raster"
)

func TestCalculateFlatlandIsZero(t *testing.T) {
	g := raster.NewFloatGrid(4, 4)
	for i := range g.Data {
		g.Data[i] = 2
	}
	out := Calculate(g)
	for _, v := range out.Data {
		assert.Equal(t, 0, v)
	}
}

func TestCalculateSingleStepDown(t *testing.T) {
	g := raster.NewFloatGrid(3, 3)
	for i := range g.Data {
		g.Data[i] = 1
	}
	g.Set(1, 1, 2)

	out := Calculate(g)
	mask := out.At(1, 1)
	assert.Equal(t, 0xFF, mask)
}

func TestCalculateBorderHasNoOutOfBoundsNeighbors(t *testing.T) {
	g := raster.NewFloatGrid(2, 2)
	g.Set(0, 0, 1)
	g.Set(1, 0, 2)
	g.Set(0, 1, 1)
	g.Set(1, 1, 1)

	out := Calculate(g)
	assert.NotPanics(t, func() { _ = out.At(0, 0) })
	// (1,0) is higher than its three in-bounds neighbors (S, SW, W); the
	// five out-of-bounds directions contribute no bits.
	assert.Equal(t, 0b0000_1110, out.At(1, 0))
}

func TestDirVectorCardinalMasks(t *testing.T) {
	d, ok := DirVector(North)
	assert.True(t, ok)
	assert.Equal(t, Direction{0, -1}, d)

	d, ok = DirVector(East)
	assert.True(t, ok)
	assert.Equal(t, Direction{1, 0}, d)

	d, ok = DirVector(South)
	assert.True(t, ok)
	assert.Equal(t, Direction{0, 1}, d)

	d, ok = DirVector(West)
	assert.True(t, ok)
	assert.Equal(t, Direction{-1, 0}, d)
}

func TestDirVectorUnknownMask(t *testing.T) {
	_, ok := DirVector(0b1010_0101)
	assert.False(t, ok)

	_, ok = DirVector(0)
	assert.False(t, ok)
}

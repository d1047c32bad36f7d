package raster

import "testing"

import "github.com/stretchr/testify/assert"

func TestAreaScanOrder(t *testing.T) {
	a := NewArea(3, 2)
	var got [][2]int
	a.Each(func(x, y int) {
		got = append(got, [2]int{x, y})
	})
	want := [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	assert.Equal(t, want, got)
}

func TestOffsetedAreaPreservesScanOrder(t *testing.T) {
	a := OffsetedArea(2, 2, 10, 20)
	want := [][2]int{{10, 20}, {11, 20}, {10, 21}, {11, 21}}
	assert.Equal(t, want, a.Coordinates())
}

func TestAreaContains(t *testing.T) {
	a := NewArea(4, 4)
	assert.True(t, a.Contains(0, 0))
	assert.True(t, a.Contains(3, 3))
	assert.False(t, a.Contains(4, 0))
	assert.False(t, a.Contains(0, -1))
}

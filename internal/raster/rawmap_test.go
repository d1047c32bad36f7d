package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRawMapWorkingResolution(t *testing.T) {
	rm := NewRawMap(20, 11)
	assert.Equal(t, 10, rm.WorkingWidth())
	assert.Equal(t, 5, rm.WorkingHeight())
	assert.Equal(t, 10, rm.Heightmap.W)
	assert.Equal(t, 5, rm.Heightmap.H)
}

func TestRawMapRoundTrip(t *testing.T) {
	rm := NewRawMap(8, 8)
	rm.Heightmap.Set(1, 1, 0.75)
	rm.Cliffs.Set(2, 2, 0b0000_0001)
	rm.Rivermap.Set(0, 0, 1)

	arr := rm.ToArray()
	back := FromArray(arr)

	require.True(t, rm.Equal(back))
}

func TestRawMapEqualDetectsDifference(t *testing.T) {
	a := NewRawMap(4, 4)
	b := NewRawMap(4, 4)
	assert.True(t, a.Equal(b))
	b.Heightmap.Set(0, 0, 1)
	assert.False(t, a.Equal(b))
}

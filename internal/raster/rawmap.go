package raster

// RawMap owns the declared map dimensions and every raster layer shared by
// the generation stages. Stages are given exclusive access to a RawMap for
// the duration of their run and hand it back (see pipeline.Run) rather
// than sharing mutable state across goroutines.
type RawMap struct {
	// Width, Height are the user-declared final dimensions (params.map).
	Width, Height int

	Heightmap    *FloatGrid
	Stratums     *FloatGrid
	Cliffs       *IntGrid
	Rivermap     *FloatGrid
	Poolmap      *FloatGrid
	Waterfallmap *FloatGrid
}

// Source is a river origin: a coordinate and the power added to every river
// cell it seeds. Sources are produced by the waters stage but are not part
// of RawMap's persisted state.
type Source struct {
	X, Y  int
	Power float64
}

// NewRawMap constructs a RawMap with the working-resolution rasters
// zero-filled: working dimensions are floor(W/2) by floor(H/2), and
// noise/erosion/stratums/cliffs/waters all run at this resolution until
// the resize stage upscales to final resolution.
func NewRawMap(width, height int) *RawMap {
	ww, wh := WorkingDims(width, height)
	return &RawMap{
		Width:        width,
		Height:       height,
		Heightmap:    NewFloatGrid(ww, wh),
		Stratums:     NewFloatGrid(ww, wh),
		Cliffs:       NewIntGrid(ww, wh),
		Rivermap:     NewFloatGrid(ww, wh),
		Poolmap:      NewFloatGrid(ww, wh),
		Waterfallmap: NewFloatGrid(ww, wh),
	}
}

// WorkingDims returns (floor(W/2), floor(H/2)), the resolution every stage
// before resize operates at.
func WorkingDims(width, height int) (int, int) {
	return width / 2, height / 2
}

// WorkingWidth returns floor(Width/2).
func (r *RawMap) WorkingWidth() int { return r.Width / 2 }

// WorkingHeight returns floor(Height/2).
func (r *RawMap) WorkingHeight() int { return r.Height / 2 }

// Array is the byte-serializable projection of a RawMap: [W,H, heightmap,
// stratums, cliffs, rivermap, poolmap, waterfallmap]. Sources and any
// transient drains map are excluded; they are not part of a RawMap's
// persisted state.
type Array struct {
	Width, Height int
	Heightmap     *FloatGrid
	Stratums      *FloatGrid
	Cliffs        *IntGrid
	Rivermap      *FloatGrid
	Poolmap       *FloatGrid
	Waterfallmap  *FloatGrid
}

// ToArray serializes the RawMap into its array projection.
func (r *RawMap) ToArray() Array {
	return Array{
		Width:        r.Width,
		Height:       r.Height,
		Heightmap:    r.Heightmap.Clone(),
		Stratums:     r.Stratums.Clone(),
		Cliffs:       r.Cliffs.Clone(),
		Rivermap:     r.Rivermap.Clone(),
		Poolmap:      r.Poolmap.Clone(),
		Waterfallmap: r.Waterfallmap.Clone(),
	}
}

// FromArray reconstructs a RawMap from its array projection.
func FromArray(a Array) *RawMap {
	return &RawMap{
		Width:        a.Width,
		Height:       a.Height,
		Heightmap:    a.Heightmap.Clone(),
		Stratums:     a.Stratums.Clone(),
		Cliffs:       a.Cliffs.Clone(),
		Rivermap:     a.Rivermap.Clone(),
		Poolmap:      a.Poolmap.Clone(),
		Waterfallmap: a.Waterfallmap.Clone(),
	}
}

// Equal reports deep equality of dimensions and every raster.
func (r *RawMap) Equal(o *RawMap) bool {
	if o == nil || r.Width != o.Width || r.Height != o.Height {
		return false
	}
	return r.Heightmap.Equal(o.Heightmap) &&
		r.Stratums.Equal(o.Stratums) &&
		r.Cliffs.Equal(o.Cliffs) &&
		r.Rivermap.Equal(o.Rivermap) &&
		r.Poolmap.Equal(o.Poolmap) &&
		r.Waterfallmap.Equal(o.Waterfallmap)
}

// Package waters routes rivers across a heightmap by repeated height-priority
// search toward the sea, flooding basins the rivers can't escape, and
// recording the result as intensity rasters.
package waters

// Range is a two-element [min, max] bound. Positions and powers are drawn
// from [min, max); height_range is checked inclusively. Most Config ranges are
// resolved from a 0..1 coefficient into absolute map coordinates or
// heights before use; see resolveHeightRange/resolveSpatialRange.
type Range [2]float64

// SourcesConfig controls how many river sources are placed and where.
type SourcesConfig struct {
	Amount      int     `mapstructure:"amount"`
	Distance    float64 `mapstructure:"distance"`
	PowerRange  Range   `mapstructure:"power_range"`
	XRange      Range   `mapstructure:"x_range"`
	YRange      Range   `mapstructure:"y_range"`
	HeightRange Range   `mapstructure:"height_range"`
}

// PoolingConfig tunes the rising-layer basin flood.
type PoolingConfig struct {
	LayerSize float64 `mapstructure:"layer_size"`
	MaxDepth  float64 `mapstructure:"max_depth"`
	BasinTrim float64 `mapstructure:"basin_trim"`
}

// Config is the water_mapping block of the parameter document.
type Config struct {
	RiverLifetime int           `mapstructure:"river_lifetime"`
	SeaLevel      float64       `mapstructure:"sea_level"`
	Sources       SourcesConfig `mapstructure:"sources"`
	Pooling       PoolingConfig `mapstructure:"pooling"`
}

func resolveHeightRange(r Range, min, max float64) Range {
	span := max - min
	return Range{min + r[0]*span, min + r[1]*span}
}

func resolveSpatialRange(r Range, dim int) Range {
	return Range{r[0] * float64(dim), r[1] * float64(dim)}
}

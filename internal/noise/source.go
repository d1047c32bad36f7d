// Package noise synthesizes seeded, octave-summed coherent-noise
// heightmap fields. Generators are dispatched by a "type" tag (simple,
// island, ...), a closed set rather than runtime-loaded modules.
package noise

import "github.com/aquilax/go-perlin"

// Source produces coherent noise in approximately [-1,1] for a 2D sample
// point. It is deterministic for a given seed: the same seed must always
// produce the same sequence of samples.
type Source interface {
	Noise2D(x, y float64) float64
}

// perlinAlpha/perlinBeta/perlinOctaves tune the perlin library itself:
// alpha is persistence between the library's internal octaves, beta is
// the frequency multiplier, n is the library's own internal octave count.
// These are independent of the caller-supplied octaves/persistence/
// lacunarity in Config, which drive the outer octave-summation loop.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = int32(3)
)

// NewSource returns a Source backed by github.com/aquilax/go-perlin, seeded
// so that repeated calls with the same seed reproduce the same field.
func NewSource(seed int64) Source {
	return perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)
}

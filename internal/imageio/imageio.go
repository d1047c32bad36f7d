// Package imageio exports raster layers as PNG images: a 2D float raster
// linearly rescales to [0,255] greyscale; a 3-channel raster rescales all
// channels by one shared coefficient and encodes RGB.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"terrainforge/internal/raster"
)

// ErrInvalidRaster reports a raster that imageio cannot export. Export
// with the wrong dimensionality is fatal at export time and never
// corrupts prior pipeline state.
type ErrInvalidRaster struct {
	Reason string
}

func (e *ErrInvalidRaster) Error() string {
	return fmt.Sprintf("invalid raster for PNG export: %s", e.Reason)
}

// Greyscale linearly rescales grid to [0,255] and returns it as a
// greyscale RGB image (equal R, G, B per pixel). A constant field
// (min == max) exports as solid black rather than dividing by zero.
func Greyscale(grid *raster.FloatGrid) (*image.NRGBA, error) {
	if grid == nil || grid.W <= 0 || grid.H <= 0 {
		return nil, &ErrInvalidRaster{Reason: "empty raster"}
	}

	min, max := grid.MinMax()
	span := max - min

	img := image.NewNRGBA(image.Rect(0, 0, grid.W, grid.H))
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			var v float64
			if span != 0 {
				v = (grid.At(x, y) - min) / span * 255
			}
			gray := clampByte(v)
			img.SetNRGBA(x, y, color.NRGBA{R: gray, G: gray, B: gray, A: 255})
		}
	}
	return img, nil
}

// RGB encodes three co-registered float grids as an RGB image, rescaled by
// a single coefficient shared across all three channels so their relative
// magnitudes stay comparable.
func RGB(channels [3]*raster.FloatGrid) (*image.NRGBA, error) {
	for i, g := range channels {
		if g == nil {
			return nil, &ErrInvalidRaster{Reason: fmt.Sprintf("channel %d is nil", i)}
		}
	}
	w, h := channels[0].W, channels[0].H
	for i, g := range channels {
		if g.W != w || g.H != h {
			return nil, &ErrInvalidRaster{Reason: fmt.Sprintf("channel %d dimensions %dx%d do not match %dx%d", i, g.W, g.H, w, h)}
		}
	}
	if w <= 0 || h <= 0 {
		return nil, &ErrInvalidRaster{Reason: "empty raster"}
	}

	min, max := channels[0].MinMax()
	for _, g := range channels[1:] {
		gmin, gmax := g.MinMax()
		if gmin < min {
			min = gmin
		}
		if gmax > max {
			max = gmax
		}
	}
	span := max - min

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float64
			if span != 0 {
				r = (channels[0].At(x, y) - min) / span * 255
				g = (channels[1].At(x, y) - min) / span * 255
				b = (channels[2].At(x, y) - min) / span * 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: 255})
		}
	}
	return img, nil
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// WritePNG encodes img and writes it to path, creating parent directories
// as needed.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return encodePNG(f, img)
}

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Package canvas provides an in-memory drawing surface for frontends that
// have no GPU canvas of their own.
package canvas

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// Raster is a fixed size RGBA surface.
type Raster struct {
	mu  sync.RWMutex
	img *image.RGBA
	bg  *image.Uniform
}

// NewRaster returns a transparent raster of the given size.
func NewRaster(width, height int) *Raster {
	return &Raster{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		bg:  image.NewUniform(color.Transparent),
	}
}

// Clear repaints the raster with its background color.
func (r *Raster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	draw.Draw(r.img, r.img.Bounds(), r.bg, image.Point{}, draw.Src)
}

// FillBackground sets the background color and repaints with it.
func (r *Raster) FillBackground(c color.Color) {
	r.mu.Lock()
	r.bg = image.NewUniform(c)
	r.mu.Unlock()
	r.Clear()
}

// DrawImage composites the src part of img over dst, scaling when the two
// rectangles differ in size.
func (r *Raster) DrawImage(img image.Image, src, dst image.Rectangle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if src.Size() == dst.Size() {
		draw.Draw(r.img, dst, img, src.Min, draw.Over)
		return
	}
	draw.NearestNeighbor.Scale(r.img, dst, img, src, draw.Over, nil)
}

// Bounds is the size of the raster.
func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

// At returns the color of one pixel.
func (r *Raster) At(x, y int) color.Color {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.img.At(x, y)
}

// Snapshot copies the raster into dst, scaled to fit dst's bounds.
func (r *Raster) Snapshot(dst draw.Image) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), r.img, r.img.Bounds(), draw.Src, nil)
}

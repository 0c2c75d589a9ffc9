package breakout

import (
	"image"
	"image/color"

	"fortio.org/safecast"
)

// Position is a set of coordinates in 2-D plan
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions is the size of the play field or of a sprite
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Velocity is the per-frame displacement of the ball. The sign of each
// component is its direction.
type Velocity struct {
	SpeedX float64 `json:"speedX"`
	SpeedY float64 `json:"speedY"`
}

// Rect is an axis aligned box in field coordinates.
type Rect struct {
	Position
	Dimensions
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center of the box
func (r Rect) Center() Position {
	return Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Image returns the box rounded to whole pixels.
func (r Rect) Image() image.Rectangle {
	x := safecast.MustRound[int](r.X)
	y := safecast.MustRound[int](r.Y)
	return image.Rect(x, y,
		x+safecast.MustRound[int](r.Width), y+safecast.MustRound[int](r.Height))
}

// GetCenter returns the position that centers a box of size d inside field
func GetCenter(field, d Dimensions) Position {
	return Position{
		X: (field.Width - d.Width) / 2,
		Y: (field.Height - d.Height) / 2,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var (
	BgColor  = color.RGBA{0xf7, 0xf7, 0xf7, 0xff}
	ObjColor = color.RGBA{0x53, 0x53, 0x53, 0xff}
)

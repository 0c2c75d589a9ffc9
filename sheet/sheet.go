// Package sheet produces the sprite sheet of the game, either painted at
// start up or decoded from a PNG file laid out like breakout.Sprites.
package sheet

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/jtestard/go-breakout/breakout"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/math/fixed"
)

const (
	StartText    = "PRESS SPACE TO PLAY"
	GameOverText = "GAME OVER"

	dpi = 72
)

var (
	ink       = breakout.ObjColor
	brickFill = colornames.Firebrick
	highlight = colornames.Gainsboro
)

// Generate paints every sprite of breakout.Sprites into a new image.
func Generate() (*image.RGBA, error) {
	img := image.NewRGBA(image.Rectangle{Max: breakout.SheetSize()})

	fillRounded(img, rect(breakout.SpritePaddle), 6, ink)
	fillRounded(img, rect(breakout.SpriteBrick), 3, brickFill)
	strokeRect(img, rect(breakout.SpriteBrick).Inset(2), highlight)
	fillCircle(img, rect(breakout.SpriteBall), ink)
	drawRestart(img, rect(breakout.SpriteRestart), ink)

	if err := drawText(img, rect(breakout.SpriteGameOverText), GameOverText, 22, ink); err != nil {
		return nil, err
	}
	if err := drawText(img, rect(breakout.SpriteStartText), StartText, 16, ink); err != nil {
		return nil, err
	}
	return img, nil
}

func rect(name breakout.SpriteName) image.Rectangle {
	return breakout.Sprites[name].Source()
}

// NewFace returns the bold mono face used for every text of the game.
func NewFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

// drawText centers s inside r, clipped to r.
func drawText(img *image.RGBA, r image.Rectangle, s string, size float64, c color.Color) error {
	face, err := NewFace(size)
	if err != nil {
		return err
	}
	defer face.Close()

	dst, ok := img.SubImage(r).(*image.RGBA)
	if !ok {
		return fmt.Errorf("sub image of %T", img)
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	m := face.Metrics()
	width := d.MeasureString(s)
	height := m.Ascent + m.Descent
	d.Dot = fixed.Point26_6{
		X: fixed.I(r.Min.X) + (fixed.I(r.Dx())-width)/2,
		Y: fixed.I(r.Min.Y) + (fixed.I(r.Dy())-height)/2 + m.Ascent,
	}
	d.DrawString(s)
	return nil
}

func fillRounded(img *image.RGBA, r image.Rectangle, radius int, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	// knock the corners out
	for y := 0; y < radius; y++ {
		for x := 0; x < radius; x++ {
			dx, dy := float64(radius-x)-0.5, float64(radius-y)-0.5
			if math.Hypot(dx, dy) <= float64(radius) {
				continue
			}
			img.Set(r.Min.X+x, r.Min.Y+y, color.Transparent)
			img.Set(r.Max.X-1-x, r.Min.Y+y, color.Transparent)
			img.Set(r.Min.X+x, r.Max.Y-1-y, color.Transparent)
			img.Set(r.Max.X-1-x, r.Max.Y-1-y, color.Transparent)
		}
	}
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func fillCircle(img *image.RGBA, r image.Rectangle, c color.Color) {
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2
	radius := math.Min(float64(r.Dx()), float64(r.Dy())) / 2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy) <= radius {
				img.Set(x, y, c)
			}
		}
	}
}

// drawRestart paints a circular arrow: a ring open at the top right with
// an arrow head at the gap.
func drawRestart(img *image.RGBA, r image.Rectangle, c color.Color) {
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2
	outer := math.Min(float64(r.Dx()), float64(r.Dy()))/2 - 1
	inner := outer - 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			d := math.Hypot(dx, dy)
			angle := math.Atan2(-dy, dx)
			if d <= outer && d >= inner && (angle < 0.2 || angle > math.Pi/2) {
				img.Set(x, y, c)
			}
		}
	}
	// arrow head pointing down at the end of the ring
	tipX := int(cx + (outer+inner)/2)
	tipY := int(cy) + 3
	for row := 0; row < 5; row++ {
		for x := tipX - 4 + row; x <= tipX+4-row; x++ {
			if image.Pt(x, tipY-row).In(r) {
				img.Set(x, tipY-row, c)
			}
		}
	}
}

package breakout

import (
	"fmt"
	"image"
)

// SpriteName identifies one element of the sprite sheet.
type SpriteName string

const (
	SpritePaddle       SpriteName = "PADDLE"
	SpriteBall         SpriteName = "BALL"
	SpriteBrick        SpriteName = "BRICK"
	SpriteRestart      SpriteName = "RESTART"
	SpriteGameOverText SpriteName = "GAMEOVER_TEXT"
	SpriteStartText    SpriteName = "START_TEXT"
)

// SpriteRect is the offset of a sprite inside the sheet.
type SpriteRect struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SpriteDef pairs a sheet offset with the sprite's size.
type SpriteDef struct {
	Offset SpriteRect
	Size   Dimensions
}

// Source returns the rectangle of the sprite inside the sheet.
func (d SpriteDef) Source() image.Rectangle {
	return image.Rect(d.Offset.X, d.Offset.Y,
		d.Offset.X+int(d.Size.Width), d.Offset.Y+int(d.Size.Height))
}

// Sprites is the layout of the sprite sheet.
var Sprites = map[SpriteName]SpriteDef{
	SpriteBrick:        {Offset: SpriteRect{X: 2, Y: 2}, Size: Dimensions{Width: 118, Height: 24}},
	SpritePaddle:       {Offset: SpriteRect{X: 124, Y: 2}, Size: Dimensions{Width: 100, Height: 20}},
	SpriteBall:         {Offset: SpriteRect{X: 124, Y: 28}, Size: Dimensions{Width: 20, Height: 20}},
	SpriteRestart:      {Offset: SpriteRect{X: 156, Y: 28}, Size: Dimensions{Width: 30, Height: 28}},
	SpriteGameOverText: {Offset: SpriteRect{X: 124, Y: 60}, Size: Dimensions{Width: 190, Height: 24}},
	SpriteStartText:    {Offset: SpriteRect{X: 2, Y: 90}, Size: Dimensions{Width: 240, Height: 20}},
}

// SheetSize is the smallest image that holds every sprite.
func SheetSize() image.Point {
	var size image.Point
	for _, d := range Sprites {
		r := d.Source()
		if r.Max.X > size.X {
			size.X = r.Max.X
		}
		if r.Max.Y > size.Y {
			size.Y = r.Max.Y
		}
	}
	return size.Add(image.Pt(2, 2))
}

// Atlas is the loaded sprite sheet.
type Atlas struct {
	Image image.Image
}

// NewAtlas checks that img holds every sprite of the layout.
func NewAtlas(img image.Image) (*Atlas, error) {
	b := img.Bounds()
	for name, d := range Sprites {
		if !d.Source().Add(b.Min).In(b) {
			return nil, fmt.Errorf("sprite %s %v outside sheet %v", name, d.Source(), b)
		}
	}
	return &Atlas{Image: img}, nil
}

// RectFor returns the offset of the named sprite.
func (a *Atlas) RectFor(name SpriteName) SpriteRect {
	return Sprites[name].Offset
}

// Source returns the source rectangle of the named sprite, in image
// coordinates.
func (a *Atlas) Source(name SpriteName) image.Rectangle {
	return Sprites[name].Source().Add(a.Image.Bounds().Min)
}

package main

import (
	"image"
	"image/color"
	"math"

	"fortio.org/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jtestard/go-breakout/breakout"
)

// surface is the game canvas: an offscreen image the size of the field,
// shown scaled on screen.
type surface struct {
	canvas *ebiten.Image
	bg     color.Color
	sheets map[image.Image]*ebiten.Image
}

func newSurface(field breakout.Dimensions) *surface {
	return &surface{
		canvas: ebiten.NewImage(int(field.Width), int(field.Height)),
		bg:     color.Transparent,
		sheets: map[image.Image]*ebiten.Image{},
	}
}

func (s *surface) Clear() { s.canvas.Fill(s.bg) }

func (s *surface) FillBackground(c color.Color) {
	s.bg = c
	s.canvas.Fill(c)
}

func (s *surface) DrawImage(img image.Image, src, dst image.Rectangle) {
	sheet, ok := s.sheets[img]
	if !ok {
		sheet = ebiten.NewImageFromImage(img)
		s.sheets[img] = sheet
	}
	// NewImageFromImage rebases the image at the origin.
	src = src.Sub(img.Bounds().Min)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	s.canvas.DrawImage(sheet.SubImage(src).(*ebiten.Image), op)
}

// arcadeHost scales the canvas up to the window when the game starts,
// the way the page enters arcade mode once the start key is pressed. The
// window is maximized, or made fullscreen, for the duration.
type arcadeHost struct {
	fullscreen bool
	introTicks int

	outsideW, outsideH int
	from, target       float64
	scale              float64
	tick               int
	pending            bool
	onDone             func()

	monitorSize func() (int, int)
	grow        func(on bool)
}

func newArcadeHost(fullscreen bool, introTicks int) *arcadeHost {
	h := &arcadeHost{fullscreen: fullscreen, introTicks: introTicks, scale: 1, target: 1}
	h.monitorSize = func() (int, int) { return ebiten.Monitor().Size() }
	h.grow = func(on bool) {
		switch {
		case h.fullscreen:
			ebiten.SetFullscreen(on)
		case on:
			ebiten.MaximizeWindow()
		default:
			ebiten.RestoreWindow()
		}
	}
	return h
}

// WindowSize is the room the field gets once the window has grown: the
// monitor minus the caption line. The current window is used when the
// monitor size is unknown.
func (h *arcadeHost) WindowSize() (int, int) {
	w, hgt := h.monitorSize()
	if w <= 0 || hgt <= captionHeight {
		return h.outsideW, h.outsideH
	}
	return w, hgt - captionHeight
}

func (h *arcadeHost) SetArcadeMode(on bool, scale float64) {
	h.from = h.scale
	h.target = 1
	if on {
		h.target = scale
	}
	h.tick = 0
	h.pending = on
	h.grow(on)
	log.Infof("Arcade mode %v, scale %.2f", on, h.target)
}

// update advances the scale transition and reports its end.
func (h *arcadeHost) update() {
	if h.tick < h.introTicks {
		h.tick++
		t := float64(h.tick) / float64(h.introTicks)
		// ease out
		t = 1 - math.Pow(1-t, 3)
		h.scale = h.from + (h.target-h.from)*t
		return
	}
	h.scale = h.target
	if h.pending {
		h.pending = false
		if h.onDone != nil {
			h.onDone()
		}
	}
}

// layout records the outside size, the equivalent of the page's inner size.
func (h *arcadeHost) layout(w, hgt int) {
	h.outsideW, h.outsideH = w, hgt
}

// drawScale is the scale the field is drawn at in the current window. A
// maximized window loses some room to decorations, so the animated scale
// is capped to what fits, never below 1.
func (h *arcadeHost) drawScale(field breakout.Dimensions) float64 {
	fit := math.Min(float64(h.outsideW)/field.Width, float64(h.outsideH)/field.Height)
	return math.Max(1, math.Min(h.scale, fit))
}

var keymap = map[breakout.KeyCode]ebiten.Key{
	breakout.KeySpace: ebiten.KeySpace,
	breakout.KeyLeft:  ebiten.KeyArrowLeft,
	breakout.KeyRight: ebiten.KeyArrowRight,
	breakout.KeyA:     ebiten.KeyA,
	breakout.KeyD:     ebiten.KeyD,
}

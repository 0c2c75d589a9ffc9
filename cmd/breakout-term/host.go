package main

import (
	"math"

	"fortio.org/log"
	"fortio.org/safecast"
	"github.com/gdamore/tcell/v2"
	"github.com/jtestard/go-breakout/breakout"
)

// A cell is two half block pixels high; cellW by cellH field pixels fill
// one cell at scale 1.
const (
	cellW = 8
	cellH = 16
)

// termHost places the field on the screen. In arcade mode the field is
// scaled to the terminal.
type termHost struct {
	screen  tcell.Screen
	field   breakout.Dimensions
	scale   float64
	pending bool
}

func (h *termHost) WindowSize() (int, int) {
	if h.screen == nil {
		return 0, 0
	}
	w, hgt := h.screen.Size()
	return w * cellW, (hgt - 1) * cellH
}

func (h *termHost) SetArcadeMode(on bool, scale float64) {
	h.scale = 1
	if on {
		h.scale = scale
	}
	h.pending = on
	log.Infof("Arcade mode %v, scale %.2f", on, h.scale)
}

// update completes the arcade mode switch on the tick after it was asked
// for; terminals have no transition to wait for.
func (h *termHost) update(g *breakout.Game) {
	if h.pending {
		h.pending = false
		g.OnIntroComplete()
	}
}

// viewport returns the cell rectangle the field is drawn in, centered
// above the caption line.
func (h *termHost) viewport() (x0, y0, cols, rows int) {
	if h.screen == nil {
		return 0, 0, 0, 0
	}
	sw, sh := h.screen.Size()
	sh--
	cols = safecast.MustRound[int](h.field.Width / cellW * h.scale)
	rows = safecast.MustRound[int](h.field.Height / cellH * h.scale)
	cols = int(math.Min(float64(cols), float64(sw)))
	rows = int(math.Min(float64(rows), float64(sh)))
	return (sw - cols) / 2, (sh - rows) / 2, cols, rows
}

package breakout

import (
	"image"
	"image/color"
)

// Surface is the drawing target of a game, sized once to the field.
type Surface interface {
	Clear()
	FillBackground(c color.Color)
	DrawImage(img image.Image, src, dst image.Rectangle)
}

// Host is the window or terminal the game is mounted in.
type Host interface {
	// WindowSize is the size available to the game, in pixels.
	WindowSize() (width, height int)
	// SetArcadeMode switches the scaled presentation on or off. When
	// switching on, the host must call Game.OnIntroComplete once its
	// transition has finished.
	SetArcadeMode(on bool, scale float64)
}

// ImageProvider delivers the sprite sheet. Done is closed once Image or Err
// is available.
type ImageProvider interface {
	Done() <-chan struct{}
	Image() image.Image
	Err() error
}

// Effect names a sound cue.
type Effect int

const (
	EffectStart Effect = iota
	EffectWall
	EffectPaddle
	EffectDrop
)

func (e Effect) String() string {
	switch e {
	case EffectStart:
		return "start"
	case EffectWall:
		return "wall"
	case EffectPaddle:
		return "paddle"
	case EffectDrop:
		return "drop"
	}
	return "unknown"
}

// Sounder plays sound cues. Play must not block.
type Sounder interface {
	Play(e Effect)
}

type silent struct{}

func (silent) Play(Effect) {}

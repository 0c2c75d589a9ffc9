package breakout

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultWidth              = 600
	DefaultHeight             = 400
	DefaultPaddleBottomMargin = 20
	DefaultPaddleStep         = 6
	DefaultBallSpeedX         = 2.0
	DefaultBallSpeedY         = -2.0
	defaultKeyQueueLen        = 8
	defaultArcadeMinimumScale = 1.0
)

// Config holds the tunables of a game session.
type Config struct {
	Field              Dimensions
	PaddleBottomMargin float64
	PaddleStep         float64
	BallVelocity       Velocity
	Background         color.Color
	Bindings           Bindings
}

// DefaultConfig returns the settings of the classic game: a 600x400 field,
// ball launched up and to the right.
func DefaultConfig() Config {
	return Config{
		Field:              Dimensions{Width: DefaultWidth, Height: DefaultHeight},
		PaddleBottomMargin: DefaultPaddleBottomMargin,
		PaddleStep:         DefaultPaddleStep,
		BallVelocity:       Velocity{SpeedX: DefaultBallSpeedX, SpeedY: DefaultBallSpeedY},
		Background:         BgColor,
		Bindings:           DefaultBindings(),
	}
}

// Validate checks that the field can hold every sprite and that the ball
// actually moves.
func (c Config) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"field width", c.Field.Width},
		{"field height", c.Field.Height},
		{"paddle margin", c.PaddleBottomMargin},
		{"paddle step", c.PaddleStep},
		{"ball speed x", c.BallVelocity.SpeedX},
		{"ball speed y", c.BallVelocity.SpeedY},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidConfig, v.name, v.val)
		}
	}
	if c.Field.Width < Sprites[SpritePaddle].Size.Width || c.Field.Height < Sprites[SpritePaddle].Size.Height+c.PaddleBottomMargin {
		return fmt.Errorf("%w: field %vx%v too small for the paddle", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	}
	if c.Field.Width < Sprites[SpriteBall].Size.Width || c.Field.Height < Sprites[SpriteBall].Size.Height {
		return fmt.Errorf("%w: field %vx%v too small for the ball", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	}
	if c.PaddleBottomMargin < 0 {
		return fmt.Errorf("%w: negative paddle margin %v", ErrInvalidConfig, c.PaddleBottomMargin)
	}
	if c.PaddleStep <= 0 {
		return fmt.Errorf("%w: paddle step must be positive, got %v", ErrInvalidConfig, c.PaddleStep)
	}
	if c.BallVelocity.SpeedX == 0 && c.BallVelocity.SpeedY == 0 {
		return fmt.Errorf("%w: ball velocity is zero", ErrInvalidConfig)
	}
	if len(c.Bindings.Start) == 0 {
		return fmt.Errorf("%w: no start key bound", ErrInvalidConfig)
	}
	return nil
}

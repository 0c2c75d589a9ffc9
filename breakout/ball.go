package breakout

import "math"

// Ball is the bouncing ball. It bounces off the side walls and the ceiling
// and drops through the floor.
type Ball struct {
	Position
	Velocity
	Size Dimensions

	field    Dimensions
	start    Position
	startVel Velocity
	dropped  bool
}

// NewBall places a ball of the given size at the center of field.
func NewBall(field, size Dimensions, v Velocity) *Ball {
	b := &Ball{
		Size:     size,
		field:    field,
		start:    GetCenter(field, size),
		startVel: v,
	}
	b.Reset()
	return b
}

// Update moves the ball one frame. It returns true on the frame the ball
// falls through the floor, and false on every other frame.
func (b *Ball) Update() bool {
	if b.dropped {
		return false
	}
	b.X += b.SpeedX
	b.Y += b.SpeedY

	maxX := b.field.Width - b.Size.Width
	if b.X <= 0 {
		b.X = 0
		b.SpeedX = math.Abs(b.SpeedX)
	} else if b.X >= maxX {
		b.X = maxX
		b.SpeedX = -math.Abs(b.SpeedX)
	}
	if b.Y <= 0 {
		b.Y = 0
		b.SpeedY = math.Abs(b.SpeedY)
	}

	if b.Y+b.Size.Height > b.field.Height {
		b.dropped = true
		return true
	}
	return false
}

// Dropped reports whether the ball has fallen through the floor.
func (b *Ball) Dropped() bool { return b.dropped }

// Reset puts the ball back where it was built, with its launch velocity.
func (b *Ball) Reset() {
	b.Position = b.start
	b.Velocity = b.startVel
	b.dropped = false
}

// Bounds is the bounding box of the ball
func (b *Ball) Bounds() Rect {
	return Rect{Position: b.Position, Dimensions: b.Size}
}

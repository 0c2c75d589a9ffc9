package breakout

// Paddle is the player's bat. It only moves horizontally.
type Paddle struct {
	Position
	Size Dimensions
	Step float64

	field Dimensions
}

// NewPaddle centers a paddle horizontally, margin above the bottom of field.
func NewPaddle(field, size Dimensions, margin, step float64) *Paddle {
	return &Paddle{
		Position: Position{
			X: (field.Width - size.Width) / 2,
			Y: field.Height - margin - size.Height,
		},
		Size:  size,
		Step:  step,
		field: field,
	}
}

// Update moves the paddle one step left or right when moving is set, and
// keeps it inside the field.
func (p *Paddle) Update(moving, left bool) {
	if !moving {
		return
	}
	if left {
		p.X -= p.Step
	} else {
		p.X += p.Step
	}
	p.X = clamp(p.X, 0, p.field.Width-p.Size.Width)
}

// Bounds is the bounding box of the paddle
func (p *Paddle) Bounds() Rect {
	return Rect{Position: p.Position, Dimensions: p.Size}
}

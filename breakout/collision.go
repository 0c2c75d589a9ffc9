package breakout

import "math"

// Collision classifies the contact between the ball and the paddle.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionTop
	CollisionSide
)

func (c Collision) String() string {
	switch c {
	case CollisionTop:
		return "top"
	case CollisionSide:
		return "side"
	}
	return "none"
}

// CheckCollision tells whether ball overlaps paddle and, if so, whether it
// landed on the paddle's upper surface or hit one of its ends.
func CheckCollision(ball, paddle Rect) Collision {
	overlapX := math.Min(ball.Right(), paddle.Right()) - math.Max(ball.Left(), paddle.Left())
	overlapY := math.Min(ball.Bottom(), paddle.Bottom()) - math.Max(ball.Top(), paddle.Top())
	if overlapX <= 0 || overlapY <= 0 {
		return CollisionNone
	}
	if overlapY < overlapX && ball.Center().Y < paddle.Center().Y {
		return CollisionTop
	}
	return CollisionSide
}

// approaching reports whether the last velocity step moved the ball's
// center down toward the paddle, comparing its offset from the paddle's
// center before and after the step.
func approaching(ball Rect, v Velocity, paddle Rect) bool {
	now := ball.Center().Y - paddle.Center().Y
	before := ball.Center().Y - v.SpeedY - paddle.Center().Y
	return now > before
}

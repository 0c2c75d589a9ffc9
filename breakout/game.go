package breakout

import (
	"errors"
	"fmt"
	"image"
	"math"

	"fortio.org/log"
)

// Game is the structure of the game state
type Game struct {
	cfg      Config
	surface  Surface
	host     Host
	sounder  Sounder
	provider ImageProvider

	state   stateMachine
	frames  FrameQueue
	frameID FrameID
	keys    *KeyQueue

	atlas  *Atlas
	paddle *Paddle
	ball   *Ball
	panel  *Panel

	ready          bool
	focusTracking  bool
	providerFailed bool
}

// Option customizes a Game.
type Option func(*Game)

// WithSounder plays sound cues through s.
func WithSounder(s Sounder) Option {
	return func(g *Game) {
		if s != nil {
			g.sounder = s
		}
	}
}

// WithImageProvider makes Tick initialize the game once p has delivered the
// sprite sheet.
func WithImageProvider(p ImageProvider) Option {
	return func(g *Game) { g.provider = p }
}

// NewGame creates a game drawing on surface and mounted in host. The game
// stays idle until its sprite sheet is available, see Init and
// WithImageProvider.
func NewGame(cfg Config, surface Surface, host Host, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if surface == nil || host == nil {
		return nil, errors.New("breakout: surface and host are required")
	}
	g := &Game{
		cfg:     cfg,
		surface: surface,
		host:    host,
		sounder: silent{},
		keys:    NewKeyQueue(defaultKeyQueueLen),
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Init builds the actors from the sprite sheet and shows the start prompt.
func (g *Game) Init(sheet image.Image) error {
	if g.ready {
		return nil
	}
	atlas, err := NewAtlas(sheet)
	if err != nil {
		return fmt.Errorf("breakout: %w", err)
	}
	g.atlas = atlas
	g.paddle = NewPaddle(g.cfg.Field, Sprites[SpritePaddle].Size, g.cfg.PaddleBottomMargin, g.cfg.PaddleStep)
	g.ball = NewBall(g.cfg.Field, Sprites[SpriteBall].Size, g.cfg.BallVelocity)
	g.panel = NewPanel(g.surface, atlas, g.cfg.Field)

	g.surface.FillBackground(g.cfg.Background)
	g.drawActors()
	g.panel.Draw(false)
	g.ready = true
	log.Infof("Game ready, field %vx%v", g.cfg.Field.Width, g.cfg.Field.Height)
	return nil
}

// Tick is called once per display refresh. It finishes initialization when
// the sprite sheet arrives and runs the pending frame, if any.
func (g *Game) Tick() {
	if !g.ready {
		g.awaitSheet()
		return
	}
	g.frames.Run()
}

func (g *Game) awaitSheet() {
	if g.provider == nil || g.providerFailed {
		return
	}
	select {
	case <-g.provider.Done():
	default:
		return
	}
	if err := g.provider.Err(); err != nil {
		log.Errf("Sprite sheet unavailable: %v", err)
		g.providerFailed = true
		return
	}
	if err := g.Init(g.provider.Image()); err != nil {
		log.Errf("Init failed: %v", err)
		g.providerFailed = true
	}
}

// State returns the current game state.
func (g *Game) State() GameState { return g.state.State() }

// Ready reports whether the sprite sheet has been loaded.
func (g *Game) Ready() bool { return g.ready }

// Ball returns the ball, nil before Init.
func (g *Game) Ball() *Ball { return g.ball }

// Paddle returns the paddle, nil before Init.
func (g *Game) Paddle() *Paddle { return g.paddle }

// FramePending reports whether an update is scheduled for the next Tick.
func (g *Game) FramePending() bool { return g.frames.Pending() }

// OnKeyDown handles a key press.
func (g *Game) OnKeyDown(code KeyCode) {
	if !g.ready {
		return
	}
	switch g.State() {
	case StateIdle:
		if g.cfg.Bindings.Start[code] {
			g.playIntro()
		}
	case StatePlaying:
		if g.keys.Push(code) {
			log.LogVf("Key %d now steers", code)
		}
	}
}

// OnKeyUp handles a key release.
func (g *Game) OnKeyUp(code KeyCode) {
	if !g.ready {
		return
	}
	g.keys.Release(code)
	if g.State() == StateDropped && g.cfg.Bindings.Start[code] {
		g.restart()
	}
}

// OnIntroComplete is the host's signal that the arcade mode transition is
// over. Play starts and focus changes are honored from now on.
func (g *Game) OnIntroComplete() {
	if !g.fire(TriggerIntroDone) {
		return
	}
	g.focusTracking = true
	g.requestFrame()
}

// OnBlur pauses the game when the window loses focus.
func (g *Game) OnBlur() {
	if !g.focusTracking || !g.fire(TriggerBlur) {
		return
	}
	g.frames.Cancel(g.frameID)
	g.frameID = 0
}

// OnFocus resumes a paused game.
func (g *Game) OnFocus() {
	if !g.focusTracking || !g.fire(TriggerFocus) {
		return
	}
	g.requestFrame()
}

func (g *Game) fire(t Trigger) bool {
	from := g.State()
	to, err := g.state.fire(t)
	if err != nil {
		log.Debugf("Ignoring %v", err)
		return false
	}
	log.Infof("State %s -> %s (%s)", from, to, t)
	return true
}

func (g *Game) playIntro() {
	if !g.fire(TriggerStart) {
		return
	}
	g.sounder.Play(EffectStart)
	g.host.SetArcadeMode(true, g.arcadeScale())
}

// arcadeScale is the largest scale at which the field still fits the
// window, never below 1.
func (g *Game) arcadeScale() float64 {
	w, h := g.host.WindowSize()
	scale := math.Min(float64(w)/g.cfg.Field.Width, float64(h)/g.cfg.Field.Height)
	return math.Max(defaultArcadeMinimumScale, scale)
}

func (g *Game) requestFrame() {
	g.frameID = g.frames.Request(g.update)
}

// update is the per-frame step: move the ball and the paddle, bounce the
// ball off the paddle, draw, and schedule the next frame unless the ball
// dropped.
func (g *Game) update() {
	if g.State() != StatePlaying {
		return
	}
	g.surface.Clear()

	moving, left := g.direction()
	before := g.ball.Velocity
	dropped := g.ball.Update()
	if !dropped && (math.Signbit(before.SpeedX) != math.Signbit(g.ball.SpeedX) ||
		math.Signbit(before.SpeedY) != math.Signbit(g.ball.SpeedY)) {
		g.sounder.Play(EffectWall)
	}
	g.paddle.Update(moving, left)
	if !dropped {
		g.bounce(before)
	}
	g.drawActors()

	if dropped {
		g.gameOver()
		return
	}
	g.requestFrame()
}

// direction reads the front key of the queue.
func (g *Game) direction() (moving, left bool) {
	code, ok := g.keys.Front()
	if !ok {
		return false, false
	}
	left = g.cfg.Bindings.Left[code]
	return left || g.cfg.Bindings.Right[code], left
}

// bounce applies the paddle collision response. The ball is only turned
// around when its last step brought it closer to the paddle, so a ball
// still overlapping after a bounce is not flipped back.
func (g *Game) bounce(before Velocity) {
	ball, paddle := g.ball.Bounds(), g.paddle.Bounds()
	c := CheckCollision(ball, paddle)
	if c == CollisionNone || !approaching(ball, g.ball.Velocity, paddle) {
		return
	}
	switch c {
	case CollisionTop:
		g.ball.SpeedY = -g.ball.SpeedY
	case CollisionSide:
		g.ball.SpeedX = -g.ball.SpeedX
		g.ball.SpeedY = -g.ball.SpeedY
	}
	log.LogVf("Paddle hit %s at %+v, velocity %+v -> %+v", c, g.ball.Position, before, g.ball.Velocity)
	g.sounder.Play(EffectPaddle)
}

func (g *Game) drawActors() {
	g.surface.DrawImage(g.atlas.Image, g.atlas.Source(SpriteBall), g.ball.Bounds().Image())
	g.surface.DrawImage(g.atlas.Image, g.atlas.Source(SpritePaddle), g.paddle.Bounds().Image())
}

func (g *Game) gameOver() {
	if !g.fire(TriggerDrop) {
		return
	}
	g.frames.Cancel(g.frameID)
	g.frameID = 0
	g.panel.Draw(true)
	g.sounder.Play(EffectDrop)
}

func (g *Game) restart() {
	if !g.fire(TriggerRestart) {
		return
	}
	g.ball.Reset()
	g.surface.Clear()
	g.drawActors()
	g.sounder.Play(EffectStart)
	g.requestFrame()
}

package breakout

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

type recordingSurface struct {
	clears int
	fills  int
	draws  []image.Rectangle
}

func (s *recordingSurface) Clear()                     { s.clears++ }
func (s *recordingSurface) FillBackground(color.Color) { s.fills++ }
func (s *recordingSurface) DrawImage(_ image.Image, src, _ image.Rectangle) {
	s.draws = append(s.draws, src)
}

type fakeHost struct {
	w, h   int
	scales []float64
}

func (h *fakeHost) WindowSize() (int, int) { return h.w, h.h }
func (h *fakeHost) SetArcadeMode(on bool, scale float64) {
	if on {
		h.scales = append(h.scales, scale)
	}
}

type recordingSounder struct {
	played []Effect
}

func (r *recordingSounder) Play(e Effect) { r.played = append(r.played, e) }

func (r *recordingSounder) count(e Effect) int {
	n := 0
	for _, p := range r.played {
		if p == e {
			n++
		}
	}
	return n
}

type fakeProvider struct {
	done chan struct{}
	img  image.Image
	err  error
}

func (p *fakeProvider) Done() <-chan struct{} { return p.done }
func (p *fakeProvider) Image() image.Image    { return p.img }
func (p *fakeProvider) Err() error            { return p.err }

func testSheet() image.Image {
	return image.NewRGBA(image.Rectangle{Max: SheetSize()})
}

func newTestGame(t *testing.T, opts ...Option) (*Game, *recordingSurface, *fakeHost) {
	t.Helper()
	s := &recordingSurface{}
	h := &fakeHost{w: 1200, h: 900}
	g, err := NewGame(DefaultConfig(), s, h, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Init(testSheet()); err != nil {
		t.Fatal(err)
	}
	return g, s, h
}

// newPlayingGame returns a game past the intro.
func newPlayingGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, _, _ := newTestGame(t, opts...)
	g.OnKeyDown(KeySpace)
	g.OnKeyUp(KeySpace)
	g.OnIntroComplete()
	if g.State() != StatePlaying {
		t.Fatalf("state = %s, want playing", g.State())
	}
	return g
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PaddleStep = 0
	_, err := NewGame(cfg, &recordingSurface{}, &fakeHost{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewGame(DefaultConfig(), nil, &fakeHost{}); err == nil {
		t.Error("missing surface should fail")
	}
	cfg = DefaultConfig()
	cfg.BallVelocity = Velocity{SpeedX: math.Inf(1), SpeedY: math.Inf(1)}
	if _, err := NewGame(cfg, &recordingSurface{}, &fakeHost{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("infinite speed: err = %v, want ErrInvalidConfig", err)
	}
}

func TestInitShowsStartPanel(t *testing.T) {
	_, s, _ := newTestGame(t)
	if s.fills != 1 {
		t.Errorf("background filled %d times, want 1", s.fills)
	}
	want := []image.Rectangle{
		Sprites[SpriteBall].Source(),
		Sprites[SpritePaddle].Source(),
		Sprites[SpriteStartText].Source(),
	}
	if len(s.draws) != len(want) {
		t.Fatalf("draws = %v, want %v", s.draws, want)
	}
	for i := range want {
		if s.draws[i] != want[i] {
			t.Errorf("draw %d = %v, want %v", i, s.draws[i], want[i])
		}
	}
}

func TestInitRejectsSmallSheet(t *testing.T) {
	g, err := NewGame(DefaultConfig(), &recordingSurface{}, &fakeHost{})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Init(image.NewRGBA(image.Rect(0, 0, 50, 50))); err == nil {
		t.Error("sheet without room for the sprites should be rejected")
	}
	if g.Ready() {
		t.Error("game should not be ready")
	}
}

func TestKeysIgnoredBeforeInit(t *testing.T) {
	g, err := NewGame(DefaultConfig(), &recordingSurface{}, &fakeHost{})
	if err != nil {
		t.Fatal(err)
	}
	g.OnKeyDown(KeySpace)
	if g.State() != StateIdle {
		t.Errorf("state = %s, want idle", g.State())
	}
}

func TestTickWaitsForImageProvider(t *testing.T) {
	p := &fakeProvider{done: make(chan struct{}), img: testSheet()}
	g, err := NewGame(DefaultConfig(), &recordingSurface{}, &fakeHost{}, WithImageProvider(p))
	if err != nil {
		t.Fatal(err)
	}
	g.Tick()
	if g.Ready() {
		t.Fatal("ready before the sheet loaded")
	}
	close(p.done)
	g.Tick()
	if !g.Ready() {
		t.Fatal("not ready after the sheet loaded")
	}
}

func TestTickKeepsWaitingOnProviderError(t *testing.T) {
	p := &fakeProvider{done: make(chan struct{}), err: errors.New("boom")}
	close(p.done)
	g, err := NewGame(DefaultConfig(), &recordingSurface{}, &fakeHost{}, WithImageProvider(p))
	if err != nil {
		t.Fatal(err)
	}
	g.Tick()
	g.Tick()
	if g.Ready() {
		t.Error("game must not start without a sheet")
	}
}

func TestStartPlaysIntroOnce(t *testing.T) {
	snd := &recordingSounder{}
	g, _, h := newTestGame(t, WithSounder(snd))
	g.OnKeyDown(KeyLeft)
	if g.State() != StateIdle {
		t.Fatalf("a move key must not start the game, state = %s", g.State())
	}
	g.OnKeyDown(KeySpace)
	if g.State() != StateIntroPlaying {
		t.Fatalf("state = %s, want intro", g.State())
	}
	g.OnKeyDown(KeySpace)
	if g.State() != StateIntroPlaying || len(h.scales) != 1 {
		t.Fatalf("second start press should be a no-op: state %s, %d intros", g.State(), len(h.scales))
	}
	if h.scales[0] != 2 {
		t.Errorf("arcade scale = %v, want 2", h.scales[0])
	}
	if g.FramePending() {
		t.Error("no frame should run during the intro")
	}
	if snd.count(EffectStart) != 1 {
		t.Errorf("start sound played %d times", snd.count(EffectStart))
	}

	g.OnIntroComplete()
	if g.State() != StatePlaying || !g.FramePending() {
		t.Fatalf("after the intro: state %s, pending %v", g.State(), g.FramePending())
	}
	g.OnIntroComplete()
	if g.State() != StatePlaying {
		t.Errorf("duplicate intro signal changed state to %s", g.State())
	}
}

func TestArcadeScaleNeverBelowOne(t *testing.T) {
	g, _, h := newTestGame(t)
	h.w, h.h = 300, 200
	g.OnKeyDown(KeySpace)
	if h.scales[0] != 1 {
		t.Errorf("scale = %v, want 1", h.scales[0])
	}
}

func TestTickMovesBall(t *testing.T) {
	g := newPlayingGame(t)
	start := g.Ball().Position
	g.Tick()
	got := g.Ball().Position
	if got.X != start.X+2 || got.Y != start.Y-2 {
		t.Errorf("ball at %+v after one frame, want %+v moved by (2,-2)", got, start)
	}
	if !g.FramePending() {
		t.Error("frame should reschedule itself")
	}
}

func TestBlurHaltsFrames(t *testing.T) {
	g := newPlayingGame(t)
	g.Tick()
	g.OnBlur()
	if g.State() != StatePaused || g.FramePending() {
		t.Fatalf("after blur: state %s, pending %v", g.State(), g.FramePending())
	}
	pos := g.Ball().Position
	for i := 0; i < 10; i++ {
		g.Tick()
	}
	if g.Ball().Position != pos {
		t.Fatalf("ball moved while paused: %+v -> %+v", pos, g.Ball().Position)
	}
	g.OnKeyDown(KeyLeft)
	g.OnFocus()
	if g.State() != StatePlaying {
		t.Fatalf("state = %s, want playing", g.State())
	}
	g.Tick()
	if g.Ball().Position == pos {
		t.Error("ball should move again after focus")
	}
	if g.Paddle().X != 250 {
		t.Errorf("key pressed while paused moved the paddle to %v", g.Paddle().X)
	}
}

func TestFocusIgnoredBeforePlay(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.OnKeyDown(KeySpace)
	g.OnBlur()
	g.OnFocus()
	if g.State() != StateIntroPlaying {
		t.Errorf("focus changes during the intro moved the game to %s", g.State())
	}
}

func TestPaddleFollowsFrontKey(t *testing.T) {
	g := newPlayingGame(t)
	x := g.Paddle().X

	g.OnKeyDown(KeyRight)
	g.Tick()
	if g.Paddle().X != x+6 {
		t.Fatalf("paddle x = %v, want %v", g.Paddle().X, x+6)
	}
	g.OnKeyDown(KeyA)
	g.Tick()
	if g.Paddle().X != x {
		t.Fatalf("latest key should win, paddle x = %v, want %v", g.Paddle().X, x)
	}
	g.OnKeyUp(KeyRight)
	g.Tick()
	if g.Paddle().X != x-6 {
		t.Fatalf("releasing an older key must not stop the paddle, x = %v", g.Paddle().X)
	}
	g.OnKeyUp(KeyA)
	g.Tick()
	if g.Paddle().X != x-6 {
		t.Errorf("paddle should stop once its key is released, x = %v", g.Paddle().X)
	}
}

func TestBallBouncesOffPaddleTop(t *testing.T) {
	snd := &recordingSounder{}
	g := newPlayingGame(t, WithSounder(snd))
	b, p := g.Ball(), g.Paddle()
	b.Position = Position{X: p.X + 40, Y: p.Y - b.Size.Height}
	b.Velocity = Velocity{SpeedX: 2, SpeedY: 2}

	g.Tick()
	if b.SpeedY != -2 || b.SpeedX != 2 {
		t.Fatalf("velocity after top hit = %+v, want (2,-2)", b.Velocity)
	}
	g.Tick()
	if b.SpeedY != -2 {
		t.Errorf("ball leaving the paddle must not flip again, velocity %+v", b.Velocity)
	}
	if snd.count(EffectPaddle) != 1 {
		t.Errorf("paddle sound played %d times, want 1", snd.count(EffectPaddle))
	}
}

func TestBallBouncesOffPaddleSide(t *testing.T) {
	g := newPlayingGame(t)
	b, p := g.Ball(), g.Paddle()
	b.Position = Position{X: p.X - b.Size.Width, Y: p.Y + 2}
	b.Velocity = Velocity{SpeedX: 3, SpeedY: 1}

	g.Tick()
	if b.SpeedX != -3 || b.SpeedY != -1 {
		t.Errorf("velocity after side hit = %+v, want (-3,-1)", b.Velocity)
	}
}

func TestIgnoresRecedingBall(t *testing.T) {
	g := newPlayingGame(t)
	b, p := g.Ball(), g.Paddle()
	b.Position = Position{X: p.X + 40, Y: p.Y - b.Size.Height + 6}
	b.Velocity = Velocity{SpeedX: 2, SpeedY: -2}

	g.Tick()
	if b.SpeedY != -2 {
		t.Errorf("a ball moving away from the paddle must keep its velocity, got %+v", b.Velocity)
	}
}

// dropBall parks the paddle in the left corner and runs frames until the
// ball falls.
func dropBall(t *testing.T, g *Game) int {
	t.Helper()
	g.OnKeyDown(KeyLeft)
	for i := 1; i <= 1000; i++ {
		g.Tick()
		if g.State() == StateDropped {
			return i
		}
	}
	t.Fatalf("ball never dropped, ball at %+v", g.Ball().Position)
	return 0
}

func TestDropHaltsFrames(t *testing.T) {
	snd := &recordingSounder{}
	g := newPlayingGame(t, WithSounder(snd))
	frames := dropBall(t, g)
	if frames != 286 {
		t.Errorf("ball dropped after %d frames, want 286", frames)
	}
	if g.FramePending() {
		t.Fatal("no frame should be scheduled after the drop")
	}
	pos := g.Ball().Position
	g.Tick()
	if g.Ball().Position != pos {
		t.Error("ball moved after the drop")
	}
	if snd.count(EffectDrop) != 1 {
		t.Errorf("drop sound played %d times, want 1", snd.count(EffectDrop))
	}

	g.OnBlur()
	g.OnFocus()
	if g.State() != StateDropped {
		t.Errorf("focus must not resume a dropped game, state = %s", g.State())
	}
}

func TestGameOverDrawsPanel(t *testing.T) {
	g, s, _ := newTestGame(t)
	g.OnKeyDown(KeySpace)
	g.OnIntroComplete()
	dropBall(t, g)
	n := len(s.draws)
	if n < 2 || s.draws[n-2] != Sprites[SpriteGameOverText].Source() || s.draws[n-1] != Sprites[SpriteRestart].Source() {
		t.Errorf("last draws %v, want game over text then restart button", s.draws[n-2:])
	}
}

func TestRestartAfterDrop(t *testing.T) {
	g := newPlayingGame(t)
	start, vel := g.Ball().Position, g.Ball().Velocity
	dropBall(t, g)
	g.OnKeyUp(KeyLeft)
	paddleX := g.Paddle().X

	g.OnKeyDown(KeySpace)
	if g.State() != StateDropped {
		t.Fatalf("restart happens on release, state = %s", g.State())
	}
	g.OnKeyUp(KeySpace)
	if g.State() != StatePlaying {
		t.Fatalf("state = %s, want playing", g.State())
	}
	if g.Ball().Position != start || g.Ball().Velocity != vel {
		t.Errorf("ball after restart %+v %+v, want %+v %+v", g.Ball().Position, g.Ball().Velocity, start, vel)
	}
	if g.Paddle().X != paddleX {
		t.Errorf("restart moved the paddle from %v to %v", paddleX, g.Paddle().X)
	}
	if !g.FramePending() {
		t.Error("restart should schedule a frame")
	}
}

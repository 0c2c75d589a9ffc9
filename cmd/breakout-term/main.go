// Command breakout-term plays breakout in a terminal.
package main

import (
	"flag"
	"image"
	"io"
	"os"
	"time"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/gdamore/tcell/v2"
	"github.com/jtestard/go-breakout/breakout"
	"github.com/jtestard/go-breakout/canvas"
	"github.com/jtestard/go-breakout/sheet"
	"github.com/jtestard/go-breakout/sound"
)

// defaultHold outlasts the usual auto-repeat delays (660ms on X11), so a
// held key keeps steering until the terminal starts repeating it.
const defaultHold = 700 * time.Millisecond

func main() {
	os.Exit(Main())
}

func Main() int {
	fps := flag.Float64("fps", 60, "Frames per second")
	speed := flag.Float64("speed", breakout.DefaultBallSpeedX, "Ball `speed` in pixels per frame along each axis")
	step := flag.Float64("step", breakout.DefaultPaddleStep, "Paddle `step` in pixels per frame")
	sprites := flag.String("sprites", "", "Sprite sheet `png` to use instead of the built-in one")
	mute := flag.Bool("mute", false, "Start without sound")
	hold := flag.Duration("hold", defaultHold,
		"How long a key press counts as held before the terminal repeats it, keep it above the keyboard auto-repeat delay")
	logFile := flag.String("logfile", "", "Write logs to `file`, they are discarded otherwise since the game owns the terminal")
	cli.Main()

	cfg := breakout.DefaultConfig()
	cfg.PaddleStep = *step
	cfg.BallVelocity = breakout.Velocity{SpeedX: *speed, SpeedY: -*speed}
	if *fps <= 0 {
		return log.FErrf("fps must be positive, got %v", *fps)
	}

	player := sound.NewPlayer(sound.DefaultSampleRate, *mute)
	if err := player.Start(); err != nil {
		log.Warnf("No sound: %v", err)
	}
	defer player.Close()

	t, err := newTerm(cfg, player, *sprites, *hold)
	if err != nil {
		return log.FErrf("Error creating game: %v", err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return log.FErrf("Error creating screen: %v", err)
	}
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			return log.FErrf("Error creating log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}
	if err := s.Init(); err != nil {
		log.SetOutput(os.Stderr)
		return log.FErrf("Error initializing screen: %v", err)
	}
	defer s.Fini()
	s.HideCursor()
	s.EnableFocus()
	s.Clear()
	t.attach(s)

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	tick := time.NewTicker(time.Duration(float64(time.Second) / *fps))
	defer tick.Stop()
	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
			case *tcell.EventFocus:
				t.focus(e.Focused)
			case *tcell.EventKey:
				if !t.key(e, time.Now()) {
					return 0
				}
			}
		case now := <-tick.C:
			t.tick(now)
		}
	}
}

// term runs a game on a tcell screen. The game draws into a raster which
// is shown with half block characters, two pixels per cell.
type term struct {
	screen tcell.Screen
	raster *canvas.Raster
	host   *termHost
	game   *breakout.Game
	player *sound.Player

	hold    time.Duration
	repeat  time.Duration
	held    map[breakout.KeyCode]time.Time
	focused bool
}

func newTerm(cfg breakout.Config, player *sound.Player, sprites string, hold time.Duration) (*term, error) {
	raster := canvas.NewRaster(int(cfg.Field.Width), int(cfg.Field.Height))
	host := &termHost{field: cfg.Field, scale: 1}
	g, err := breakout.NewGame(cfg, raster, host,
		breakout.WithSounder(player),
		breakout.WithImageProvider(sheet.Load(sprites)))
	if err != nil {
		return nil, err
	}
	return &term{
		raster:  raster,
		host:    host,
		game:    g,
		player:  player,
		hold:    hold,
		repeat:  hold / 4,
		held:    map[breakout.KeyCode]time.Time{},
		focused: true,
	}, nil
}

func (t *term) attach(s tcell.Screen) {
	t.screen = s
	t.host.screen = s
}

func keyCode(e *tcell.EventKey) (breakout.KeyCode, bool) {
	switch e.Key() {
	case tcell.KeyLeft:
		return breakout.KeyLeft, true
	case tcell.KeyRight:
		return breakout.KeyRight, true
	case tcell.KeyRune:
		switch e.Rune() {
		case ' ':
			return breakout.KeySpace, true
		case 'a', 'A':
			return breakout.KeyA, true
		case 'd', 'D':
			return breakout.KeyD, true
		}
	}
	return 0, false
}

// key handles a key press and returns false when the player quits.
// Terminals report no releases: start keys are released at once and the
// others once the terminal stops repeating them.
func (t *term) key(e *tcell.EventKey, now time.Time) bool {
	switch {
	case e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC:
		return false
	case e.Key() == tcell.KeyRune && (e.Rune() == 'q' || e.Rune() == 'Q'):
		return false
	case e.Key() == tcell.KeyRune && (e.Rune() == 'm' || e.Rune() == 'M'):
		t.player.SetMuted(!t.player.Muted())
		return true
	}
	code, ok := keyCode(e)
	if !ok {
		return true
	}
	if code == breakout.KeySpace {
		t.game.OnKeyDown(code)
		t.game.OnKeyUp(code)
		return true
	}
	if _, repeating := t.held[code]; repeating {
		t.held[code] = now.Add(t.repeat)
		return true
	}
	t.held[code] = now.Add(t.hold)
	t.game.OnKeyDown(code)
	return true
}

func (t *term) focus(focused bool) {
	if focused == t.focused {
		return
	}
	t.focused = focused
	if focused {
		t.game.OnFocus()
	} else {
		t.game.OnBlur()
	}
}

func (t *term) tick(now time.Time) {
	for code, until := range t.held {
		if now.After(until) {
			delete(t.held, code)
			t.game.OnKeyUp(code)
		}
	}
	t.host.update(t.game)
	t.game.Tick()
	t.draw()
}

func (t *term) draw() {
	x0, y0, cols, rows := t.host.viewport()
	if cols <= 0 || rows <= 0 {
		return
	}
	px := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	t.raster.Snapshot(px)
	t.screen.Clear()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := px.RGBAAt(x, 2*y)
			bottom := px.RGBAAt(x, 2*y+1)
			st := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x0+x, y0+y, '▀', nil, st)
		}
	}
	_, sh := t.screen.Size()
	drawText(t.screen, 0, sh-1, caption(t.game), tcell.StyleDefault.Foreground(tcell.ColorGray))
	t.screen.Show()
}

func caption(g *breakout.Game) string {
	switch g.State() {
	case breakout.StatePaused:
		return "PAUSED - focus the terminal to resume"
	case breakout.StateDropped:
		return "SPACE to restart  q to quit"
	case breakout.StatePlaying:
		return "arrows or a/d to move  m to mute  q to quit"
	}
	if !g.Ready() {
		return "loading..."
	}
	return "SPACE to start  q to quit"
}

func drawText(s tcell.Screen, x, y int, str string, st tcell.Style) {
	for i, ch := range []rune(str) {
		s.SetContent(x+i, y, ch, nil, st)
	}
}

package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"fortio.org/cli"
	"fortio.org/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/jtestard/go-breakout/breakout"
	"github.com/jtestard/go-breakout/sheet"
	"github.com/jtestard/go-breakout/sound"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
)

// Game adapts breakout.Game to ebiten's game loop.
type Game struct {
	game    *breakout.Game
	surface *surface
	host    *arcadeHost
	player  *sound.Player
	caption font.Face
	field   breakout.Dimensions
	keys    []breakout.KeyCode

	focused bool
	debug   bool
}

type options struct {
	speed      float64
	step       float64
	sprites    string
	mute       bool
	fullscreen bool
	debug      bool
	introTicks int
}

const captionHeight = 24

var captionColor = colornames.Dimgray

// NewGame creates an initializes a new game
func NewGame(opts options) (*Game, error) {
	g := &Game{focused: true, debug: opts.debug}
	if err := g.init(opts); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) init(opts options) error {
	cfg := breakout.DefaultConfig()
	cfg.PaddleStep = opts.step
	cfg.BallVelocity = breakout.Velocity{SpeedX: opts.speed, SpeedY: -opts.speed}
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.field = cfg.Field
	g.keys = cfg.Bindings.Codes()

	face, err := sheet.NewFace(12)
	if err != nil {
		return err
	}
	g.caption = face

	g.player = sound.NewPlayer(sound.DefaultSampleRate, opts.mute)
	if err := g.player.Start(); err != nil {
		log.Warnf("No sound: %v", err)
	}

	g.surface = newSurface(cfg.Field)
	g.host = newArcadeHost(opts.fullscreen, opts.introTicks)
	g.host.layout(int(cfg.Field.Width), int(cfg.Field.Height)+captionHeight)
	g.game, err = breakout.NewGame(cfg, g.surface, g.host,
		breakout.WithSounder(g.player),
		breakout.WithImageProvider(sheet.Load(opts.sprites)))
	if err != nil {
		return err
	}
	g.host.onDone = g.game.OnIntroComplete
	return nil
}

// Update updates the game state
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.player.SetMuted(!g.player.Muted())
	}
	for _, code := range g.keys {
		key, ok := keymap[code]
		if !ok {
			continue
		}
		if inpututil.IsKeyJustPressed(key) {
			g.game.OnKeyDown(code)
		}
		if inpututil.IsKeyJustReleased(key) {
			g.game.OnKeyUp(code)
		}
	}

	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		if focused {
			g.game.OnFocus()
		} else {
			g.game.OnBlur()
		}
	}

	g.host.update()
	g.game.Tick()
	return nil
}

// Draw updates the game screen elements drawn
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := g.host.drawScale(g.field)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(sw)-g.field.Width*scale)/2, (float64(sh)-captionHeight-g.field.Height*scale)/2)
	screen.DrawImage(g.surface.canvas, op)

	text.Draw(screen, g.captionText(), g.caption, 8, sh-8, captionColor)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.2f", ebiten.ActualTPS()))
	}
}

func (g *Game) captionText() string {
	switch g.game.State() {
	case breakout.StatePaused:
		return "PAUSED - focus the window to resume"
	case breakout.StateDropped:
		return "SPACE to restart   Q to quit"
	case breakout.StatePlaying:
		return "LEFT/RIGHT or A/D to move   M to mute"
	}
	if !g.game.Ready() {
		return "loading..."
	}
	return "SPACE to start   Q to quit"
}

// Layout sets the screen layout
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.host.layout(outsideWidth, outsideHeight-captionHeight)
	return outsideWidth, outsideHeight
}

func main() {
	os.Exit(Main())
}

func Main() int {
	var opts options
	flag.Float64Var(&opts.speed, "speed", breakout.DefaultBallSpeedX, "Ball `speed` in pixels per frame along each axis")
	flag.Float64Var(&opts.step, "step", breakout.DefaultPaddleStep, "Paddle `step` in pixels per frame")
	flag.StringVar(&opts.sprites, "sprites", "", "Sprite sheet `png` to use instead of the built-in one")
	flag.BoolVar(&opts.mute, "mute", false, "Start without sound")
	flag.BoolVar(&opts.fullscreen, "fullscreen", false, "Go fullscreen in arcade mode")
	flag.BoolVar(&opts.debug, "debug", false, "Show frame rate")
	flag.IntVar(&opts.introTicks, "intro", 24, "Length of the arcade mode transition in `ticks`")
	cli.Main()

	log.Infof("bootstraping new game...")
	g, err := NewGame(opts)
	if err != nil {
		return log.FErrf("Error creating game: %v", err)
	}
	defer g.player.Close()

	ebiten.SetWindowTitle("Breakout")
	ebiten.SetWindowSize(int(g.field.Width), int(g.field.Height)+captionHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)

	log.Infof("starting the game...")
	if err := ebiten.RunGame(g); err != nil {
		return log.FErrf("Error running game: %v", err)
	}
	return 0
}

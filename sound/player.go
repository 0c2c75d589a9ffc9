package sound

import (
	"sync"
	"time"

	"fortio.org/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/jtestard/go-breakout/breakout"
)

// DefaultSampleRate is the speaker rate used by NewPlayer.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue builds the streamer of one effect.
func Cue(e breakout.Effect, rate beep.SampleRate) beep.Streamer {
	switch e {
	case breakout.EffectStart:
		return withVolume(beep.Seq(
			blip(523.25, 60*time.Millisecond, WaveSquare, rate),
			blip(659.25, 60*time.Millisecond, WaveSquare, rate),
			blip(783.99, 110*time.Millisecond, WaveSquare, rate),
		), 0.25)
	case breakout.EffectWall:
		return withVolume(blip(440, 30*time.Millisecond, WaveSquare, rate), 0.2)
	case breakout.EffectPaddle:
		return withVolume(blip(660, 50*time.Millisecond, WaveSine, rate), 0.4)
	case breakout.EffectDrop:
		d := 400 * time.Millisecond
		return withVolume(NewFade(NewSweep(330, 90, d, WaveSaw, rate), d, 0, d/2, rate), 0.3)
	}
	return nil
}

// Player plays cues through the system speaker. Its zero value is not
// usable, see NewPlayer.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	started bool
	muted   bool
}

// NewPlayer returns a player that stays silent until Start.
func NewPlayer(rate beep.SampleRate, muted bool) *Player {
	return &Player{rate: rate, mixer: &beep.Mixer{}, muted: muted}
}

// Start opens the speaker.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	log.Infof("Sound on at %d Hz", p.rate)
	return nil
}

// Play mixes the cue of e in. It never blocks on audio output.
func (p *Player) Play(e breakout.Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started || p.muted {
		return
	}
	s := Cue(e, p.rate)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	log.LogVf("Playing %s", e)
}

// SetMuted turns output off or back on.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether output is off.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close silences the player and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}

package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/jtestard/go-breakout/breakout"
)

const testRate = beep.SampleRate(8000)

// drain streams s to the end and returns the number of samples and the
// peak amplitude.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 256)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream never ended")
	return 0, 0
}

func TestToneLength(t *testing.T) {
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveSaw} {
		n, peak := drain(t, NewTone(440, 100*time.Millisecond, w, testRate))
		if n != testRate.N(100*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", w, n, testRate.N(100*time.Millisecond))
		}
		if peak > 1 || peak == 0 {
			t.Errorf("wave %d: peak %v outside (0, 1]", w, peak)
		}
	}
}

func TestSweepStaysInRange(t *testing.T) {
	s := NewSweep(1000, 100, 50*time.Millisecond, WaveSine, testRate)
	buf := make([][2]float64, 100)
	n, ok := s.Stream(buf)
	if !ok || n != 100 {
		t.Fatalf("got %d, %v", n, ok)
	}
	for i := 0; i < n; i++ {
		if buf[i][0] < -1 || buf[i][0] > 1 || buf[i][0] != buf[i][1] {
			t.Fatalf("sample %d = %v", i, buf[i])
		}
	}
}

func TestFadeStartsAndEndsQuiet(t *testing.T) {
	d := 100 * time.Millisecond
	s := NewFade(NewTone(440, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)
	buf := make([][2]float64, testRate.N(d))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d of %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample %v, want silence", buf[0][0])
	}
	mid := math.Abs(buf[n/2][0])
	if mid != 1 {
		t.Errorf("middle sample %v, want full volume", mid)
	}
	if last := math.Abs(buf[n-1][0]); last >= mid {
		t.Errorf("last sample %v should be fading", last)
	}
}

func TestCues(t *testing.T) {
	for _, e := range []breakout.Effect{breakout.EffectStart, breakout.EffectWall, breakout.EffectPaddle, breakout.EffectDrop} {
		t.Run(e.String(), func(t *testing.T) {
			s := Cue(e, testRate)
			if s == nil {
				t.Fatal("no cue")
			}
			n, peak := drain(t, s)
			if n == 0 || peak == 0 {
				t.Errorf("cue is silent: %d samples, peak %v", n, peak)
			}
			if n > testRate.N(time.Second) {
				t.Errorf("cue lasts %d samples, too long for a sound effect", n)
			}
		})
	}
	if Cue(breakout.Effect(99), testRate) != nil {
		t.Error("unknown effect should have no cue")
	}
}

func TestPlayerSilentUntilStarted(t *testing.T) {
	p := NewPlayer(testRate, false)
	p.Play(breakout.EffectWall)
	if p.mixer.Len() != 0 {
		t.Errorf("player queued %d streams before Start", p.mixer.Len())
	}
	p.SetMuted(true)
	if !p.Muted() {
		t.Error("SetMuted(true) did not mute")
	}
	p.Close()
}

package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/billiard/parameter"
)

// SoundKind identifies a contact sound
type SoundKind uint8

const (
	SoundClick SoundKind = iota // ball against ball
	SoundThud                   // ball against wall

	soundKindCount
)

func (k SoundKind) String() string {
	switch k {
	case SoundClick:
		return "click"
	case SoundThud:
		return "thud"
	}
	return fmt.Sprintf("SoundKind(%d)", uint8(k))
}

// envelope ramps up over attack, then fades linearly to silence at total
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{streamer: s, attack: rate.N(attack), total: rate.N(duration)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.pos < e.attack:
			vol = float64(e.pos) / float64(e.attack)
		case e.total > e.attack:
			vol = float64(e.total-e.pos) / float64(e.total-e.attack)
		}
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// thud is a low sine with exponential decay, endless until wrapped by beep.Take
type thud struct {
	rate beep.SampleRate
	freq float64
	pos  int
}

func (g *thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.rate)
		s := math.Exp(-t*parameter.ThudDecayRate) * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *thud) Err() error { return nil }

// math.Log2(0) is -Inf, zero volume is rendered silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewSound builds a finite streamer for kind
// Streamers are consumed by playback, every Play needs a fresh one
func NewSound(kind SoundKind, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	var s beep.Streamer
	switch kind {
	case SoundClick:
		sine, err := generators.SineTone(rate, parameter.BallClickFreq)
		if err != nil {
			return nil, fmt.Errorf("click tone: %w", err)
		}
		s = newEnvelope(beep.Take(rate.N(parameter.BallClickDuration), sine),
			parameter.BallClickDuration, parameter.ToneAttack, rate)
	case SoundThud:
		s = beep.Take(rate.N(parameter.WallThudDuration), &thud{rate: rate, freq: parameter.WallThudFreq})
	default:
		return nil, fmt.Errorf("unknown sound %s", kind)
	}
	return newVolume(s, volume), nil
}

package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/skyhop/internal/sim"
)

const (
	jumpDuration  = 120 * time.Millisecond
	jumpAttack    = 5 * time.Millisecond
	jumpRelease   = 60 * time.Millisecond
	crashDuration = 280 * time.Millisecond
	crashAttack   = 2 * time.Millisecond
	crashRelease  = 200 * time.Millisecond
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// sweep is an oscillator whose frequency moves linearly from start to end
// over its duration.
type sweep struct {
	start, end float64
	wave       Wave
	rate       beep.SampleRate
	phase      float64
	pos, total int
}

// NewSweep creates a finite oscillator. A constant tone has start == end.
func NewSweep(start, end float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		start: start,
		end:   end,
		wave:  wave,
		rate:  rate,
		total: rate.N(d),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}

		var v float64
		switch s.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case WaveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := s.start + (s.end-s.start)*float64(s.pos)/float64(s.total)
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack and release to a finite stream.
type envelope struct {
	streamer                beep.Streamer
	pos, attack, release, n int
}

// NewEnvelope shapes s, which must last d.
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		n:        rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.n - e.pos; e.release > 0 && left < e.release {
			gain = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream by a linear gain; 0 silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Effect synthesizes the named sound at the given linear volume.
// Unknown names return nil.
func Effect(name string, rate beep.SampleRate, vol float64) beep.Streamer {
	switch name {
	case sim.SoundJump:
		// Short rising chirp.
		osc := NewSweep(520, 1040, jumpDuration, WaveSine, rate)
		return withVolume(NewEnvelope(osc, jumpDuration, jumpAttack, jumpRelease, rate), vol)
	case sim.SoundCrash:
		// Falling buzz with a sub-octave underneath.
		buzz := NewEnvelope(NewSweep(180, 60, crashDuration, WaveSaw, rate), crashDuration, crashAttack, crashRelease, rate)
		sub := NewEnvelope(NewSweep(90, 30, crashDuration, WaveSquare, rate), crashDuration, crashAttack, crashRelease, rate)
		return withVolume(beep.Mix(withVolume(buzz, 0.7), withVolume(sub, 0.3)), vol)
	default:
		return nil
	}
}

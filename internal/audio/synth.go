package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/tomz197/blastar/internal/match"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave whose frequency slides linearly from freq to
// endFreq over its duration.
type oscillator struct {
	freq, endFreq float64
	phase         float64
	duration      int
	position      int
	wave          WaveType
	rate          beep.SampleRate
	rng           *rand.Rand
}

// NewOscillator creates a fixed-frequency oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator sliding from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.duration > 0 && o.endFreq != o.freq {
			freq += (o.endFreq - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope lasting duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is a shaped fixed-frequency sine from the beep generators.
func tone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// Frequency above Nyquist; fall back to the local oscillator
		sine = NewOscillator(freq, duration, WaveSine, rate)
	}
	return NewEnvelope(beep.Take(rate.N(duration), sine), duration, 5*time.Millisecond, duration/2, rate)
}

// Effect returns a new streamer for a sound key, or nil for an unknown key.
func Effect(key match.Sound, rate beep.SampleRate) beep.Streamer {
	switch key {
	case match.SoundLaserShot:
		d := 120 * time.Millisecond
		sweep := NewSweep(1400, 300, d, WaveSaw, rate)
		return newVolume(NewEnvelope(sweep, d, 2*time.Millisecond, 60*time.Millisecond, rate), 0.15)

	case match.SoundQuietHit:
		return newVolume(tone(520, 60*time.Millisecond, rate), 0.2)

	case match.SoundCoin:
		n1 := NewOscillator(987.77, 80*time.Millisecond, WaveSquare, rate)
		n2 := NewOscillator(1318.51, 240*time.Millisecond, WaveSquare, rate)
		seq := beep.Seq(
			NewEnvelope(n1, 80*time.Millisecond, 2*time.Millisecond, 10*time.Millisecond, rate),
			NewEnvelope(n2, 240*time.Millisecond, 2*time.Millisecond, 180*time.Millisecond, rate),
		)
		return newVolume(seq, 0.12)

	case match.SoundGroundHit:
		d := 150 * time.Millisecond
		thud := NewSweep(160, 60, d, WaveSine, rate)
		return newVolume(NewEnvelope(thud, d, 2*time.Millisecond, 120*time.Millisecond, rate), 0.5)

	case match.SoundExplosion:
		d := 450 * time.Millisecond
		noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 5*time.Millisecond, 400*time.Millisecond, rate)
		rumble := NewEnvelope(NewSweep(90, 40, d, WaveSine, rate), d, 5*time.Millisecond, 400*time.Millisecond, rate)
		return newVolume(beep.Take(rate.N(d), beep.Mix(newVolume(noise, 0.5), rumble)), 0.35)

	case match.SoundPause:
		return newVolume(beep.Seq(tone(660, 70*time.Millisecond, rate), tone(440, 90*time.Millisecond, rate)), 0.2)

	default:
		return nil
	}
}

// musicGenerator plays an endless bass arpeggio.
type musicGenerator struct {
	rate    beep.SampleRate
	pos     int
	noteLen int
	notes   []float64
	phase   float64
}

// bassline is A minor, one note per eighth at 140 BPM.
var bassline = []float64{110, 110, 164.81, 110, 130.81, 110, 196, 164.81}

func newMusicGenerator(rate beep.SampleRate) *musicGenerator {
	return &musicGenerator{
		rate:    rate,
		noteLen: rate.N(time.Minute / 140 / 2),
		notes:   bassline,
	}
}

func (g *musicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := (g.pos / g.noteLen) % len(g.notes)
		inNote := g.pos % g.noteLen

		// Pluck envelope per note
		env := math.Exp(-4 * float64(inNote) / float64(g.noteLen))
		val := 0.0
		if g.phase < 0.5 {
			val = env
		} else {
			val = -env
		}

		samples[i][0] = val
		samples[i][1] = val

		g.phase += g.notes[note] / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *musicGenerator) Err() error { return nil }

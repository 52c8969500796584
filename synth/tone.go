package synth

import (
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/jsphweid/fretboard/constants"
)

// Frequency is the equal-tempered pitch of a string stopped at a fret.
func Frequency(stringIndex, fret int) float64 {
	return constants.OpenStringFrequencies[stringIndex] * math.Pow(2, float64(fret)/12)
}

// Tone is a single plucked note: a triangle wave whose gain falls
// exponentially from StartGain to EndGain over the whole duration.
// It is a beep.Streamer and can only be played once.
type Tone struct {
	freq     float64
	sr       beep.SampleRate
	total    int
	pos      int
	duration time.Duration
}

func NewTone(sr beep.SampleRate, freq float64) *Tone {
	return &Tone{
		freq:     freq,
		sr:       sr,
		total:    sr.N(constants.ToneDuration),
		duration: constants.ToneDuration,
	}
}

func (t *Tone) Frequency() float64 {
	return t.freq
}

func (t *Tone) Duration() time.Duration {
	return t.duration
}

// Len is the tone's length in samples.
func (t *Tone) Len() int {
	return t.total
}

// Gain is the envelope value at the given time from onset.
func Gain(at time.Duration) float64 {
	if at <= 0 {
		return constants.StartGain
	}
	if at >= constants.ToneDuration {
		return constants.EndGain
	}
	progress := float64(at) / float64(constants.ToneDuration)
	return constants.StartGain * math.Pow(constants.EndGain/constants.StartGain, progress)
}

// triangle maps a phase in cycles to [-1, 1], starting at 0 and rising.
func triangle(phase float64) float64 {
	p := math.Mod(phase+0.75, 1)
	return 4*math.Abs(p-0.5) - 1
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		at := t.sr.D(t.pos)
		v := Gain(at) * triangle(t.freq*at.Seconds())
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *Tone) Err() error {
	return nil
}

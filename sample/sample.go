package sample

import (
	"io"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/synth"
	"github.com/jsphweid/fretboard/util"
	"github.com/pkg/errors"
)

var Format = beep.Format{
	SampleRate:  beep.SampleRate(constants.SampleRate),
	NumChannels: 1,
	Precision:   2,
}

// Mix lays every event's tone at its offset and returns a streamer that
// ends when the last tone has decayed.
func Mix(sr beep.SampleRate, events []model.PlaybackEvent) beep.Streamer {
	mixer := &beep.Mixer{}
	length := 0
	for _, e := range events {
		tone := synth.NewTone(sr, synth.Frequency(e.String, e.Fret))
		delay := sr.N(e.Offset)
		mixer.Add(beep.Seq(beep.Silence(delay), tone))
		length = util.Max(length, delay+tone.Len())
	}
	return beep.Take(length, mixer)
}

// RenderPluck writes a WAV of a single pluck.
func RenderPluck(w io.WriteSeeker, stringIndex, fret int) error {
	if stringIndex < 0 || stringIndex >= constants.NumStrings || fret < 0 {
		return errors.Errorf("no such position: string %d fret %d", stringIndex, fret)
	}
	return Render(w, []model.PlaybackEvent{{String: stringIndex, Fret: fret}})
}

// RenderStrum writes a WAV of a whole strum.
func RenderStrum(w io.WriteSeeker, c model.Chord) error {
	return Render(w, synth.PlanStrum(c))
}

func Render(w io.WriteSeeker, events []model.PlaybackEvent) error {
	err := wav.Encode(w, Mix(Format.SampleRate, events), Format)
	return errors.Wrap(err, "could not encode wav")
}

// Length is how long a rendering of the events runs.
func Length(events []model.PlaybackEvent) time.Duration {
	var longest time.Duration
	for _, e := range events {
		if end := e.Offset + constants.ToneDuration; end > longest {
			longest = end
		}
	}
	return longest
}

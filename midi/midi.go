package midi

import (
	"bytes"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	Tempo      = 120
	Resolution = smf.MetricTicks(960)
	Velocity   = 100
)

// PitchOf is the MIDI pitch of a string stopped at a fret.
func PitchOf(stringIndex, fret int) uint8 {
	return constants.OpenStringPitches[stringIndex] + uint8(fret)
}

// Locate finds the lowest string that can play a pitch within the rendered frets.
func Locate(pitch uint8) (stringIndex, fret int, ok bool) {
	for s := constants.NumStrings - 1; s >= 0; s-- {
		open := constants.OpenStringPitches[s]
		if pitch >= open && int(pitch-open) <= constants.MaxFret {
			stringIndex, fret, ok = s, int(pitch-open), true
		}
	}
	return stringIndex, fret, ok
}

// ticks converts a duration into ticks at the fixed export tempo.
func ticks(d time.Duration) uint32 {
	quarter := time.Minute / Tempo
	return uint32(int64(d) * int64(Resolution) / int64(quarter))
}

type noteEvent struct {
	at  uint32
	key uint8
	on  bool
}

// WriteStrum writes the events as a single track SMF. Every note is held
// for the tone duration.
func WriteStrum(w io.Writer, events []model.PlaybackEvent) error {
	var timeline []noteEvent
	for _, e := range events {
		key := PitchOf(e.String, e.Fret)
		timeline = append(timeline,
			noteEvent{at: ticks(e.Offset), key: key, on: true},
			noteEvent{at: ticks(e.Offset + constants.ToneDuration), key: key, on: false},
		)
	}
	sortTimeline(timeline)

	var track smf.Track
	track.Add(0, smf.MetaTempo(Tempo))
	var last uint32
	for _, ev := range timeline {
		delta := ev.at - last
		last = ev.at
		if ev.on {
			track.Add(delta, gomidi.NoteOn(0, ev.key, Velocity))
		} else {
			track.Add(delta, gomidi.NoteOff(0, ev.key))
		}
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = Resolution
	if err := s.Add(track); err != nil {
		return errors.Wrap(err, "could not add track")
	}
	_, err := s.WriteTo(w)
	return errors.Wrap(err, "could not write midi")
}

// sortTimeline orders by tick, note offs first so a re-struck key is
// released before it sounds again.
func sortTimeline(timeline []noteEvent) {
	sort.SliceStable(timeline, func(i, j int) bool {
		return before(timeline[i], timeline[j])
	})
}

func before(a, b noteEvent) bool {
	if a.at != b.at {
		return a.at < b.at
	}
	return !a.on && b.on
}

// ReadStrum reads back the note-ons of a file written by WriteStrum.
func ReadStrum(r io.Reader) ([]model.PlaybackEvent, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse midi")
	}
	var res []model.PlaybackEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			if !event.Message.GetNoteOn(&channel, &key, &velocity) || velocity == 0 {
				continue
			}
			stringIndex, fret, ok := Locate(key)
			if !ok {
				continue
			}
			res = append(res, model.PlaybackEvent{
				String: stringIndex,
				Fret:   fret,
				Offset: time.Duration(s.TimeAt(absTicks)) * time.Microsecond,
			})
		}
	}
	return res, nil
}

func ReadMidiFile(filepath string) (res []model.PlaybackEvent, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading midi file %s", filepath)
	}
	return ReadStrum(bytes.NewReader(dat))
}

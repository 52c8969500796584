package cmd

import (
	"testing"
	"time"

	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/player"
	"github.com/jsphweid/fretboard/schedule"
	"github.com/jsphweid/fretboard/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func newSession() (*player.Session, *fretboard.Board, *schedule.Manual, *synth.Recorder) {
	clock := schedule.NewManual()
	rec := synth.NewRecorder()
	board := fretboard.NewBoard(constants.MaxFret)
	synthesizer := synth.New(synth.RecorderFactory(rec), clock, synth.WithView(board))
	return player.NewSession(chord.Default(), fretboard.NewRenderer(board), synthesizer), board, clock, rec
}

func TestPlayChord(t *testing.T) {
	session, board, clock, rec := newSession()
	length, err := play(session, []string{"Am"})
	require.NoError(t, err)
	clock.Advance(time.Second)

	assert.Equal(t, 200*time.Millisecond+constants.ToneDuration, length)
	assert.Equal(t, "A Minor chord", board.Label())
	assert.Len(t, rec.Notes(), 5)
}

func TestPlayString(t *testing.T) {
	session, _, _, rec := newSession()

	length, err := play(session, []string{"2"})
	require.NoError(t, err)
	assert.Equal(t, constants.ToneDuration, length)

	_, err = play(session, []string{"1", "7"})
	require.NoError(t, err)

	notes := rec.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, synth.Note{String: 2, Fret: 0}, synth.Note{String: notes[0].String, Fret: notes[0].Fret})
	assert.Equal(t, synth.Note{String: 1, Fret: 7}, synth.Note{String: notes[1].String, Fret: notes[1].Fret})
}

func TestPlayRejects(t *testing.T) {
	session, _, _, rec := newSession()
	for _, args := range [][]string{{"Zmaj7"}, {"6"}, {"-1"}, {"0", "13"}, {"0", "x"}} {
		_, err := play(session, args)
		assert.Error(t, err, "%v", args)
	}
	assert.Empty(t, rec.Notes())
}

func TestFingering(t *testing.T) {
	c, ok := chord.Default().Lookup("C")
	require.True(t, ok)
	assert.Equal(t, "0 1 0 2 3 x", fingering(c))
}

func TestListenerIdentifiesHeldChord(t *testing.T) {
	cases := []struct {
		name  string
		keys  []uint8
		label string
	}{
		// C3 E3 G3 C4 E4, an open C voicing
		{"C", []uint8{48, 52, 55, 60, 64}, "C Major chord"},
		// E2 B2 E3 G3 B3 E4
		{"Em", []uint8{40, 47, 52, 55, 59, 64}, "E Minor chord"},
		// A2 E3 A3 C4 E4
		{"Am", []uint8{45, 52, 57, 60, 64}, "A Minor chord"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			board := fretboard.NewBoard(constants.MaxFret)
			rec := synth.NewRecorder()
			synthesizer := synth.New(synth.RecorderFactory(rec), schedule.NewManual(), synth.WithView(board))
			l := newListener(chord.Default(), fretboard.NewRenderer(board), synthesizer)
			var pending func()
			l.debounce = func(f func()) { pending = f }
			printed := 0
			l.print = func() { printed++ }

			for _, key := range tc.keys {
				l.handle(gomidi.NoteOn(0, key, 100), 0)
			}
			require.NotNil(t, pending)
			pending()

			assert := assert.New(t)
			assert.Len(rec.Notes(), len(tc.keys))
			assert.Equal(tc.label, board.Label())
			assert.Equal(1, printed)

			for _, key := range tc.keys {
				l.handle(gomidi.NoteOff(0, key), 0)
			}
			assert.Empty(l.held)
		})
	}
}

func TestListenerIgnoresUnknownShapes(t *testing.T) {
	board := fretboard.NewBoard(constants.MaxFret)
	l := newListener(chord.Default(), fretboard.NewRenderer(board), synth.New(synth.RecorderFactory(synth.NewRecorder()), schedule.NewManual()))
	l.debounce = func(f func()) { f() }
	printed := 0
	l.print = func() { printed++ }

	l.handle(gomidi.NoteOn(0, 61, 100), 0)
	assert.Equal(t, 0, printed)
	assert.Equal(t, "", board.Label())
}

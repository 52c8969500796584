package synth

import (
	"errors"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequency(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(82.41, Frequency(0, 0))
	assert.Equal(329.63, Frequency(5, 0))
	assert.InDelta(164.82, Frequency(0, 12), 1e-9)
	assert.InDelta(110.0, Frequency(0, 5), 0.05)
}

func TestGainEnvelope(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0.3, Gain(0))
	assert.InDelta(0.01, Gain(1500*time.Millisecond), 1e-12)
	assert.InDelta(0.3*0.18257418583505536, Gain(750*time.Millisecond), 1e-9)
	assert.Greater(Gain(100*time.Millisecond), Gain(200*time.Millisecond))
}

func TestToneLastsOneAndAHalfSeconds(t *testing.T) {
	sr := beep.SampleRate(8000)
	tone := NewTone(sr, 440)

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := tone.Stream(buf)
		if !ok {
			break
		}
		for _, s := range buf[:n] {
			if s[0] > peak {
				peak = s[0]
			}
			assert.Equal(t, s[0], s[1])
		}
		total += n
	}

	assert := assert.New(t)
	assert.Equal(12000, total)
	assert.Equal(tone.Len(), total)
	assert.LessOrEqual(peak, 0.3)
	assert.Greater(peak, 0.25)
	assert.NoError(tone.Err())
}

func TestTriangle(t *testing.T) {
	assert := assert.New(t)
	assert.InDelta(0, triangle(0), 1e-12)
	assert.InDelta(1, triangle(0.25), 1e-12)
	assert.InDelta(0, triangle(0.5), 1e-12)
	assert.InDelta(-1, triangle(0.75), 1e-12)
	assert.InDelta(triangle(0.1), triangle(1.1), 1e-12)
}

func newTestSynth() (*Synthesizer, *Recorder, *schedule.Manual, *fretboard.Board) {
	rec := NewRecorder()
	clock := schedule.NewManual()
	board := fretboard.NewBoard(12)
	s := New(RecorderFactory(rec), clock, WithView(board), WithSampleRate(8000))
	return s, rec, clock, board
}

func TestStrumC(t *testing.T) {
	s, rec, clock, _ := newTestSynth()
	c, ok := chord.Default().Lookup("C")
	require.True(t, ok)

	events := s.Strum(c)

	assert := assert.New(t)
	assert.Equal([]model.PlaybackEvent{
		{String: 0, Fret: 0, Offset: 0},
		{String: 1, Fret: 1, Offset: 50 * time.Millisecond},
		{String: 2, Fret: 0, Offset: 100 * time.Millisecond},
		{String: 3, Fret: 2, Offset: 150 * time.Millisecond},
		{String: 4, Fret: 3, Offset: 200 * time.Millisecond},
	}, events)
	assert.Equal([]time.Duration{
		0, 50 * time.Millisecond, 100 * time.Millisecond, 150 * time.Millisecond, 200 * time.Millisecond,
	}, clock.Pending())
	assert.Empty(rec.Notes(), "nothing plays before the clock runs")

	clock.Advance(200 * time.Millisecond)
	notes := rec.Notes()
	require.Len(t, notes, 5)
	for i, n := range notes {
		assert.Equal(events[i].String, n.String)
		assert.Equal(events[i].Fret, n.Fret)
		assert.NotEqual(5, n.String)
		assert.Equal(Frequency(n.String, n.Fret), n.Tone.Frequency())
	}
}

func TestStrumMutedSlotsKeepTiming(t *testing.T) {
	d, _ := chord.Default().Lookup("D")
	events := PlanStrum(d)

	assert := assert.New(t)
	assert.Len(events, 4)
	assert.Equal(150*time.Millisecond, events[3].Offset)
}

func TestStrumPulsesOnlySoundedStrings(t *testing.T) {
	s, _, clock, board := newTestSynth()
	c, _ := chord.Default().Lookup("C")
	s.Strum(c)

	clock.Advance(200 * time.Millisecond)
	assert := assert.New(t)
	for i := 0; i < 5; i++ {
		assert.True(board.Pulsing(i), "string %d", i)
	}
	assert.False(board.Pulsing(5))

	// string 0 plucked at 0ms, string 4 at 200ms
	clock.Advance(300 * time.Millisecond)
	assert.False(board.Pulsing(0))
	assert.True(board.Pulsing(4))

	clock.Advance(200 * time.Millisecond)
	assert.False(board.Pulsing(4))
}

func TestPluckPlaysImmediately(t *testing.T) {
	s, rec, clock, board := newTestSynth()
	s.Pluck(2, 3)

	assert := assert.New(t)
	require.Len(t, rec.Notes(), 1)
	assert.True(board.Pulsing(2))
	assert.Equal([]time.Duration{500 * time.Millisecond}, clock.Pending())
}

func TestRapidPlucksOverlap(t *testing.T) {
	s, rec, clock, _ := newTestSynth()
	for i := 0; i < 3; i++ {
		s.Pluck(1, 0)
		clock.Advance(100 * time.Millisecond)
	}

	notes := rec.Notes()
	require.Len(t, notes, 3)
	assert := assert.New(t)
	for _, n := range notes {
		assert.Equal(1500*time.Millisecond, n.Tone.Duration())
	}
	assert.NotSame(notes[0].Tone, notes[1].Tone)
	assert.NotSame(notes[1].Tone, notes[2].Tone)
}

func TestPluckIgnoresBadInput(t *testing.T) {
	s, rec, _, _ := newTestSynth()
	s.Pluck(6, 0)
	s.Pluck(-1, 0)
	s.Pluck(0, -1)
	assert.Empty(t, rec.Notes())
}

func TestEngineBuiltOnce(t *testing.T) {
	calls := 0
	rec := NewRecorder()
	s := New(func() (Engine, error) {
		calls++
		return rec, nil
	}, schedule.NewManual())

	assert := assert.New(t)
	assert.Equal(0, calls, "engine is lazy")
	s.Init()
	s.Init()
	s.Pluck(0, 0)
	assert.Equal(1, calls)
	assert.Len(rec.Notes(), 1)
}

func TestEngineFailureIsSilent(t *testing.T) {
	board := fretboard.NewBoard(12)
	s := New(func() (Engine, error) {
		return nil, errors.New("no audio device")
	}, schedule.NewManual(), WithView(board))

	s.Pluck(0, 0)
	assert.True(t, board.Pulsing(0))
}

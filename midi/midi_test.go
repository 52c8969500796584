package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchOf(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(40), PitchOf(0, 0))
	assert.Equal(uint8(52), PitchOf(0, 12))
	assert.Equal(uint8(64), PitchOf(5, 0))
}

func TestLocate(t *testing.T) {
	cases := []struct {
		pitch  uint8
		string int
		fret   int
		ok     bool
	}{
		{40, 0, 0, true},
		{44, 0, 4, true},
		{45, 0, 5, true},
		{52, 0, 12, true},
		{53, 1, 8, true},
		{76, 5, 12, true},
		{39, 0, 0, false},
		{77, 0, 0, false},
	}
	for _, c := range cases {
		s, f, ok := Locate(c.pitch)
		assert.Equal(t, c.ok, ok, "pitch %d", c.pitch)
		if c.ok {
			assert.Equal(t, c.string, s, "pitch %d", c.pitch)
			assert.Equal(t, c.fret, f, "pitch %d", c.pitch)
		}
	}
}

func TestTicks(t *testing.T) {
	assert.Equal(t, uint32(96), ticks(50*time.Millisecond))
	assert.Equal(t, uint32(960), ticks(500*time.Millisecond))
}

func TestWriteAndReadStrum(t *testing.T) {
	c, ok := chord.Default().Lookup("G")
	require.True(t, ok)
	events := synth.PlanStrum(c)

	var buf bytes.Buffer
	require.NoError(t, WriteStrum(&buf, events))

	got, err := ReadStrum(&buf)
	require.NoError(t, err)

	// pitches are found again on the lowest string that can play them
	require.Len(t, got, len(events))
	for i, e := range events {
		assert.Equal(t, PitchOf(e.String, e.Fret), PitchOf(got[i].String, got[i].Fret))
		assert.Equal(t, e.Offset, got[i].Offset)
	}
}

func TestReadMidiFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "em.mid")
	f, err := os.Create(path)
	require.NoError(t, err)
	em, _ := chord.Default().Lookup("Em")
	require.NoError(t, WriteStrum(f, synth.PlanStrum(em)))
	require.NoError(t, f.Close())

	got, err := ReadMidiFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 6)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)
}

func TestWriteEmptyStrum(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStrum(&buf, []model.PlaybackEvent{}))
	got, err := ReadStrum(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSortTimelineReleasesBeforeRestrike(t *testing.T) {
	timeline := []noteEvent{
		{at: 10, key: 40, on: true},
		{at: 5, key: 41, on: true},
		{at: 10, key: 40, on: false},
		{at: 10, key: 45, on: true},
	}
	sortTimeline(timeline)

	assert.Equal(t, []noteEvent{
		{at: 5, key: 41, on: true},
		{at: 10, key: 40, on: false},
		{at: 10, key: 40, on: true},
		{at: 10, key: 45, on: true},
	}, timeline)
}

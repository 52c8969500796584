package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/schedule"
	"github.com/jsphweid/fretboard/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel() (*Model, *schedule.Manual, *synth.Recorder) {
	clock := schedule.NewManual()
	rec := synth.NewRecorder()
	return New(chord.Default(), synth.RecorderFactory(rec), clock), clock, rec
}

func TestModelIsAView(t *testing.T) {
	var _ fretboard.View = (*Model)(nil)
}

func TestChordKeys(t *testing.T) {
	m, clock, rec := newModel()

	m.Update(keyMsg("1"))
	clock.Advance(time.Second)

	assert := assert.New(t)
	current, ok := m.Session().Current()
	require.True(t, ok)
	assert.Equal("C", current.ID)
	assert.Equal("C Major chord", m.Label())
	assert.Len(m.Markers(), 6)
	assert.Len(rec.Notes(), 5)

	m.Update(keyMsg("0"))
	current, _ = m.Session().Current()
	assert.Equal("Dm", current.ID)
	status, _ := m.Marker(4, 0)
	assert.Equal(model.MarkerMuted, status)
}

func TestStringKeys(t *testing.T) {
	m, clock, rec := newModel()
	m.Update(keyMsg("h"))

	notes := rec.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, 5, notes[0].String)
	assert.Equal(t, 0, notes[0].Fret)
	assert.True(t, m.Pulsing(5))

	clock.Advance(time.Second)
	assert.False(t, m.Pulsing(5))

	m.Update(keyMsg("5"))
	clock.Advance(time.Second)
	m.Update(keyMsg("a"))
	notes = rec.Notes()
	assert.Equal(t, 3, notes[len(notes)-1].Fret, "G holds string 0 at the third fret")
}

func TestClearKey(t *testing.T) {
	m, _, _ := newModel()
	m.Update(keyMsg("3"))
	m.Update(keyMsg("c"))

	_, ok := m.Session().Current()
	assert.False(t, ok)
	assert.Empty(t, m.Markers())
	assert.Equal(t, "", m.Label())
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel()
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(keyMsg("x"))
	assert.Nil(t, cmd)
}

func TestTickKeepsTicking(t *testing.T) {
	m, _, _ := newModel()
	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.NotNil(t, m.Init())
}

func TestView(t *testing.T) {
	m, _, _ := newModel()
	m.Update(keyMsg("8"))
	out := m.View()

	assert := assert.New(t)
	assert.Contains(out, "A Minor chord")
	assert.Contains(out, "●")
	assert.Contains(out, "8 Am")
	assert.Contains(out, "q quit")
}

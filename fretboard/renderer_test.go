package fretboard

import (
	"testing"

	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarksOneSlotPerString(t *testing.T) {
	for _, c := range chord.Default().All() {
		t.Run(c.ID, func(t *testing.T) {
			board := NewBoard(constants.MaxFret)
			updates := NewRenderer(board).Render(c)

			assert := assert.New(t)
			assert.Len(updates, 6)
			assert.ElementsMatch(updates, board.Markers())

			for _, p := range c.Positions {
				if p.Fret == -1 {
					status, _ := board.Marker(p.String, 0)
					assert.Equal(model.MarkerMuted, status)
				} else {
					status, _ := board.Marker(p.String, p.Fret)
					assert.Equal(model.MarkerActive, status)
				}
			}
			assert.Equal(c.Name+" chord", board.Label())
		})
	}
}

func TestRenderClearsPreviousChord(t *testing.T) {
	catalog := chord.Default()
	board := NewBoard(constants.MaxFret)
	r := NewRenderer(board)

	for _, first := range catalog.All() {
		for _, second := range catalog.All() {
			r.Render(first)
			updates := r.Render(second)
			assert.ElementsMatch(t, updates, board.Markers(), "%s then %s", first.ID, second.ID)
		}
	}
}

func TestRenderSameChordTwice(t *testing.T) {
	c, ok := chord.Default().Lookup("G")
	require.True(t, ok)
	board := NewBoard(constants.MaxFret)
	r := NewRenderer(board)

	r.Render(c)
	board.SetMarker(2, 7, model.MarkerActive)
	r.Render(c)

	status, _ := board.Marker(2, 7)
	assert.Equal(t, model.MarkerInactive, status)
	assert.Len(t, board.Markers(), 6)
}

func TestRenderSkipsMissingSlots(t *testing.T) {
	// a board rendering only the open and first two frets
	board := NewBoard(2)
	b, ok := chord.Default().Lookup("B")
	require.True(t, ok)

	updates := NewRenderer(board).Render(b)

	assert := assert.New(t)
	// B is 2,4,4,4,x,x: the three fret-4 slots don't exist
	assert.Equal([]model.FretMarker{
		{String: 0, Fret: 2, Status: model.MarkerActive},
		{String: 4, Fret: 0, Status: model.MarkerMuted},
		{String: 5, Fret: 0, Status: model.MarkerMuted},
	}, updates)
	assert.Equal("B Major chord", board.Label())
}

func TestClear(t *testing.T) {
	board := NewBoard(constants.MaxFret)
	r := NewRenderer(board)
	c, _ := chord.Default().Lookup("D")
	r.Render(c)
	r.Clear()
	assert.Empty(t, board.Markers())
}

func TestBoardBounds(t *testing.T) {
	board := NewBoard(constants.MaxFret)

	assert := assert.New(t)
	assert.False(board.SetMarker(6, 0, model.MarkerActive))
	assert.False(board.SetMarker(-1, 0, model.MarkerActive))
	assert.False(board.SetMarker(0, 13, model.MarkerActive))
	assert.True(board.SetMarker(0, 12, model.MarkerActive))

	board.SetPulse(9, true)
	assert.False(board.Pulsing(9))
	board.SetPulse(3, true)
	assert.True(board.Pulsing(3))
}

func TestBoardString(t *testing.T) {
	board := NewBoard(2)
	c, _ := chord.Default().Lookup("Am")
	NewRenderer(board).Render(c)
	board.SetPulse(0, true)

	s := board.String()
	assert := assert.New(t)
	assert.Contains(s, "A Minor chord\n")
	assert.Contains(s, "e x|---|---|\n")
	assert.Contains(s, "E~o|---|---|\n")
	assert.Contains(s, "A  |-●-|---|\n")
}

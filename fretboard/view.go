package fretboard

import "github.com/jsphweid/fretboard/model"

// View is whatever surface shows the fretboard: a browser page, a terminal,
// or an in-memory Board.
type View interface {
	// SetMarker reports false when the view has no slot at (string, fret).
	SetMarker(stringIndex, fret int, status model.MarkerStatus) bool
	ClearMarkers()
	SetPulse(stringIndex int, on bool)
	SetLabel(text string)
}

package fretboard

import (
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/model"
)

type Renderer struct {
	view View
}

func NewRenderer(view View) *Renderer {
	return &Renderer{view: view}
}

// Render clears the view and marks the chord's fingering. Muted strings
// are marked on their open slot. Slots the view doesn't have are skipped
// and left out of the returned updates.
func (r *Renderer) Render(c model.Chord) []model.FretMarker {
	r.view.ClearMarkers()

	var updates []model.FretMarker
	for _, p := range c.Positions {
		m := model.FretMarker{String: p.String, Fret: p.Fret, Status: model.MarkerActive}
		if p.Muted() {
			m.Fret = constants.OpenFret
			m.Status = model.MarkerMuted
		}
		if r.view.SetMarker(m.String, m.Fret, m.Status) {
			updates = append(updates, m)
		}
	}

	r.view.SetLabel(Label(c))
	return updates
}

func (r *Renderer) Clear() {
	r.view.ClearMarkers()
}

func Label(c model.Chord) string {
	return c.Name + " chord"
}

package web

import (
	"fmt"
	"html/template"
	"log"
	"strings"
	"sync"

	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/synth"
)

type markerData struct {
	String int
	Fret   int
	Status string
}

type stringData struct {
	Index   int
	Name    string
	Plucked bool
	Markers []markerData
}

type buttonData struct {
	ID     string
	Active bool
}

// pageView keeps the authoritative board in memory and mirrors every
// change to the browser as a patch.
type pageView struct {
	board     *fretboard.Board
	hub       *Hub
	templates *template.Template
	chords    []string

	mu       sync.Mutex
	selected string
}

func (v *pageView) SetMarker(stringIndex, fret int, status model.MarkerStatus) bool {
	if !v.board.SetMarker(stringIndex, fret, status) {
		return false
	}
	v.publish("marker", markerData{String: stringIndex, Fret: fret, Status: status.String()})
	return true
}

func (v *pageView) ClearMarkers() {
	v.board.ClearMarkers()
	var sb strings.Builder
	for s := 0; s < constants.NumStrings; s++ {
		for f := 0; f <= v.board.Frets(); f++ {
			v.execute(&sb, "marker", markerData{String: s, Fret: f, Status: model.MarkerInactive.String()})
		}
	}
	v.hub.Publish(Patch{Elements: sb.String()})
}

func (v *pageView) SetPulse(stringIndex int, on bool) {
	v.board.SetPulse(stringIndex, on)
	v.publish("string", stringData{Index: stringIndex, Plucked: on})
}

func (v *pageView) SetLabel(text string) {
	v.board.SetLabel(text)
	v.publish("label", text)
}

// SetSelected highlights the chord button for id and releases the rest.
// An empty id releases them all.
func (v *pageView) SetSelected(id string) {
	v.mu.Lock()
	v.selected = id
	v.mu.Unlock()

	var sb strings.Builder
	for _, b := range v.buttons() {
		v.execute(&sb, "chord-button", b)
	}
	v.hub.Publish(Patch{Elements: sb.String()})
}

func (v *pageView) buttons() []buttonData {
	v.mu.Lock()
	defer v.mu.Unlock()
	res := make([]buttonData, 0, len(v.chords))
	for _, id := range v.chords {
		res = append(res, buttonData{ID: id, Active: id == v.selected})
	}
	return res
}

func (v *pageView) publish(name string, data any) {
	var sb strings.Builder
	v.execute(&sb, name, data)
	if sb.Len() > 0 {
		v.hub.Publish(Patch{Elements: sb.String()})
	}
}

func (v *pageView) execute(sb *strings.Builder, name string, data any) {
	if err := v.templates.ExecuteTemplate(sb, name, data); err != nil {
		log.Printf("web: couldn't execute %s template: %s", name, err)
	}
}

// rows lays the board out for the page, high string on top.
func (v *pageView) rows() []stringData {
	var res []stringData
	for s := constants.NumStrings - 1; s >= 0; s-- {
		row := stringData{Index: s, Name: constants.StringNames[s], Plucked: v.board.Pulsing(s)}
		for f := 0; f <= v.board.Frets(); f++ {
			status, _ := v.board.Marker(s, f)
			row.Markers = append(row.Markers, markerData{String: s, Fret: f, Status: status.String()})
		}
		res = append(res, row)
	}
	return res
}

// browserEngine plays tones in the page by pointing an Audio element at
// the tone's rendered WAV.
type browserEngine struct {
	hub *Hub
}

func (e *browserEngine) Play(n synth.Note) {
	e.hub.Publish(Patch{Script: fmt.Sprintf("new Audio('/tones/%d/%d.wav').play()", n.String, n.Fret)})
}

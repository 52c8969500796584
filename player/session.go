// Package player holds one user's fretboard: the chord they last picked and
// the renderer and synthesizer their actions drive.
package player

import (
	"sync"

	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/synth"
)

type Session struct {
	catalog  *chord.Catalog
	renderer *fretboard.Renderer
	synth    *synth.Synthesizer

	mu      sync.Mutex
	current *model.Chord
}

func NewSession(catalog *chord.Catalog, renderer *fretboard.Renderer, synthesizer *synth.Synthesizer) *Session {
	return &Session{
		catalog:  catalog,
		renderer: renderer,
		synth:    synthesizer,
	}
}

// SelectChord shows and strums a chord. Unknown ids are ignored and leave
// the current selection alone.
func (s *Session) SelectChord(id string) bool {
	c, ok := s.catalog.Lookup(id)
	if !ok {
		return false
	}

	s.mu.Lock()
	s.current = &c
	s.mu.Unlock()

	s.renderer.Render(c)
	s.synth.Strum(c)
	return true
}

// PlayString plucks a string the way a bare click on it should sound.
func (s *Session) PlayString(stringIndex int) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	s.synth.Pluck(stringIndex, ResolveFret(current, stringIndex))
}

// PlayMarker plucks exactly the clicked position.
func (s *Session) PlayMarker(stringIndex, fret int) {
	s.synth.Pluck(stringIndex, fret)
}

// Clear forgets the selection and wipes the markers.
func (s *Session) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.renderer.Clear()
}

func (s *Session) Current() (model.Chord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.Chord{}, false
	}
	return *s.current, true
}

func (s *Session) Catalog() *chord.Catalog {
	return s.catalog
}

// ResolveFret picks the fret for a bare string click: the selected chord's
// fret when it sounds that string, the open string otherwise.
func ResolveFret(current *model.Chord, stringIndex int) int {
	if current == nil {
		return constants.OpenFret
	}
	p, ok := current.Position(stringIndex)
	if !ok || p.Muted() {
		return constants.OpenFret
	}
	return p.Fret
}

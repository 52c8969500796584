package fretboard

import (
	"strings"
	"sync"

	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/model"
)

// Board is an in-memory View. Timer callbacks touch it from other
// goroutines, so every access is locked.
type Board struct {
	mu      sync.Mutex
	frets   int
	markers [constants.NumStrings][]model.MarkerStatus
	pulses  [constants.NumStrings]bool
	label   string
}

// NewBoard returns a board with marker slots for frets 0 through frets.
func NewBoard(frets int) *Board {
	b := &Board{frets: frets}
	for s := range b.markers {
		b.markers[s] = make([]model.MarkerStatus, frets+1)
	}
	return b
}

func (b *Board) Frets() int {
	return b.frets
}

func (b *Board) SetMarker(stringIndex, fret int, status model.MarkerStatus) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.has(stringIndex, fret) {
		return false
	}
	b.markers[stringIndex][fret] = status
	return true
}

func (b *Board) ClearMarkers() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.markers {
		for f := range b.markers[s] {
			b.markers[s][f] = model.MarkerInactive
		}
	}
}

func (b *Board) SetPulse(stringIndex int, on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if stringIndex < 0 || stringIndex >= constants.NumStrings {
		return
	}
	b.pulses[stringIndex] = on
}

func (b *Board) SetLabel(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = text
}

func (b *Board) Marker(stringIndex, fret int) (model.MarkerStatus, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.has(stringIndex, fret) {
		return model.MarkerInactive, false
	}
	return b.markers[stringIndex][fret], true
}

// Markers lists every marker that is not inactive, string by string.
func (b *Board) Markers() []model.FretMarker {
	b.mu.Lock()
	defer b.mu.Unlock()
	var res []model.FretMarker
	for s := range b.markers {
		for f, status := range b.markers[s] {
			if status != model.MarkerInactive {
				res = append(res, model.FretMarker{String: s, Fret: f, Status: status})
			}
		}
	}
	return res
}

func (b *Board) Pulsing(stringIndex int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if stringIndex < 0 || stringIndex >= constants.NumStrings {
		return false
	}
	return b.pulses[stringIndex]
}

func (b *Board) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

// String draws the board high string on top, the way a player looks down at the neck.
//
//	e x|---|---|
//	B o|-●-|---|
func (b *Board) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	if b.label != "" {
		sb.WriteString(b.label)
		sb.WriteString("\n")
	}
	for s := constants.NumStrings - 1; s >= 0; s-- {
		sb.WriteString(constants.StringNames[s])
		if b.pulses[s] {
			sb.WriteString("~")
		} else {
			sb.WriteString(" ")
		}
		for f, status := range b.markers[s] {
			if f == 0 {
				switch status {
				case model.MarkerMuted:
					sb.WriteString("x")
				case model.MarkerActive:
					sb.WriteString("o")
				default:
					sb.WriteString(" ")
				}
				sb.WriteString("|")
				continue
			}
			if status == model.MarkerActive {
				sb.WriteString("-●-|")
			} else {
				sb.WriteString("---|")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Board) has(stringIndex, fret int) bool {
	if stringIndex < 0 || stringIndex >= constants.NumStrings {
		return false
	}
	return fret >= 0 && fret <= b.frets
}

package model

type Notes = []uint8

// StringPosition is one string's instruction inside a chord.
// Fret -1 means the string is not sounded, 0 is the open string.
type StringPosition struct {
	String int `json:"string" db:"string_index"`
	Fret   int `json:"fret" db:"fret"`
}

type Chord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Harmony is the chord's pitch class set as a chord key, e.g. "0-4-7"
	// for C major. Empty means the pitch classes the fingering sounds.
	Harmony   string           `json:"harmony,omitempty"`
	Positions []StringPosition `json:"positions"`
}

// Muted reports whether the position is left unsounded.
func (p StringPosition) Muted() bool {
	return p.Fret < 0
}

// Position returns the entry for the given string index, if the chord has one.
func (c Chord) Position(stringIndex int) (StringPosition, bool) {
	for _, p := range c.Positions {
		if p.String == stringIndex {
			return p, true
		}
	}
	return StringPosition{}, false
}

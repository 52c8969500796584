package chord

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/util"
	"github.com/pkg/errors"
)

// Catalog is an immutable registry of validated chords.
type Catalog struct {
	ids    []string
	chords map[string]model.Chord

	// harmony key -> chord id, first chord in table order wins
	byKey map[string]string
}

func NewCatalog(chords []model.Chord) (*Catalog, error) {
	c := &Catalog{
		chords: make(map[string]model.Chord, len(chords)),
		byKey:  make(map[string]string),
	}
	for _, ch := range chords {
		if err := Validate(ch); err != nil {
			return nil, err
		}
		if _, ok := c.chords[ch.ID]; ok {
			return nil, errors.Errorf("chord %q is defined twice", ch.ID)
		}

		positions := make([]model.StringPosition, len(ch.Positions))
		copy(positions, ch.Positions)
		ch.Positions = positions

		c.ids = append(c.ids, ch.ID)
		c.chords[ch.ID] = ch

		key, err := Harmony(ch)
		if err != nil {
			return nil, err
		}
		if _, ok := c.byKey[key]; !ok {
			c.byKey[key] = ch.ID
		}
	}
	return c, nil
}

// Validate checks that a chord has one position for each string and that every fret is in range.
func Validate(c model.Chord) error {
	if c.ID == "" {
		return errors.New("chord has an empty id")
	}
	if c.Name == "" {
		return errors.Errorf("chord %q has an empty name", c.ID)
	}
	if len(c.Positions) != constants.NumStrings {
		return errors.Errorf("chord %q has %d positions, want %d", c.ID, len(c.Positions), constants.NumStrings)
	}
	var seen [constants.NumStrings]bool
	for _, p := range c.Positions {
		if p.String < 0 || p.String >= constants.NumStrings {
			return errors.Errorf("chord %q references string %d", c.ID, p.String)
		}
		if seen[p.String] {
			return errors.Errorf("chord %q lists string %d twice", c.ID, p.String)
		}
		seen[p.String] = true
		if p.Fret < constants.MutedFret || p.Fret > constants.MaxFret {
			return errors.Errorf("chord %q has fret %d on string %d", c.ID, p.Fret, p.String)
		}
	}
	if c.Harmony != "" {
		if _, err := ParseChordKey(c.Harmony); err != nil {
			return errors.Wrapf(err, "chord %q has a bad harmony", c.ID)
		}
	}
	return nil
}

// Harmony returns the key a chord is identified by: its declared harmony,
// or the pitch classes its fingering sounds when it declares none.
func Harmony(c model.Chord) (string, error) {
	if c.Harmony == "" {
		return CreateChordKey(PitchClasses(Notes(c))), nil
	}
	classes, err := ParseChordKey(c.Harmony)
	if err != nil {
		return "", errors.Wrapf(err, "chord %q has a bad harmony", c.ID)
	}
	return CreateChordKey(util.Dedupe(classes)), nil
}

// Lookup returns the chord with the given id. Callers treat a miss as a no-op.
func (c *Catalog) Lookup(id string) (model.Chord, bool) {
	ch, ok := c.chords[id]
	return ch, ok
}

// IDs lists chord ids in table order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// All returns every chord in table order.
func (c *Catalog) All() []model.Chord {
	res := make([]model.Chord, 0, len(c.ids))
	for _, id := range c.ids {
		res = append(res, c.chords[id])
	}
	return res
}

func (c *Catalog) Len() int {
	return len(c.ids)
}

// Identify finds the chord whose harmony is exactly the pitch classes of the given notes.
func (c *Catalog) Identify(notes model.Notes) (model.Chord, bool) {
	if len(notes) == 0 {
		return model.Chord{}, false
	}
	id, ok := c.byKey[CreateChordKey(PitchClasses(notes))]
	if !ok {
		return model.Chord{}, false
	}
	return c.chords[id], true
}

// Notes returns the MIDI pitches a chord sounds, in catalog order. Muted strings are left out.
func Notes(c model.Chord) model.Notes {
	var notes model.Notes
	for _, p := range c.Positions {
		if p.Muted() {
			continue
		}
		notes = append(notes, constants.OpenStringPitches[p.String]+uint8(p.Fret))
	}
	return notes
}

func PitchClasses(notes model.Notes) model.Notes {
	classes := make(model.Notes, 0, len(notes))
	for _, n := range notes {
		classes = append(classes, n%12)
	}
	return util.Dedupe(classes)
}

// ParseChordKey reads a pitch class key back. Every class must be 0..11.
func ParseChordKey(key string) (model.Notes, error) {
	var res model.Notes
	for _, part := range strings.Split(key, "-") {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 11 {
			return nil, errors.Errorf("bad pitch class %q in %q", part, key)
		}
		res = append(res, uint8(n))
	}
	return res, nil
}

func CreateChordKey(notes model.Notes) string {
	sorted := make(model.Notes, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

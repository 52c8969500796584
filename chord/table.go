package chord

import "github.com/jsphweid/fretboard/model"

func frets(fs ...int) []model.StringPosition {
	res := make([]model.StringPosition, len(fs))
	for i, f := range fs {
		res[i] = model.StringPosition{String: i, Fret: f}
	}
	return res
}

func major(root uint8) string {
	return CreateChordKey(model.Notes{root, (root + 4) % 12, (root + 7) % 12})
}

func minor(root uint8) string {
	return CreateChordKey(model.Notes{root, (root + 3) % 12, (root + 7) % 12})
}

// Table is the built-in chord table. Positions are listed string 0 first.
var Table = []model.Chord{
	{ID: "C", Name: "C Major", Harmony: major(0), Positions: frets(0, 1, 0, 2, 3, -1)},
	{ID: "D", Name: "D Major", Harmony: major(2), Positions: frets(2, 3, 2, 0, -1, -1)},
	{ID: "E", Name: "E Major", Harmony: major(4), Positions: frets(0, 2, 2, 1, 0, 0)},
	{ID: "F", Name: "F Major", Harmony: major(5), Positions: frets(1, 3, 3, 2, 1, 1)},
	{ID: "G", Name: "G Major", Harmony: major(7), Positions: frets(3, 2, 0, 0, 0, 3)},
	{ID: "A", Name: "A Major", Harmony: major(9), Positions: frets(0, 0, 2, 2, 2, -1)},
	{ID: "B", Name: "B Major", Harmony: major(11), Positions: frets(2, 4, 4, 4, -1, -1)},
	{ID: "Am", Name: "A Minor", Harmony: minor(9), Positions: frets(0, 1, 2, 2, 0, -1)},
	{ID: "Em", Name: "E Minor", Harmony: minor(4), Positions: frets(0, 2, 2, 0, 0, 0)},
	{ID: "Dm", Name: "D Minor", Harmony: minor(2), Positions: frets(1, 3, 2, 0, -1, -1)},
}

// Default returns a catalog of the built-in table. The table is validated
// at init, so this never fails.
func Default() *Catalog {
	return defaultCatalog
}

var defaultCatalog = mustCatalog(Table)

func mustCatalog(chords []model.Chord) *Catalog {
	c, err := NewCatalog(chords)
	if err != nil {
		panic("invalid built-in chord table: " + err.Error())
	}
	return c
}

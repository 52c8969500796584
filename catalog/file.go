package catalog

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/fretboard/model"
	"github.com/pkg/errors"
)

func LoadFile(path string) ([]model.Chord, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read catalog file")
	}
	var chords []model.Chord
	if err := json.Unmarshal(dat, &chords); err != nil {
		return nil, errors.Wrapf(err, "could not decode %s", path)
	}
	return chords, nil
}

func SaveFile(path string, chords []model.Chord) error {
	dat, err := json.MarshalIndent(chords, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode catalog")
	}
	return errors.Wrap(os.WriteFile(path, dat, 0644), "could not write catalog file")
}

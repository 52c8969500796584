// Package catalog loads chord tables from wherever they are kept and turns
// them into a validated chord.Catalog.
//
// Sources are named by URL:
//
//	builtin:                      the table compiled into the binary
//	file:///path/chords.json      a JSON file (a bare path ending in .json also works)
//	sqlite:///path/chords.db      a SQLite database
//	postgres://user@host/db       a Postgres database
//	dynamodb://table              a DynamoDB table (dynamodb: alone uses CATALOG_TABLE)
package catalog

import (
	"net/url"
	"strings"

	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/db"
	"github.com/jsphweid/fretboard/model"
	"github.com/pkg/errors"
)

func Open(source string) (*chord.Catalog, error) {
	chords, err := Load(source)
	if err != nil {
		return nil, err
	}
	c, err := chord.NewCatalog(chords)
	return c, errors.Wrapf(err, "invalid catalog %s", source)
}

// Load reads the raw chord list from a source without validating it.
func Load(source string) ([]model.Chord, error) {
	if source == "" || source == "builtin:" {
		return chord.Default().All(), nil
	}
	if strings.HasSuffix(source, ".json") && !strings.Contains(source, "://") {
		return LoadFile(source)
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, errors.Wrapf(err, "bad catalog url %q", source)
	}
	switch u.Scheme {
	case "file":
		return LoadFile(u.Path)
	case "sqlite", "sqlite3":
		return loadSQL("sqlite3", sqlitePath(u))
	case "postgres", "postgresql":
		return loadSQL("postgres", source)
	case "dynamodb":
		client, err := db.Connect(table(u))
		if err != nil {
			return nil, err
		}
		return client.GetChords()
	default:
		return nil, errors.Errorf("unsupported catalog scheme %q", u.Scheme)
	}
}

// Save writes chords into a writable source, replacing what is there.
func Save(source string, chords []model.Chord) error {
	if strings.HasSuffix(source, ".json") && !strings.Contains(source, "://") {
		return SaveFile(source, chords)
	}
	u, err := url.Parse(source)
	if err != nil {
		return errors.Wrapf(err, "bad catalog url %q", source)
	}
	switch u.Scheme {
	case "file":
		return SaveFile(u.Path, chords)
	case "sqlite", "sqlite3":
		return saveSQL("sqlite3", sqlitePath(u), chords)
	case "postgres", "postgresql":
		return saveSQL("postgres", source, chords)
	case "dynamodb":
		client, err := db.Connect(table(u))
		if err != nil {
			return err
		}
		return client.PutChords(chords)
	default:
		return errors.Errorf("cannot write to catalog scheme %q", u.Scheme)
	}
}

// sqlitePath accepts both sqlite:///abs/path and sqlite://relative/path.
func sqlitePath(u *url.URL) string {
	return u.Host + u.Path
}

func table(u *url.URL) string {
	if u.Host == "" {
		return constants.GetCatalogTable()
	}
	return u.Host
}

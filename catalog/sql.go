package catalog

import (
	"github.com/jmoiron/sqlx"
	"github.com/jsphweid/fretboard/model"
	"github.com/pkg/errors"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS chords (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		harmony  TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chord_positions (
		chord_id     TEXT NOT NULL REFERENCES chords(id),
		seq          INTEGER NOT NULL,
		string_index INTEGER NOT NULL,
		fret         INTEGER NOT NULL,
		PRIMARY KEY (chord_id, seq)
	)`,
}

type chordRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Harmony  string `db:"harmony"`
	Position int    `db:"position"`
}

type positionRow struct {
	ChordID string `db:"chord_id"`
	Seq     int    `db:"seq"`
	model.StringPosition
}

func Migrate(conn *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			return errors.Wrap(err, "could not create catalog schema")
		}
	}
	return nil
}

func loadSQL(driver, dsn string) ([]model.Chord, error) {
	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s catalog", driver)
	}
	defer conn.Close()
	return ReadChords(conn)
}

func saveSQL(driver, dsn string, chords []model.Chord) error {
	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return errors.Wrapf(err, "could not open %s catalog", driver)
	}
	defer conn.Close()
	if err := Migrate(conn); err != nil {
		return err
	}
	return WriteChords(conn, chords)
}

// ReadChords loads every chord ordered by table position, each chord's
// strings in their stored sequence.
func ReadChords(conn *sqlx.DB) ([]model.Chord, error) {
	var rows []chordRow
	if err := conn.Select(&rows, `SELECT id, name, harmony, position FROM chords ORDER BY position`); err != nil {
		return nil, errors.Wrap(err, "could not read chords")
	}
	var positions []positionRow
	err := conn.Select(&positions, `SELECT chord_id, seq, string_index, fret FROM chord_positions ORDER BY chord_id, seq`)
	if err != nil {
		return nil, errors.Wrap(err, "could not read chord positions")
	}

	byChord := make(map[string][]model.StringPosition)
	for _, p := range positions {
		byChord[p.ChordID] = append(byChord[p.ChordID], p.StringPosition)
	}

	res := make([]model.Chord, 0, len(rows))
	for _, r := range rows {
		res = append(res, model.Chord{ID: r.ID, Name: r.Name, Harmony: r.Harmony, Positions: byChord[r.ID]})
	}
	return res, nil
}

// WriteChords replaces the stored table in one transaction.
func WriteChords(conn *sqlx.DB, chords []model.Chord) error {
	tx, err := conn.Beginx()
	if err != nil {
		return errors.Wrap(err, "could not begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM chord_positions`); err != nil {
		return errors.Wrap(err, "could not clear chord positions")
	}
	if _, err := tx.Exec(`DELETE FROM chords`); err != nil {
		return errors.Wrap(err, "could not clear chords")
	}
	for i, c := range chords {
		row := chordRow{ID: c.ID, Name: c.Name, Harmony: c.Harmony, Position: i}
		_, err := tx.NamedExec(`INSERT INTO chords (id, name, harmony, position) VALUES (:id, :name, :harmony, :position)`, row)
		if err != nil {
			return errors.Wrapf(err, "could not insert chord %s", c.ID)
		}
		for seq, p := range c.Positions {
			prow := positionRow{ChordID: c.ID, Seq: seq, StringPosition: p}
			_, err := tx.NamedExec(`INSERT INTO chord_positions (chord_id, seq, string_index, fret)
				VALUES (:chord_id, :seq, :string_index, :fret)`, prow)
			if err != nil {
				return errors.Wrapf(err, "could not insert positions for %s", c.ID)
			}
		}
	}
	return errors.Wrap(tx.Commit(), "could not commit catalog")
}

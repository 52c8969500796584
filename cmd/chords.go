package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/fretboard/catalog"
	"github.com/jsphweid/fretboard/model"
	"github.com/spf13/cobra"
)

var seed string

func init() {
	chordsCmd.Flags().StringVar(&seed, "seed", "", "write the catalog to this source")
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords",
	Short: "Lists the chord catalog",
	Long: `Lists the chord catalog, frets from low E up. With --seed the catalog
is copied into another source, e.g. to load a database with the built-in
table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		if seed != "" {
			if err := catalog.Save(seed, c.All()); err != nil {
				return err
			}
			fmt.Printf("wrote %d chords to %s\n", c.Len(), seed)
			return nil
		}
		for _, ch := range c.All() {
			fmt.Printf("%-4s %-10s %s\n", ch.ID, ch.Name, fingering(ch))
		}
		return nil
	},
}

func fingering(c model.Chord) string {
	var frets []string
	for _, p := range c.Positions {
		if p.Muted() {
			frets = append(frets, "x")
		} else {
			frets = append(frets, fmt.Sprint(p.Fret))
		}
	}
	return strings.Join(frets, " ")
}

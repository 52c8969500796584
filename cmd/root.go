package cmd

import (
	"github.com/jsphweid/fretboard/catalog"
	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/constants"
	"github.com/spf13/cobra"
)

var catalogURL string

var rootCmd = &cobra.Command{
	Use:   "fretboard",
	Short: "An interactive guitar fretboard",
	Long: `Pick a chord to see its fingering and hear it strummed, or pluck
single strings and frets. Runs in the browser, in the terminal or from a
MIDI keyboard.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogURL, "catalog", constants.GetCatalogURL(),
		"chord catalog: builtin:, a .json file, sqlite://, postgres:// or dynamodb://")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func openCatalog() (*chord.Catalog, error) {
	return catalog.Open(catalogURL)
}

package cmd

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jsphweid/fretboard/schedule"
	"github.com/jsphweid/fretboard/synth"
	"github.com/jsphweid/fretboard/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Plays the fretboard in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		// the alt screen owns the terminal
		log.SetOutput(io.Discard)

		m := tui.New(c, synth.NewSpeakerEngine, schedule.Clock{})
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

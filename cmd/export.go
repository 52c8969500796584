package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/fretboard/midi"
	"github.com/jsphweid/fretboard/synth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(identifyCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <chord> <out.mid>",
	Short: "Writes a chord's strum to a MIDI file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		ch, ok := c.Lookup(args[0])
		if !ok {
			return errors.Errorf("no chord %q", args[0])
		}

		f, err := os.Create(args[1])
		if err != nil {
			return errors.Wrap(err, "couldn't create output")
		}
		defer f.Close()
		if err := midi.WriteStrum(f, synth.PlanStrum(ch)); err != nil {
			return err
		}
		fmt.Printf("wrote %s to %s\n", ch.Name, args[1])
		return nil
	},
}

var identifyCmd = &cobra.Command{
	Use:   "identify <file.mid>",
	Short: "Names the catalog chord a MIDI file sounds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		events, err := midi.ReadMidiFile(args[0])
		if err != nil {
			return err
		}

		var notes []uint8
		for _, e := range events {
			notes = append(notes, midi.PitchOf(e.String, e.Fret))
		}
		ch, ok := c.Identify(notes)
		if !ok {
			fmt.Println("no matching chord")
			return nil
		}
		fmt.Printf("%s (%s)\n", ch.Name, ch.ID)
		return nil
	},
}

package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/player"
	"github.com/jsphweid/fretboard/sample"
	"github.com/jsphweid/fretboard/schedule"
	"github.com/jsphweid/fretboard/synth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <chord> | <string> [fret]",
	Short: "Strums a chord or plucks a string on the speakers",
	Long: `Strums a chord from the catalog, or plucks a string (0 is low E).
Without a fret a string sounds open.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}
		engine, err := synth.NewSpeakerEngine()
		if err != nil {
			return errors.Wrap(err, "couldn't open audio output")
		}

		board := fretboard.NewBoard(constants.MaxFret)
		synthesizer := synth.New(func() (synth.Engine, error) {
			return engine, nil
		}, schedule.Clock{}, synth.WithView(board))
		session := player.NewSession(c, fretboard.NewRenderer(board), synthesizer)

		length, err := play(session, args)
		if err != nil {
			return err
		}
		fmt.Print(board.String())
		time.Sleep(length)
		return nil
	},
}

// play starts the sound and returns how long it will ring.
func play(session *player.Session, args []string) (time.Duration, error) {
	if c, ok := session.Catalog().Lookup(args[0]); ok {
		session.SelectChord(c.ID)
		return sample.Length(synth.PlanStrum(c)), nil
	}

	stringIndex, err := strconv.Atoi(args[0])
	if err != nil || stringIndex < 0 || stringIndex >= constants.NumStrings {
		return 0, errors.Errorf("%q is neither a chord nor a string", args[0])
	}
	if len(args) == 1 {
		session.PlayString(stringIndex)
		return constants.ToneDuration, nil
	}
	fret, err := strconv.Atoi(args[1])
	if err != nil || fret < 0 || fret > constants.MaxFret {
		return 0, errors.Errorf("no fret %q", args[1])
	}
	session.PlayMarker(stringIndex, fret)
	return constants.ToneDuration, nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/fretboard/sample"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <chord> <out.wav>",
	Short: "Writes a chord's strum to a WAV file",
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
		if err := sample.RenderStrum(f, ch); err != nil {
			return err
		}
		fmt.Printf("wrote %s to %s\n", ch.Name, args[1])
		return nil
	},
}

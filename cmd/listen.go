package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/midi"
	"github.com/jsphweid/fretboard/schedule"
	"github.com/jsphweid/fretboard/synth"
	"github.com/jsphweid/fretboard/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

const settle = 80 * time.Millisecond

var port int

func init() {
	listenCmd.Flags().IntVar(&port, "port", 0, "MIDI in port number")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Plays along with a MIDI keyboard",
	Long: `Plucks the lowest string that can sound each key pressed. Once the held
keys settle into a catalog chord its fingering is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog()
		if err != nil {
			return err
		}

		defer gomidi.CloseDriver()
		in, err := gomidi.InPort(port)
		if err != nil {
			return errors.Wrapf(err, "can't find midi in port %d", port)
		}

		board := fretboard.NewBoard(constants.MaxFret)
		synthesizer := synth.New(synth.NewSpeakerEngine, schedule.Clock{}, synth.WithView(board))
		l := newListener(c, fretboard.NewRenderer(board), synthesizer)
		l.print = func() { fmt.Print(board.String()) }

		stop, err := gomidi.ListenTo(in, l.handle)
		if err != nil {
			return errors.Wrap(err, "couldn't listen")
		}
		defer stop()

		fmt.Printf("listening on %s, ctrl+c to stop\n", in)
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		return nil
	},
}

type listener struct {
	catalog  *chord.Catalog
	renderer *fretboard.Renderer
	synth    *synth.Synthesizer
	debounce func(func())
	print    func()

	mu   sync.Mutex
	held map[uint8]bool
}

func newListener(c *chord.Catalog, renderer *fretboard.Renderer, synthesizer *synth.Synthesizer) *listener {
	return &listener{
		catalog:  c,
		renderer: renderer,
		synth:    synthesizer,
		debounce: debounce.New(settle),
		print:    func() {},
		held:     map[uint8]bool{},
	}
}

func (l *listener) handle(msg gomidi.Message, timestampms int32) {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		if s, f, ok := midi.Locate(key); ok {
			l.synth.Pluck(s, f)
		}
		l.mu.Lock()
		l.held[key] = true
		l.mu.Unlock()
		l.debounce(l.identify)
	case msg.GetNoteEnd(&ch, &key):
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}
}

// identify renders the held keys when they make up a catalog chord.
func (l *listener) identify() {
	l.mu.Lock()
	notes := util.GetKeys(l.held)
	l.mu.Unlock()

	c, ok := l.catalog.Identify(notes)
	if !ok {
		return
	}
	l.renderer.Render(c)
	l.print()
}

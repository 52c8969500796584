package synth

import (
	"log"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/jsphweid/fretboard/constants"
)

// Note is one pluck handed to an audio engine.
type Note struct {
	String int
	Fret   int
	Tone   *Tone
}

// Engine is the audio output. Play must not block and must let notes overlap.
type Engine interface {
	Play(n Note)
}

type EngineFactory func() (Engine, error)

type speakerEngine struct{}

var speakerInit struct {
	once sync.Once
	err  error
}

// NewSpeakerEngine opens the host's audio output. The device is opened once per process.
func NewSpeakerEngine() (Engine, error) {
	speakerInit.once.Do(func() {
		sr := beep.SampleRate(constants.SampleRate)
		speakerInit.err = speaker.Init(sr, sr.N(constants.StrumInterval))
	})
	if speakerInit.err != nil {
		return nil, speakerInit.err
	}
	return speakerEngine{}, nil
}

func (speakerEngine) Play(n Note) {
	speaker.Play(n.Tone)
}

// Recorder keeps every note it is asked to play. Tests and offline
// rendering use it in place of a speaker.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Play(n Note) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Note, len(r.notes))
	copy(res, r.notes)
	return res
}

// RecorderFactory always hands out the same recorder.
func RecorderFactory(r *Recorder) EngineFactory {
	return func() (Engine, error) {
		return r, nil
	}
}

type silentEngine struct{}

func (silentEngine) Play(Note) {}

func silentFallback(err error) Engine {
	log.Printf("synth: audio unavailable, continuing without sound: %v", err)
	return silentEngine{}
}

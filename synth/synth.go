package synth

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/schedule"
)

// Synthesizer turns plucks and strums into tones on an audio engine.
// The engine is built through the factory on the first pluck and kept
// for the synthesizer's lifetime.
type Synthesizer struct {
	newEngine  EngineFactory
	scheduler  schedule.Scheduler
	view       fretboard.View
	sampleRate beep.SampleRate

	once   sync.Once
	engine Engine
}

type Option func(*Synthesizer)

// WithView makes each pluck pulse its string on the view.
func WithView(view fretboard.View) Option {
	return func(s *Synthesizer) {
		s.view = view
	}
}

func WithSampleRate(sr beep.SampleRate) Option {
	return func(s *Synthesizer) {
		s.sampleRate = sr
	}
}

func New(factory EngineFactory, scheduler schedule.Scheduler, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		newEngine:  factory,
		scheduler:  scheduler,
		sampleRate: beep.SampleRate(constants.SampleRate),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init builds the audio engine if it hasn't been built yet. Repeated calls
// are no-ops. A factory error leaves the synthesizer silent.
func (s *Synthesizer) Init() Engine {
	s.once.Do(func() {
		engine, err := s.newEngine()
		if err != nil {
			engine = silentFallback(err)
		}
		s.engine = engine
	})
	return s.engine
}

// Pluck plays one string at one fret immediately and pulses the string on
// the view. Out of range strings and negative frets are ignored.
func (s *Synthesizer) Pluck(stringIndex, fret int) {
	if stringIndex < 0 || stringIndex >= constants.NumStrings || fret < 0 {
		return
	}
	engine := s.Init()
	engine.Play(Note{
		String: stringIndex,
		Fret:   fret,
		Tone:   NewTone(s.sampleRate, Frequency(stringIndex, fret)),
	})

	if s.view == nil {
		return
	}
	s.view.SetPulse(stringIndex, true)
	s.scheduler.After(constants.PulseDuration, func() {
		s.view.SetPulse(stringIndex, false)
	})
}

// Strum schedules one pluck per sounded string, StrumInterval apart in
// catalog order. It returns the planned events.
func (s *Synthesizer) Strum(c model.Chord) []model.PlaybackEvent {
	events := PlanStrum(c)
	timeline := make([]schedule.Event, 0, len(events))
	for _, e := range events {
		e := e
		timeline = append(timeline, schedule.Event{
			At: e.Offset,
			Fn: func() { s.Pluck(e.String, e.Fret) },
		})
	}
	schedule.Run(s.scheduler, timeline)
	return events
}

// PlanStrum lays out a chord's plucks. A muted string keeps its slot in
// the timing but produces no event.
func PlanStrum(c model.Chord) []model.PlaybackEvent {
	var events []model.PlaybackEvent
	for i, p := range c.Positions {
		if p.Muted() {
			continue
		}
		events = append(events, model.PlaybackEvent{
			String: p.String,
			Fret:   p.Fret,
			Offset: constants.StrumInterval * time.Duration(i),
		})
	}
	return events
}

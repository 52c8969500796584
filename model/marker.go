package model

import "time"

type MarkerStatus uint8

const (
	MarkerInactive MarkerStatus = iota
	MarkerActive
	MarkerMuted
)

func (s MarkerStatus) String() string {
	switch s {
	case MarkerActive:
		return "active"
	case MarkerMuted:
		return "muted"
	default:
		return "inactive"
	}
}

type FretMarker struct {
	String int
	Fret   int
	Status MarkerStatus
}

// PlaybackEvent is a single pluck scheduled at an offset from the start of a strum.
type PlaybackEvent struct {
	String int
	Fret   int
	Offset time.Duration
}

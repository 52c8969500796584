// Package schedule runs callbacks at offsets from now. The real clock is
// backed by time.AfterFunc; Manual lets tests step time by hand.
package schedule

import (
	"sort"
	"sync"
	"time"
)

type Scheduler interface {
	After(d time.Duration, fn func())
}

// Event is one entry of a timeline.
type Event struct {
	At time.Duration
	Fn func()
}

// Run hands every event of a timeline to the scheduler.
func Run(s Scheduler, timeline []Event) {
	for _, e := range timeline {
		s.After(e.At, e.Fn)
	}
}

type Clock struct{}

func (Clock) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

type pending struct {
	at  time.Duration
	seq int
	fn  func()
}

// Manual fires callbacks only when Advance is called. Callbacks due at the
// same instant fire in the order they were scheduled.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	queue []pending
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, pending{at: m.now + d, seq: m.seq, fn: fn})
	m.seq++
}

// Advance moves time forward by d, firing everything that comes due,
// including callbacks scheduled by callbacks.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		m.mu.Unlock()
		next.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

func (m *Manual) nextDue(target time.Duration) *pending {
	if len(m.queue) == 0 {
		return nil
	}
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].at != m.queue[j].at {
			return m.queue[i].at < m.queue[j].at
		}
		return m.queue[i].seq < m.queue[j].seq
	})
	if m.queue[0].at > target {
		return nil
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return &next
}

func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending lists the absolute times of callbacks that have not fired yet.
func (m *Manual) Pending() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]time.Duration, 0, len(m.queue))
	for _, p := range m.queue {
		res = append(res, p.at)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

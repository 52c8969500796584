package web

import (
	"log"
	"sync"
)

// Patch is one update for the page: elements to morph in by id and/or a
// script to run.
type Patch struct {
	Elements string
	Script   string
}

// Hub fans a client's patches out to its open event streams.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan Patch
	next int
}

func NewHub() *Hub {
	return &Hub{subs: map[int]chan Patch{}}
}

func (h *Hub) Subscribe() (<-chan Patch, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Patch, 256)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			close(c)
			delete(h.subs, id)
		}
	}
	return ch, cancel
}

// Publish never blocks; a stream that has fallen that far behind loses the patch.
func (h *Hub) Publish(p Patch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- p:
		default:
			log.Printf("web: dropping patch for stream %d", id)
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

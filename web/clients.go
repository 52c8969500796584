package web

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/player"
	"github.com/jsphweid/fretboard/synth"
)

const clientIDCookieName = "client-id"

// client is one browser's fretboard.
type client struct {
	id      string
	hub     *Hub
	view    *pageView
	session *player.Session

	// guarded by Server.mu
	streams int
	touched int
}

// getClientID returns the identifier in the client's cookie, minting and
// setting a new one when it is missing or malformed.
func getClientID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(clientIDCookieName)
	if err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	identifier := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     clientIDCookieName,
		Value:    identifier,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return identifier
}

// client finds or creates the caller's fretboard.
func (s *Server) client(w http.ResponseWriter, r *http.Request) *client {
	id := getClientID(w, r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[id]; ok {
		c.touched++
		return c
	}

	hub := NewHub()
	view := &pageView{
		board:     fretboard.NewBoard(constants.MaxFret),
		hub:       hub,
		templates: s.templates,
		chords:    s.catalog.IDs(),
	}
	factory := s.newEngine
	if factory == nil {
		factory = func() (synth.Engine, error) {
			return &browserEngine{hub: hub}, nil
		}
	}
	synthesizer := synth.New(factory, s.scheduler, synth.WithView(view))
	c := &client{
		id:      id,
		hub:     hub,
		view:    view,
		session: player.NewSession(s.catalog, fretboard.NewRenderer(view), synthesizer),
	}
	s.clients[id] = c
	s.expire(c)
	return c
}

func (s *Server) openStream(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.streams++
}

func (s *Server) closeStream(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.streams--
	c.touched++
	if c.streams == 0 {
		s.expire(c)
	}
}

// expire drops the client after ClientIdle unless it opens a stream or
// makes another request in the meantime. Callers hold s.mu.
func (s *Server) expire(c *client) {
	touched := c.touched
	s.scheduler.After(constants.ClientIdle, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c.streams > 0 {
			return
		}
		if c.touched != touched {
			s.expire(c)
			return
		}
		if s.clients[c.id] == c {
			delete(s.clients, c.id)
			log.Printf("web: dropped idle client %s", c.id)
		}
	})
}

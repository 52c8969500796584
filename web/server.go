package web

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/jsphweid/fretboard/chord"
	"github.com/jsphweid/fretboard/constants"
	"github.com/jsphweid/fretboard/fretboard"
	"github.com/jsphweid/fretboard/midi"
	"github.com/jsphweid/fretboard/model"
	"github.com/jsphweid/fretboard/sample"
	"github.com/jsphweid/fretboard/schedule"
	"github.com/jsphweid/fretboard/synth"
	"github.com/rs/cors"
	ds "github.com/starfederation/datastar-go/datastar"
)

type Server struct {
	catalog   *chord.Catalog
	templates *template.Template
	scheduler schedule.Scheduler
	newEngine synth.EngineFactory
	origins   []string
	router    *mux.Router

	mu      sync.Mutex
	clients map[string]*client

	// rendered tone WAVs by "string/fret"
	tones sync.Map
}

type Option func(*Server)

func WithScheduler(scheduler schedule.Scheduler) Option {
	return func(s *Server) {
		s.scheduler = scheduler
	}
}

// WithEngine replaces the in-page audio engine for every client.
func WithEngine(factory synth.EngineFactory) Option {
	return func(s *Server) {
		s.newEngine = factory
	}
}

func WithOrigins(origins []string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

func NewServer(catalog *chord.Catalog, opts ...Option) (*Server, error) {
	templates, err := template.New("").ParseFS(Templates, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	s := &Server{
		catalog:   catalog,
		templates: templates,
		scheduler: schedule.Clock{},
		origins:   constants.GetCORSOrigins(),
		clients:   make(map[string]*client),
	}
	for _, opt := range opts {
		opt(s)
	}

	static, err := fs.Sub(Static, "static")
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", s.IndexHandler).Methods("GET")
	router.HandleFunc("/events", s.EventsHandler).Methods("GET")
	router.HandleFunc("/chords/{id}", s.ChordHandler).Methods("POST")
	router.HandleFunc("/strings/{string:[0-9]+}", s.StringHandler).Methods("POST")
	router.HandleFunc("/markers/{string:[0-9]+}/{fret:[0-9]+}", s.MarkerHandler).Methods("POST")
	router.HandleFunc("/clear", s.ClearHandler).Methods("POST")
	router.HandleFunc("/tones/{string:[0-9]+}/{fret:[0-9]+}.wav", s.ToneHandler).Methods("GET")
	router.HandleFunc("/chords/{id}/strum.wav", s.StrumWavHandler).Methods("GET")
	router.HandleFunc("/chords/{id}/strum.mid", s.StrumMidiHandler).Methods("GET")
	router.HandleFunc("/api/chords", s.ChordsHandler).Methods("GET")
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	s.router = router

	return s, nil
}

func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: true,
	})
	return c.Handler(s.router)
}

func (s *Server) Start(addr string) error {
	log.Printf("listening on %s …", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type pageData struct {
	Buttons []buttonData
	Strings []stringData
	Label   string
}

func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	data := pageData{
		Buttons: c.view.buttons(),
		Strings: c.view.rows(),
		Label:   c.view.board.Label(),
	}
	if err := s.templates.ExecuteTemplate(w, "index", data); err != nil {
		log.Printf("web: couldn't execute template for index %s", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// EventsHandler streams the client's patches until the page goes away.
func (s *Server) EventsHandler(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	s.openStream(c)
	defer s.closeStream(c)
	patches, cancel := c.hub.Subscribe()
	defer cancel()

	sse := ds.NewSSE(w, r)
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-patches:
			if !ok {
				return
			}
			if p.Elements != "" {
				if err := sse.PatchElements(p.Elements); err != nil {
					log.Printf("web: error patching elements: %s", err)
					return
				}
			}
			if p.Script != "" {
				if err := sse.ExecuteScript(p.Script); err != nil {
					log.Printf("web: error executing script: %s", err)
					return
				}
			}
		}
	}
}

// ChordHandler selects a chord. Unknown ids are ignored like any other miss.
func (s *Server) ChordHandler(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	id := mux.Vars(r)["id"]
	if c.session.SelectChord(id) {
		c.view.SetSelected(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) StringHandler(w http.ResponseWriter, r *http.Request) {
	stringIndex, ok := parseString(w, r)
	if !ok {
		return
	}
	c := s.client(w, r)
	c.session.PlayString(stringIndex)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) MarkerHandler(w http.ResponseWriter, r *http.Request) {
	stringIndex, ok := parseString(w, r)
	if !ok {
		return
	}
	fret, ok := parseFret(w, r)
	if !ok {
		return
	}
	c := s.client(w, r)
	c.session.PlayMarker(stringIndex, fret)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ClearHandler(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	c.session.Clear()
	c.view.SetLabel("")
	c.view.SetSelected("")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ToneHandler(w http.ResponseWriter, r *http.Request) {
	stringIndex, ok := parseString(w, r)
	if !ok {
		return
	}
	fret, ok := parseFret(w, r)
	if !ok {
		return
	}

	key := strconv.Itoa(stringIndex) + "/" + strconv.Itoa(fret)
	if cached, ok := s.tones.Load(key); ok {
		writeWav(w, cached.([]byte))
		return
	}
	var buf sample.Buffer
	if err := sample.RenderPluck(&buf, stringIndex, fret); err != nil {
		log.Printf("web: couldn't render tone %s: %s", key, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s.tones.Store(key, buf.Bytes())
	writeWav(w, buf.Bytes())
}

func (s *Server) StrumWavHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog.Lookup(mux.Vars(r)["id"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var buf sample.Buffer
	if err := sample.RenderStrum(&buf, c); err != nil {
		log.Printf("web: couldn't render strum %s: %s", c.ID, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeWav(w, buf.Bytes())
}

func (s *Server) StrumMidiHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := s.catalog.Lookup(mux.Vars(r)["id"])
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	if err := midi.WriteStrum(w, synth.PlanStrum(c)); err != nil {
		log.Printf("web: couldn't write midi for %s: %s", c.ID, err)
	}
}

func (s *Server) ChordsHandler(w http.ResponseWriter, r *http.Request) {
	res := make([]model.ChordResponse, 0, s.catalog.Len())
	for _, c := range s.catalog.All() {
		res = append(res, model.ChordResponse{
			ID:        c.ID,
			Name:      c.Name,
			Label:     fretboard.Label(c),
			Positions: c.Positions,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Printf("web: couldn't encode chords: %s", err)
	}
}

func writeWav(w http.ResponseWriter, dat []byte) {
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(dat); err != nil {
		log.Printf("web: couldn't write wav: %s", err)
	}
}

func parseString(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)["string"])
	if err != nil || n >= constants.NumStrings {
		writeError(w, http.StatusBadRequest, "no such string")
		return 0, false
	}
	return n, true
}

func parseFret(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)["fret"])
	if err != nil || n > constants.MaxFret {
		writeError(w, http.StatusBadRequest, "no such fret")
		return 0, false
	}
	return n, true
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail})
}

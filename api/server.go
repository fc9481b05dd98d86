package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/gridpath/driver"
	"github.com/katalvlaran/gridpath/search"
	"github.com/katalvlaran/gridpath/session"
	"github.com/katalvlaran/gridpath/transport/websocket"
)

// maxBodyBytes bounds request bodies; maps are small text.
const maxBodyBytes = 1 << 20

// defaultScale is the PNG cell size in pixels when none is requested.
const defaultScale = 8

// Server represents the REST API server
type Server struct {
	sessions *session.Manager
	hub      *websocket.Hub
	metrics  http.Handler
	router   *mux.Router
}

// NewServer creates the API server. hub and metrics may be nil, which
// disables the /ws and /metrics routes.
func NewServer(sessions *session.Manager, hub *websocket.Hub, metrics http.Handler) *Server {
	s := &Server{
		sessions: sessions,
		hub:      hub,
		metrics:  metrics,
		router:   mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Search lifecycle
	api.HandleFunc("/searches", s.handleCreateSearch).Methods("POST")
	api.HandleFunc("/searches", s.handleListSearches).Methods("GET")
	api.HandleFunc("/searches/{id}", s.handleGetSearch).Methods("GET")
	api.HandleFunc("/searches/{id}", s.handleDeleteSearch).Methods("DELETE")

	// Driving a search
	api.HandleFunc("/searches/{id}/step", s.handleStep).Methods("POST")
	api.HandleFunc("/searches/{id}/run", s.handleRun).Methods("POST")
	api.HandleFunc("/searches/{id}/animate", s.handleAnimate).Methods("POST")
	api.HandleFunc("/searches/{id}/stop", s.handleStop).Methods("POST")

	// Results and pictures
	api.HandleFunc("/searches/{id}/path", s.handlePath).Methods("GET")
	api.HandleFunc("/searches/{id}/classify", s.handleClassify).Methods("GET")
	api.HandleFunc("/searches/{id}/frame", s.handleFrame).Methods("GET")
	api.HandleFunc("/searches/{id}/image.png", s.handleImage).Methods("GET")
	api.HandleFunc("/searches/{id}/path.geojson", s.handleGeoJSON).Methods("GET")

	s.router.HandleFunc("/ws/{id}", s.handleWebSocket).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics).Methods("GET")
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondErr maps a session or search error to its HTTP status.
func respondErr(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrBadSpec):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrBusy),
		errors.Is(err, search.ErrNotRunning),
		errors.Is(err, search.ErrNotSucceeded):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Search Handlers

func (s *Server) handleCreateSearch(w http.ResponseWriter, r *http.Request) {
	var spec session.Spec
	if err := decodeBody(r, &spec); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	info, err := s.sessions.Create(spec)
	if err != nil {
		respondErr(w, err)
		return
	}

	log.Printf("[SEARCH] created %s %dx%d %s (%d,%d)->(%d,%d) phase=%s",
		info.ID, info.Width, info.Height, info.Connectivity,
		info.Start.X, info.Start.Y, info.Goal.X, info.Goal.Y, info.Phase)
	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSearches(w http.ResponseWriter, r *http.Request) {
	list := s.sessions.List()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":    len(list),
		"searches": list,
	})
}

func (s *Server) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	info, err := s.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSearch(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.sessions.Delete(id); err != nil {
		respondErr(w, err)
		return
	}

	log.Printf("[SEARCH] deleted %s", id)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Search %s deleted", id),
	})
}

// Driving Handlers

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	n := 1
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}

	results, err := s.sessions.Step(id, n)
	if err != nil {
		respondErr(w, err)
		return
	}
	info, err := s.sessions.Get(id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"search":  info,
	})
}

// runResponse reports a finished search; Error carries the failure cause.
type runResponse struct {
	Outcome search.Outcome `json:"outcome"`
	Error   string         `json:"error,omitempty"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	out, err := s.sessions.Run(id)
	switch {
	case err == nil:
	case errors.Is(err, search.ErrEmptyFrontier),
		errors.Is(err, search.ErrInvalidEndpoint),
		errors.Is(err, search.ErrStepLimit):
		// a failed or capped search is a result, not a request error
		respondJSON(w, http.StatusOK, runResponse{Outcome: out, Error: err.Error()})
		return
	default:
		respondErr(w, err)
		return
	}

	log.Printf("[SEARCH] %s finished phase=%s cost=%.3f steps=%d", id, out.Phase, out.Cost, out.Steps)
	respondJSON(w, http.StatusOK, runResponse{Outcome: out})
}

// animateRequest configures a background animation.
type animateRequest struct {
	TickMS       int  `json:"tick_ms,omitempty"`
	StepsPerTick int  `json:"steps_per_tick,omitempty"`
	Fast         bool `json:"fast,omitempty"`
}

func (s *Server) handleAnimate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req animateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.TickMS < 0 || req.StepsPerTick < 0 {
		respondError(w, http.StatusBadRequest, "tick_ms and steps_per_tick must be non-negative")
		return
	}

	opts := []driver.Option{driver.WithFast(req.Fast)}
	if req.TickMS > 0 {
		opts = append(opts, driver.WithTick(time.Duration(req.TickMS)*time.Millisecond))
	}
	if req.StepsPerTick > 0 {
		opts = append(opts, driver.WithStepsPerTick(req.StepsPerTick))
	}

	if err := s.sessions.Animate(id, opts...); err != nil {
		respondErr(w, err)
		return
	}
	info, err := s.sessions.Get(id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, info)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.sessions.Stop(id); err != nil {
		respondErr(w, err)
		return
	}
	info, err := s.sessions.Get(id)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// Result Handlers

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	out, err := s.sessions.Path(mux.Vars(r)["id"])
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	changes, err := s.sessions.Classify(mux.Vars(r)["id"])
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(changes),
		"changes": changes,
	})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := s.sessions.Render(mux.Vars(r)["id"])
	if err != nil {
		respondErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, frame)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	scale := defaultScale
	if v := r.URL.Query().Get("scale"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 64 {
			respondError(w, http.StatusBadRequest, "scale must be an integer between 1 and 64")
			return
		}
		scale = parsed
	}

	// encode first so errors can still be reported as JSON
	var buf bytes.Buffer
	if err := s.sessions.WritePNG(mux.Vars(r)["id"], &buf, scale); err != nil {
		respondErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	fc, err := s.sessions.GeoJSON(mux.Vars(r)["id"])
	if err != nil {
		respondErr(w, err)
		return
	}
	raw, err := fc.MarshalJSON()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(raw)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "websocket hub not configured")
		return
	}
	id := mux.Vars(r)["id"]
	if _, err := s.sessions.Get(id); err != nil {
		respondErr(w, err)
		return
	}
	s.hub.ServeWS(w, r, id)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"searches": s.sessions.Len(),
	})
}

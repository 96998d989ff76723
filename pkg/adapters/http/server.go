// Package http exposes the deformer engine over a small JSON API, so the
// workflow can be triggered from shelf buttons or pipeline tooling outside
// the host process.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ernest-Sab/IPR-Tool/internal/runtime"
	"github.com/Ernest-Sab/IPR-Tool/pkg/domain"
)

// Engine is the engine surface the API needs.
type Engine interface {
	CreateSmoothingDeformer(ctx context.Context, p runtime.SmoothingParams) error
	CreateOffsetDeformer(ctx context.Context, p runtime.OffsetParams) error
	ListOperations(ctx context.Context) ([]*domain.OperationRecord, error)
}

// Defaults are the parameter values applied when a request body omits a knob.
type Defaults struct {
	Iterations   int
	Strength     float64
	SmoothRadius int
}

// Option configures the handler.
type Option func(*Server)

// WithDefaults overrides the built-in parameter defaults, usually from
// deployment configuration.
func WithDefaults(d Defaults) Option {
	return func(s *Server) { s.defaults = d }
}

// Server wires the engine behind chi routes.
type Server struct {
	engine   Engine
	logger   *slog.Logger
	defaults Defaults
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, logger *slog.Logger, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: logger,
		defaults: Defaults{
			Iterations:   domain.DefaultIterations,
			Strength:     domain.DefaultStrength,
			SmoothRadius: domain.DefaultSmoothRadius,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Post("/deformers/smoothing", s.createSmoothing)
	r.Post("/deformers/offset", s.createOffset)
	r.Get("/operations", s.listOperations)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) createSmoothing(w http.ResponseWriter, r *http.Request) {
	params := runtime.SmoothingParams{
		Iterations:   s.defaults.Iterations,
		SmoothRadius: s.defaults.SmoothRadius,
	}
	if err := decodeBody(r, &params); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.engine.CreateSmoothingDeformer(r.Context(), params); err != nil {
		s.writeEngineError(w, "smoothing operation failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, statusResponse{Status: "created"})
}

func (s *Server) createOffset(w http.ResponseWriter, r *http.Request) {
	params := runtime.OffsetParams{
		Direction:    domain.DirectionPull,
		Strength:     s.defaults.Strength,
		SmoothRadius: s.defaults.SmoothRadius,
	}
	if err := decodeBody(r, &params); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	direction, err := domain.ParseDirection(string(params.Direction))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	params.Direction = direction

	if err := s.engine.CreateOffsetDeformer(r.Context(), params); err != nil {
		s.writeEngineError(w, "offset operation failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, statusResponse{Status: "created"})
}

func (s *Server) listOperations(w http.ResponseWriter, r *http.Request) {
	recs, err := s.engine.ListOperations(r.Context())
	if err != nil {
		s.logger.Error("failed to list operations", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if recs == nil {
		recs = []*domain.OperationRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

// writeEngineError maps engine failures to status codes: a bad selection or a
// busy engine is the caller's problem, anything else is ours.
func (s *Server) writeEngineError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEmptySelection), errors.Is(err, domain.ErrUnsupportedNode):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrOperationInFlight):
		status = http.StatusConflict
	}
	s.logger.Warn(msg, "err", err, "status", status)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/alexiusacademia/beamcalc/internal/analysis"
	"github.com/alexiusacademia/beamcalc/internal/beam"
	"github.com/alexiusacademia/beamcalc/internal/config"
	"github.com/alexiusacademia/beamcalc/internal/material"
	"github.com/alexiusacademia/beamcalc/internal/section"
	"github.com/alexiusacademia/beamcalc/internal/store"
)

const maxBodyBytes = 1 << 20

type server struct {
	cfg   config.Config
	store *store.Store
}

// NewRouter builds the JSON API. st may be nil, in which case analyses are
// not saved and the history route is not mounted.
func NewRouter(cfg config.Config, st *store.Store) http.Handler {
	srv := &server{cfg: cfg, store: st}
	limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.LimitMiddleware)
		r.Get("/materials", srv.handleMaterials)
		r.Post("/sample", srv.handleSample)
		r.Post("/at", srv.handleAt)
		r.Post("/evaluate", srv.handleEvaluate)
		r.Post("/analyze", srv.handleAnalyze)
		if st != nil {
			r.Get("/history", srv.handleHistory)
			r.Get("/history/{id}", srv.handleHistoryItem)
		}
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, field string) {
	writeJSON(w, status, errorResponse{Error: msg, Field: field})
}

// writeInputError reports a rejected beam, load or material with 422
func writeInputError(w http.ResponseWriter, err error) {
	field := ""
	var (
		verr *beam.ValidationError
		serr *section.ValidationError
	)
	switch {
	case errors.As(err, &verr):
		field = verr.Field
	case errors.As(err, &serr):
		field = serr.Field
	case errors.Is(err, material.ErrUnknownMaterial):
		field = "material"
	}
	writeError(w, http.StatusUnprocessableEntity, err.Error(), field)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error(), "")
		return false
	}
	return true
}

func (s *server) resolution(n int) beam.Option {
	if n <= 0 {
		n = s.cfg.Resolution
	}
	return beam.WithResolution(n)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, material.Standard())
}

type sampleRequest struct {
	Beam       beam.Configuration `json:"beam"`
	Load       beam.Load          `json:"load"`
	Resolution int                `json:"resolution,omitempty"`
}

func (s *server) handleSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if !decode(w, r, &req) {
		return
	}
	if err := beam.Validate(req.Beam, req.Load); err != nil {
		writeInputError(w, err)
		return
	}
	d, err := beam.Sample(req.Beam, req.Load, s.resolution(req.Resolution))
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

type atRequest struct {
	Beam beam.Configuration `json:"beam"`
	Load beam.Load          `json:"load"`
	X    float64            `json:"x"`
}

// handleAt reports shear and moment at one position without sampling the span
func (s *server) handleAt(w http.ResponseWriter, r *http.Request) {
	var req atRequest
	if !decode(w, r, &req) {
		return
	}
	if err := beam.Validate(req.Beam, req.Load); err != nil {
		writeInputError(w, err)
		return
	}
	v, m, err := beam.At(req.Beam, req.Load, req.X)
	if err != nil {
		writeInputError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, beam.Station{Position: req.X, ShearForce: v, BendingMoment: m})
}

type evaluateRequest struct {
	MaxShearForce    float64           `json:"max_shear_force"`
	MaxBendingMoment float64           `json:"max_bending_moment"`
	Section          section.Rectangle `json:"section"`
	Material         string            `json:"material,omitempty"`
	YieldStrength    float64           `json:"yield_strength,omitempty"` // overrides Material
}

func (s *server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.Section.Validate(); err != nil {
		writeInputError(w, err)
		return
	}

	fy := req.YieldStrength
	if fy <= 0 {
		name := req.Material
		if name == "" {
			name = s.cfg.Material
		}
		m, err := material.Lookup(name)
		if err != nil {
			writeInputError(w, err)
			return
		}
		if m.IsCustom() {
			writeError(w, http.StatusUnprocessableEntity, "custom material requires yield_strength", "yield_strength")
			return
		}
		fy = m.YieldStrength
	}

	writeJSON(w, http.StatusOK, section.Evaluate(req.MaxShearForce, req.MaxBendingMoment, req.Section, fy))
}

type analyzeResponse struct {
	ID int64 `json:"id,omitempty"`
	*analysis.Report
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in analysis.Input
	if !decode(w, r, &in) {
		return
	}
	if in.Material == "" {
		in.Material = s.cfg.Material
	}

	rep, err := analysis.Run(in, s.resolution(0))
	if err != nil {
		writeInputError(w, err)
		return
	}

	resp := analyzeResponse{Report: rep}
	if s.store != nil && r.URL.Query().Get("save") == "true" {
		id, err := s.store.Save(r.Context(), in.Name, rep)
		if err != nil {
			log.Printf("save analysis: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to save analysis", "")
			return
		}
		resp.ID = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer", "limit")
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		log.Printf("list history: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list history", "")
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *server) handleHistoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id", "id")
		return
	}

	rep, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error(), "")
		return
	}
	if err != nil {
		log.Printf("get history %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load analysis", "")
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{ID: id, Report: rep})
}

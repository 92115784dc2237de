// Package api exposes metric evaluation over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"segscore/app"
	"segscore/domain/core"
	"segscore/domain/dataset"
	"segscore/internal"
	"segscore/internal/errors"
	"segscore/ports"
)

// Server wires the metric service and optional result store into an HTTP
// handler.
type Server struct {
	service *app.PairwiseService
	store   ports.ResultStore
	log     *internal.Logger
}

// NewServer creates an API server. A nil store disables persistence.
func NewServer(service *app.PairwiseService, store ports.ResultStore, log *internal.Logger) *Server {
	return &Server{service: service, store: store, log: log}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics", s.handleListMetrics)
		r.Post("/metrics/{metric}", s.handleRunMetric)
		if s.store != nil {
			r.Get("/runs", s.handleListRuns)
			r.Get("/runs/{id}", s.handleGetRun)
		}
	})
	return r
}

// evaluateRequest is the POST /v1/metrics/{metric} body: a dataset
// document plus evaluation options.
type evaluateRequest struct {
	SegmentationType string                                               `json:"segmentation_type"`
	Items            map[dataset.ItemID]map[dataset.Coder]dataset.Masses `json:"items"`
	MaxSpan          int                                                  `json:"nt,omitempty"`
	WindowSize       int                                                  `json:"window_size,omitempty"`
	OneMinus         bool                                                 `json:"one_minus,omitempty"`
	Micro            bool                                                 `json:"micro,omitempty"`
	Store            bool                                                 `json:"store,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListMetrics(w http.ResponseWriter, _ *http.Request) {
	type metricInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Kind        string `json:"kind"`
	}
	var out []metricInfo
	for _, m := range app.Metrics() {
		out = append(out, metricInfo{Name: m.Name, Description: m.Description, Kind: string(m.Kind)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRunMetric(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.InvalidInput("request body is not valid JSON"))
		return
	}

	ds := dataset.New()
	if req.SegmentationType != "" {
		ds.SegmentationType = req.SegmentationType
	}
	for item, codings := range req.Items {
		for coder, masses := range codings {
			ds.Add(item, coder, masses)
		}
	}

	result, err := s.service.Run(r.Context(), ds, metric, app.RunOptions{
		MaxSpan:    req.MaxSpan,
		WindowSize: req.WindowSize,
		OneMinus:   req.OneMinus,
		Micro:      req.Micro,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	if req.Store && s.store != nil {
		if err := s.store.SaveRun(r.Context(), result); err != nil {
			s.log.Error("[API] failed to store run %s: %v", result.RunID, err)
			s.writeError(w, errors.Wrap(err, "failed to store run"))
			return
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns(r.Context(), 50)
	if err != nil {
		s.writeError(w, errors.Wrap(err, "failed to list runs"))
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, errors.InvalidInput(err.Error()))
		return
	}
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, errors.WithCode(errors.CodeNotFound, err))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput, errors.CodeDatasetError:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.log.Error("[API] %v", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

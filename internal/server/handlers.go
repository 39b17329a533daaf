package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"grafanagraphs/internal/grafana"
	"grafanagraphs/internal/graph"
	"grafanagraphs/pkg/logging"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 64 << 10

// graphRequest is the body of POST and PUT requests. panelId may be a JSON
// string or integer.
type graphRequest struct {
	Name      string `json:"name"`
	Dashboard string `json:"dashboard"`
	PanelID   any    `json:"panelId"`

	panelID string
}

type graphResponse struct {
	Graph   graph.Graph `json:"graph"`
	Message string      `json:"message,omitempty"`
}

type listResponse struct {
	Graphs []graph.Graph `json:"graphs"`
}

type urlResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	graphs, err := s.form.Registry().List()
	s.mu.Unlock()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Graphs: graphs})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	g, err := s.form.Registry().Get(name)
	s.mu.Unlock()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, graphResponse{Graph: g})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sub := graph.Submission{Name: req.Name, Dashboard: req.Dashboard, PanelID: req.panelID}
	s.mu.Lock()
	res := s.form.Submit(r.Context(), sub)
	s.mu.Unlock()
	if !res.OK {
		writeError(w, r, res.Err)
		return
	}

	writeJSON(w, http.StatusCreated, graphResponse{
		Graph:   graph.Graph{Name: sub.Name, Dashboard: sub.Dashboard, PanelID: sub.PanelID},
		Message: res.Message,
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req graphRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	patch := graph.Patch{Name: req.Name, Dashboard: req.Dashboard, PanelID: req.panelID}
	target := name
	if patch.Name != "" {
		target = patch.Name
	}

	s.mu.Lock()
	res := s.form.Edit(r.Context(), name, patch)
	var g graph.Graph
	var err error
	if res.OK {
		g, err = s.form.Registry().Get(target)
	}
	s.mu.Unlock()
	if !res.OK {
		writeError(w, r, res.Err)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, graphResponse{Graph: g, Message: res.Message})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	res := s.form.Delete(r.Context(), name)
	s.mu.Unlock()
	if !res.OK {
		writeError(w, r, res.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleURL(w http.ResponseWriter, r *http.Request) {
	if s.renderer == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{
			Error:     "panel URL rendering is not configured",
			RequestID: RequestIDFromContext(r.Context()),
		})
		return
	}

	name := chi.URLParam(r, "name")
	s.mu.Lock()
	g, err := s.form.Registry().Get(name)
	s.mu.Unlock()
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	u, err := s.renderer.URL(g, grafana.Context{
		Host:    q.Get("host"),
		Service: q.Get("service"),
		From:    q.Get("from"),
		To:      q.Get("to"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{Name: name, URL: u})
}

// badRequestError marks request bodies that could not be decoded.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return fmt.Sprintf("invalid request body: %v", e.err) }

func (e *badRequestError) Unwrap() error { return e.err }

func decodeBody(w http.ResponseWriter, r *http.Request, req *graphRequest) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(req); err != nil {
		return &badRequestError{err: err}
	}
	id, err := graph.PanelIDString(req.PanelID)
	if err != nil {
		return &badRequestError{err: err}
	}
	req.panelID = id
	return nil
}

// statusFor maps registry errors to HTTP status codes.
func statusFor(err error) int {
	var badRequest *badRequestError
	switch {
	case graph.IsNotFound(err):
		return http.StatusNotFound
	case graph.IsAlreadyExists(err):
		return http.StatusConflict
	case graph.IsValidation(err), errors.As(err, &badRequest):
		return http.StatusBadRequest
	case errors.Is(err, grafana.ErrMissingBaseURL):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.Error("HTTP", err, "%s %s failed", r.Method, r.URL.Path)
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("HTTP", "Failed to encode response: %v", err)
	}
}

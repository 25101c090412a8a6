package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/notegen/notegen/internal/callout"
	"github.com/notegen/notegen/internal/pipeline"
)

const maxRequestBytes = 10 << 20

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	text, err := s.svc.ExpandNote(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		jsonError(w, err.Error(), status)
		return
	}
	writeJSON(w, map[string]any{"text": text})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text             string   `json:"text"`
		ExcludedCallouts []string `json:"excluded_callouts"`
	}
	if !decodeRequest(w, r, &req) {
		return
	}
	writeJSON(w, map[string]any{"text": callout.Filter(req.Text, req.ExcludedCallouts)})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	result, err := s.svc.Generate(r.Context(), req)
	if err != nil {
		status := http.StatusBadGateway
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		jsonError(w, err.Error(), status)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleGenerateAsync(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(req)
	if err := s.orch.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"job_id": job.ID})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orch.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, job.Snapshot())
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"model": s.gen.Model(),
		"stats": s.gen.Stats.Snapshot(),
	})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package handler

import (
	"net/http"

	"github.com/pkordes/wedding-timeline/openapi"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetOpenAPI handles GET /openapi.yaml by serving the embedded API document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Document)
}

// GetDefaults handles GET /defaults. It returns the durations a request falls
// back to when neither it nor its preset sets them.
func (s *Server) GetDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.timelines.Defaults())
}

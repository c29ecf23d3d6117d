package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mj1618/keymacro/internal/metrics"
)

// StatusRouter serves Prometheus metrics, a health check and a read-only
// macro listing next to the MCP transport.
func (s *Server) StatusRouter(m *metrics.Metrics) *mux.Router {
	r := mux.NewRouter()
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods("GET")
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/macros", s.handleHTTPList).Methods("GET")
	r.HandleFunc("/macros/{id}", s.handleHTTPStatus).Methods("GET")
	return r
}

func (s *Server) handleHTTPList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.lib.List())
}

func (s *Server) handleHTTPStatus(w http.ResponseWriter, r *http.Request) {
	sum, err := s.lib.Summary(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

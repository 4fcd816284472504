package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

func (s *Server) responseJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "{}")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)

	_, _ = w.Write(b)
}

// responseError store and engine failures pass through opaque
func (s *Server) responseError(w http.ResponseWriter, err error) {
	s.responseJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
}

package utils

import (
	"net/http"
	"strings"
)

// GetIP get the client's ip address
func GetIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ip := strings.Split(xff, ",")[0]
		if ip != "" {
			return ip
		}
	}

	remoteAddr := r.RemoteAddr
	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		return remoteAddr[:idx]
	}

	return remoteAddr
}

package handler

import (
	"fmt"
	"net/http"
	"time"
)

// Health handles GET / and GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"service":   "ExamOrch API",
	})
}

// NotFound answers any route the router does not know
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":   "Unknown Route",
		"message": fmt.Sprintf("The requested route %s is nonexistent on this server.", r.URL.RequestURI()),
	})
}

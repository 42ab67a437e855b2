package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/blackeffigyeel/exam-orch/internal/service"
)

// Envelope wraps every API response
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

// writeError maps domain errors to 404/400 and anything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *service.Error
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Kind == service.KindNotFound {
			status = http.StatusNotFound
		}
		writeFailure(w, status, domainErr.Message)
		return
	}

	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	writeFailure(w, http.StatusInternalServerError, "Internal server error")
}

package rest

import (
	"net/http"

	"github.com/blackeffigyeel/exam-orch/internal/service"
	"github.com/blackeffigyeel/exam-orch/internal/transport/rest/handler"
	"github.com/blackeffigyeel/exam-orch/internal/transport/rest/middleware"
	"github.com/blackeffigyeel/exam-orch/internal/transport/ws"
	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	SessionService *service.SessionService
	ProctorService *service.ProctorService
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(c.SessionService)
	proctorHandler := handler.NewProctorHandler(c.ProctorService)
	wsHandler := ws.NewHandler(c.WSHub, c.SessionService)

	r.Use(middleware.Logging)
	unmatched := middleware.Logging(http.HandlerFunc(handler.NotFound))
	r.NotFoundHandler = unmatched
	r.MethodNotAllowedHandler = unmatched

	// Health check
	r.HandleFunc("/", handler.Health).Methods("GET")
	r.HandleFunc("/health", handler.Health).Methods("GET")
	r.HandleFunc("/api-docs/openapi.json", handler.OpenAPI).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = unmatched
	api.MethodNotAllowedHandler = unmatched

	// WebSocket routes
	api.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")

	// Exam session routes
	api.HandleFunc("/sessions", sessionHandler.Create).Methods("POST")
	api.HandleFunc("/sessions", sessionHandler.List).Methods("GET")
	api.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET")
	api.HandleFunc("/sessions/{id}/close-enrollment", sessionHandler.CloseEnrollment).Methods("PATCH")

	// Candidate enrollment routes
	api.HandleFunc("/sessions/{id}/enroll", sessionHandler.Enroll).Methods("POST")
	api.HandleFunc("/sessions/{id}/enroll/{studentId}", sessionHandler.Withdraw).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/candidates", sessionHandler.Candidates).Methods("GET")
	api.HandleFunc("/sessions/{id}/waitlist", sessionHandler.Waitlist).Methods("GET")
	api.HandleFunc("/candidates/{studentId}/status", sessionHandler.CandidateStatus).Methods("GET")

	// Proctor assignment routes
	api.HandleFunc("/sessions/{id}/proctors", proctorHandler.Assign).Methods("POST")
	api.HandleFunc("/sessions/{id}/proctors/{proctorId}", proctorHandler.Remove).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/proctors", proctorHandler.ForSession).Methods("GET")
	api.HandleFunc("/proctors/{proctorId}/sessions", proctorHandler.Sessions).Methods("GET")

	return r
}

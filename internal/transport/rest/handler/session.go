package handler

import (
	"fmt"
	"net/http"

	"github.com/blackeffigyeel/exam-orch/internal/model"
	"github.com/blackeffigyeel/exam-orch/internal/service"
	"github.com/gorilla/mux"
)

// SessionHandler handles exam session and enrollment endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	Title         string `json:"title" validate:"required,min=3,max=200"`
	Duration      *int   `json:"duration" validate:"required,min=1"`
	MaxCandidates *int   `json:"maxCandidates" validate:"required,min=1"`
	StartTime     string `json:"startTime" validate:"required,rfc3339"`
}

// EnrollRequest is the request body for enrolling a candidate
type EnrollRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name" validate:"required,min=2,max=100"`
	StudentID string `json:"studentId" validate:"required,min=3,max=50"`
}

// Create handles POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	startTime, err := parseTimestamp(req.StartTime)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, invalidStartTime)
		return
	}

	session, err := h.sessionSvc.CreateSession(r.Context(), service.CreateSessionInput{
		Title:         req.Title,
		Duration:      *req.Duration,
		MaxCandidates: *req.MaxCandidates,
		StartTime:     startTime,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Exam session created successfully", session)
}

// List handles GET /api/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionSvc.ListSessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Sessions retrieved successfully", sessions)
}

// Get handles GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session, err := h.sessionSvc.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Session retrieved successfully", session)
}

// CloseEnrollment handles PATCH /api/sessions/{id}/close-enrollment
func (h *SessionHandler) CloseEnrollment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session, err := h.sessionSvc.CloseEnrollment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Enrollment closed successfully", session)
}

// Enroll handles POST /api/sessions/{id}/enroll
func (h *SessionHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req EnrollRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.sessionSvc.EnrollCandidate(r.Context(), id, req.Email, req.Name, req.StudentID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	message := "Candidate enrolled successfully"
	if result.Status == model.EnrollmentWaitlisted {
		message = "Candidate added to waitlist"
	}
	writeSuccess(w, http.StatusOK, message, result)
}

// Withdraw handles DELETE /api/sessions/{id}/enroll/{studentId}
func (h *SessionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	result, err := h.sessionSvc.WithdrawCandidate(r.Context(), vars["id"], vars["studentId"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, fmt.Sprintf("Candidate withdrawn from %s list successfully", result.RemovedFrom), nil)
}

// Candidates handles GET /api/sessions/{id}/candidates
func (h *SessionHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	candidates, err := h.sessionSvc.GetEnrolledCandidates(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Enrolled candidates retrieved successfully", candidates)
}

// Waitlist handles GET /api/sessions/{id}/waitlist
func (h *SessionHandler) Waitlist(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	waitlist, err := h.sessionSvc.GetWaitlistedCandidates(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Waitlisted candidates retrieved successfully", waitlist)
}

// CandidateStatus handles GET /api/candidates/{studentId}/status
func (h *SessionHandler) CandidateStatus(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	status, err := h.sessionSvc.GetCandidateStatus(r.Context(), studentID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Candidate status retrieved successfully", status)
}

package handler

import (
	"net/http"

	"github.com/blackeffigyeel/exam-orch/internal/service"
	"github.com/gorilla/mux"
)

// ProctorHandler handles proctor assignment endpoints
type ProctorHandler struct {
	proctorSvc *service.ProctorService
}

// NewProctorHandler creates a new proctor handler
func NewProctorHandler(proctorSvc *service.ProctorService) *ProctorHandler {
	return &ProctorHandler{proctorSvc: proctorSvc}
}

// AssignProctorRequest is the request body for assigning a proctor
type AssignProctorRequest struct {
	ProctorID    string `json:"proctorId" validate:"required,min=1,max=100"`
	ProctorName  string `json:"proctorName" validate:"required,min=2,max=100"`
	ProctorEmail string `json:"proctorEmail" validate:"required,email"`
}

// Assign handles POST /api/sessions/{id}/proctors
func (h *ProctorHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req AssignProctorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.proctorSvc.AssignProctorToSession(r.Context(), id, req.ProctorID, req.ProctorName, req.ProctorEmail)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Proctor assigned to session successfully", session)
}

// Remove handles DELETE /api/sessions/{id}/proctors/{proctorId}
func (h *ProctorHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	session, err := h.proctorSvc.RemoveProctorFromSession(r.Context(), vars["id"], vars["proctorId"])
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Proctor removed from session successfully", session)
}

// ForSession handles GET /api/sessions/{id}/proctors
func (h *ProctorHandler) ForSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	proctors, err := h.proctorSvc.GetProctorsForSession(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Proctors retrieved successfully", proctors)
}

// Sessions handles GET /api/proctors/{proctorId}/sessions
func (h *ProctorHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	proctorID := mux.Vars(r)["proctorId"]

	sessions, err := h.proctorSvc.GetSessionsForProctor(r.Context(), proctorID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Sessions retrieved successfully", sessions)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pmorales/tour-builder/backend/internal/domain"
)

type addStepRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type updateStepRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

// handleAddStep handles POST /api/tours/{tourID}/steps.
// The new step is appended to the end of the sequence; its order is
// assigned by the service, never by the client.
func (s *Server) handleAddStep(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tourID, ok := pathUUID(w, r, "tourID")
	if !ok {
		return
	}

	var req addStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON payload")
		return
	}

	step, err := s.steps.Add(r.Context(), caller, domain.Step{
		TourID:   tourID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, err, "tour")
		return
	}

	writeJSON(w, http.StatusCreated, step)
}

// handleUpdateStep handles PUT /api/tours/{tourID}/steps/{stepID}.
// The update is partial: absent fields keep their current values.
func (s *Server) handleUpdateStep(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tourID, ok := pathUUID(w, r, "tourID")
	if !ok {
		return
	}
	stepID, ok := pathUUID(w, r, "stepID")
	if !ok {
		return
	}

	var req updateStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON payload")
		return
	}

	step, err := s.steps.Update(r.Context(), tourID, stepID, caller, domain.StepUpdate{
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, err, "step")
		return
	}

	writeJSON(w, http.StatusOK, step)
}

// handleDeleteStep handles DELETE /api/tours/{tourID}/steps/{stepID}.
func (s *Server) handleDeleteStep(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tourID, ok := pathUUID(w, r, "tourID")
	if !ok {
		return
	}
	stepID, ok := pathUUID(w, r, "stepID")
	if !ok {
		return
	}

	if err := s.steps.Delete(r.Context(), tourID, stepID, caller); err != nil {
		writeServiceError(w, err, "step")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

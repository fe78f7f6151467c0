package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmorales/tour-builder/backend/internal/domain"
)

type createTourRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTourRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// tourWithStepsResponse is a tour with its steps in display order.
type tourWithStepsResponse struct {
	domain.Tour
	Steps []domain.Step `json:"steps"`
}

// handleCreateTour handles POST /api/tours.
func (s *Server) handleCreateTour(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req createTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON payload")
		return
	}

	tour, err := s.tours.Create(r.Context(), caller, req.Title, req.Description)
	if err != nil {
		writeServiceError(w, err, "tour")
		return
	}

	writeJSON(w, http.StatusCreated, tour)
}

// handleListTours handles GET /api/tours.
func (s *Server) handleListTours(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	tours, err := s.tours.ListMine(r.Context(), caller)
	if err != nil {
		writeServiceError(w, err, "tour")
		return
	}

	writeJSON(w, http.StatusOK, tours)
}

// handleGetTour handles GET /api/tours/{tourID}.
func (s *Server) handleGetTour(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tourID, ok := pathUUID(w, r, "tourID")
	if !ok {
		return
	}

	tour, steps, err := s.tours.GetByID(r.Context(), tourID, caller)
	if err != nil {
		writeServiceError(w, err, "tour")
		return
	}

	writeJSON(w, http.StatusOK, tourWithStepsResponse{Tour: tour, Steps: steps})
}

// handleUpdateTour handles PUT /api/tours/{tourID}.
// The update is partial: absent fields keep their current values.
func (s *Server) handleUpdateTour(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tourID, ok := pathUUID(w, r, "tourID")
	if !ok {
		return
	}

	var req updateTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON payload")
		return
	}

	tour, err := s.tours.Update(r.Context(), tourID, caller, domain.TourUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, err, "tour")
		return
	}

	writeJSON(w, http.StatusOK, tour)
}

// handleDeleteTour handles DELETE /api/tours/{tourID}.
func (s *Server) handleDeleteTour(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tourID, ok := pathUUID(w, r, "tourID")
	if !ok {
		return
	}

	if err := s.tours.Delete(r.Context(), tourID, caller); err != nil {
		writeServiceError(w, err, "tour")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses the named chi URL parameter as a UUID.
// A malformed ID cannot name any existing resource, so it reads as 404.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
		return uuid.UUID{}, false
	}
	return id, true
}

package handler

import (
	"encoding/json"
	"net/http"
)

type publishTourRequest struct {
	// Pointer so a missing field is distinguishable from false.
	IsPublic *bool `json:"is_public"`
}

// handlePublishTour handles PATCH /api/tours/{tourID}/publish.
// Flipping to public always issues a fresh slug, which rotates the
// share link; flipping to private retires the slug for good.
func (s *Server) handlePublishTour(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	tourID, ok := pathUUID(w, r, "tourID")
	if !ok {
		return
	}

	var req publishTourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON payload")
		return
	}
	if req.IsPublic == nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "is_public is required")
		return
	}

	tour, err := s.publication.SetPublic(r.Context(), tourID, caller, *req.IsPublic)
	if err != nil {
		writeServiceError(w, err, "tour")
		return
	}

	writeJSON(w, http.StatusOK, tour)
}

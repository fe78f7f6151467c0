package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/pmorales/tour-builder/backend/internal/identity"
	"github.com/pmorales/tour-builder/backend/internal/middleware"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister handles POST /api/auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON payload")
		return
	}

	result, err := s.identity.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, err, "user")
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid JSON payload")
		return
	}

	result, err := s.identity.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "auth_invalid", err.Error())
			return
		}
		writeServiceError(w, err, "user")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleMe handles GET /api/auth/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := s.identity.Me(r.Context(), caller)
	if err != nil {
		writeServiceError(w, err, "user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// callerID returns the authenticated caller's ID from the request
// context. The auth middleware guarantees it on protected routes; the
// false branch only fires on a wiring mistake.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "auth_invalid", "missing identity")
		return uuid.UUID{}, false
	}
	return id, true
}

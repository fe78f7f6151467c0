package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pmorales/tour-builder/backend/internal/domain"
)

// publicTourResponse is an explicit allow-list of the fields anonymous
// viewers may see. Notably absent: every ID, the author, created_at.
// New Tour fields stay private until added here on purpose.
type publicTourResponse struct {
	Slug        string               `json:"slug"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Steps       []publicStepResponse `json:"steps"`
}

type publicStepResponse struct {
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Order    int    `json:"order"`
}

// handleResolvePublicTour handles GET /api/public/tours/{slug}.
// Anonymous: no identity, no ownership guard — the unguessable slug is
// the capability. Unpublished or unknown slugs are indistinguishable.
func (s *Server) handleResolvePublicTour(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	tour, steps, err := s.public.ResolveBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err, "tour")
		return
	}

	writeJSON(w, http.StatusOK, toPublicTour(tour, steps))
}

func toPublicTour(tour domain.Tour, steps []domain.Step) publicTourResponse {
	resp := publicTourResponse{
		Title:       tour.Title,
		Description: tour.Description,
		UpdatedAt:   tour.UpdatedAt,
		Steps:       make([]publicStepResponse, len(steps)),
	}
	if tour.PublicSlug != nil {
		resp.Slug = *tour.PublicSlug
	}
	for i, st := range steps {
		resp.Steps[i] = publicStepResponse{
			Title:    st.Title,
			Content:  st.Content,
			ImageURL: st.ImageURL,
			Order:    st.Order,
		}
	}
	return resp
}

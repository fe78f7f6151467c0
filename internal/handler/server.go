// Package handler implements the HTTP layer of the Tour Builder API.
// All handlers are methods on Server; they decode requests, call the
// service interfaces, and map sentinel errors to status codes. Methods
// are split into resource-specific files (tour.go, step.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/identity"
)

// The service interfaces are defined here, in the consumer package,
// following the Go convention: "accept interfaces, return concrete
// types". Handler tests inject mocks without touching the database or
// service layer.

// TourServicer defines the tour lifecycle operations the handlers depend on.
type TourServicer interface {
	Create(ctx context.Context, authorID uuid.UUID, title, description string) (domain.Tour, error)
	ListMine(ctx context.Context, authorID uuid.UUID) ([]domain.TourSummary, error)
	GetByID(ctx context.Context, tourID, callerID uuid.UUID) (domain.Tour, []domain.Step, error)
	Update(ctx context.Context, tourID, callerID uuid.UUID, upd domain.TourUpdate) (domain.Tour, error)
	Delete(ctx context.Context, tourID, callerID uuid.UUID) error
}

// StepServicer defines the step operations the handlers depend on.
type StepServicer interface {
	Add(ctx context.Context, callerID uuid.UUID, step domain.Step) (domain.Step, error)
	Update(ctx context.Context, tourID, stepID, callerID uuid.UUID, upd domain.StepUpdate) (domain.Step, error)
	Delete(ctx context.Context, tourID, stepID, callerID uuid.UUID) error
}

// PublicationServicer toggles a tour's publication state.
type PublicationServicer interface {
	SetPublic(ctx context.Context, tourID, callerID uuid.UUID, isPublic bool) (domain.Tour, error)
}

// PublicServicer is the anonymous slug-resolution path.
type PublicServicer interface {
	ResolveBySlug(ctx context.Context, slug string) (domain.Tour, []domain.Step, error)
}

// IdentityServicer defines the credential operations the handlers depend on.
type IdentityServicer interface {
	Register(ctx context.Context, email, password, name string) (identity.AuthResult, error)
	Login(ctx context.Context, email, password string) (identity.AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

// Server holds the handler dependencies. Methods live in
// resource-specific files but all operate on this struct.
type Server struct {
	identity    IdentityServicer
	tours       TourServicer
	steps       StepServicer
	publication PublicationServicer
	public      PublicServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(identitySvc IdentityServicer, tours TourServicer, steps StepServicer, publication PublicationServicer, public PublicServicer) *Server {
	return &Server{
		identity:    identitySvc,
		tours:       tours,
		steps:       steps,
		publication: publication,
		public:      public,
	}
}

// Routes builds the API router. The auth middleware is passed in from
// main so handler tests can substitute a stub that injects a fixed
// caller identity.
func (s *Server) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)

	r.Post("/api/auth/register", s.handleRegister)
	r.Post("/api/auth/login", s.handleLogin)

	// Public resolver: no identity, filter is the slug itself.
	r.Get("/api/public/tours/{slug}", s.handleResolvePublicTour)

	r.Group(func(pr chi.Router) {
		pr.Use(auth)

		pr.Get("/api/auth/me", s.handleMe)

		pr.Route("/api/tours", func(tr chi.Router) {
			tr.Post("/", s.handleCreateTour)
			tr.Get("/", s.handleListTours)

			tr.Route("/{tourID}", func(ir chi.Router) {
				ir.Get("/", s.handleGetTour)
				ir.Put("/", s.handleUpdateTour)
				ir.Delete("/", s.handleDeleteTour)
				ir.Patch("/publish", s.handlePublishTour)

				ir.Post("/steps", s.handleAddStep)
				ir.Put("/steps/{stepID}", s.handleUpdateStep)
				ir.Delete("/steps/{stepID}", s.handleDeleteStep)
			})
		})
	})

	return r
}

package handler_test

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/handler"
	"github.com/pmorales/tour-builder/backend/internal/identity"
	"github.com/pmorales/tour-builder/backend/internal/middleware"
)

// Function-field test doubles for the Server's service interfaces.

type mockTourService struct {
	create   func(ctx context.Context, authorID uuid.UUID, title, description string) (domain.Tour, error)
	listMine func(ctx context.Context, authorID uuid.UUID) ([]domain.TourSummary, error)
	getByID  func(ctx context.Context, tourID, callerID uuid.UUID) (domain.Tour, []domain.Step, error)
	update   func(ctx context.Context, tourID, callerID uuid.UUID, upd domain.TourUpdate) (domain.Tour, error)
	delete   func(ctx context.Context, tourID, callerID uuid.UUID) error
}

func (m *mockTourService) Create(ctx context.Context, authorID uuid.UUID, title, description string) (domain.Tour, error) {
	return m.create(ctx, authorID, title, description)
}
func (m *mockTourService) ListMine(ctx context.Context, authorID uuid.UUID) ([]domain.TourSummary, error) {
	return m.listMine(ctx, authorID)
}
func (m *mockTourService) GetByID(ctx context.Context, tourID, callerID uuid.UUID) (domain.Tour, []domain.Step, error) {
	return m.getByID(ctx, tourID, callerID)
}
func (m *mockTourService) Update(ctx context.Context, tourID, callerID uuid.UUID, upd domain.TourUpdate) (domain.Tour, error) {
	return m.update(ctx, tourID, callerID, upd)
}
func (m *mockTourService) Delete(ctx context.Context, tourID, callerID uuid.UUID) error {
	return m.delete(ctx, tourID, callerID)
}

var _ handler.TourServicer = (*mockTourService)(nil)

type mockStepService struct {
	add    func(ctx context.Context, callerID uuid.UUID, step domain.Step) (domain.Step, error)
	update func(ctx context.Context, tourID, stepID, callerID uuid.UUID, upd domain.StepUpdate) (domain.Step, error)
	delete func(ctx context.Context, tourID, stepID, callerID uuid.UUID) error
}

func (m *mockStepService) Add(ctx context.Context, callerID uuid.UUID, step domain.Step) (domain.Step, error) {
	return m.add(ctx, callerID, step)
}
func (m *mockStepService) Update(ctx context.Context, tourID, stepID, callerID uuid.UUID, upd domain.StepUpdate) (domain.Step, error) {
	return m.update(ctx, tourID, stepID, callerID, upd)
}
func (m *mockStepService) Delete(ctx context.Context, tourID, stepID, callerID uuid.UUID) error {
	return m.delete(ctx, tourID, stepID, callerID)
}

var _ handler.StepServicer = (*mockStepService)(nil)

type mockPublicationService struct {
	setPublic func(ctx context.Context, tourID, callerID uuid.UUID, isPublic bool) (domain.Tour, error)
}

func (m *mockPublicationService) SetPublic(ctx context.Context, tourID, callerID uuid.UUID, isPublic bool) (domain.Tour, error) {
	return m.setPublic(ctx, tourID, callerID, isPublic)
}

var _ handler.PublicationServicer = (*mockPublicationService)(nil)

type mockPublicService struct {
	resolveBySlug func(ctx context.Context, slug string) (domain.Tour, []domain.Step, error)
}

func (m *mockPublicService) ResolveBySlug(ctx context.Context, slug string) (domain.Tour, []domain.Step, error) {
	return m.resolveBySlug(ctx, slug)
}

var _ handler.PublicServicer = (*mockPublicService)(nil)

type mockIdentityService struct {
	register func(ctx context.Context, email, password, name string) (identity.AuthResult, error)
	login    func(ctx context.Context, email, password string) (identity.AuthResult, error)
	me       func(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

func (m *mockIdentityService) Register(ctx context.Context, email, password, name string) (identity.AuthResult, error) {
	return m.register(ctx, email, password, name)
}
func (m *mockIdentityService) Login(ctx context.Context, email, password string) (identity.AuthResult, error) {
	return m.login(ctx, email, password)
}
func (m *mockIdentityService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return m.me(ctx, userID)
}

var _ handler.IdentityServicer = (*mockIdentityService)(nil)

// serverDeps bundles the mocks so tests only fill in what they use.
type serverDeps struct {
	identity    *mockIdentityService
	tours       *mockTourService
	steps       *mockStepService
	publication *mockPublicationService
	public      *mockPublicService
}

// newTestRouter builds the full router with a stub auth middleware that
// injects callerID as the authenticated identity on protected routes.
func newTestRouter(deps serverDeps, callerID uuid.UUID) http.Handler {
	if deps.identity == nil {
		deps.identity = &mockIdentityService{}
	}
	if deps.tours == nil {
		deps.tours = &mockTourService{}
	}
	if deps.steps == nil {
		deps.steps = &mockStepService{}
	}
	if deps.publication == nil {
		deps.publication = &mockPublicationService{}
	}
	if deps.public == nil {
		deps.public = &mockPublicService{}
	}

	srv := handler.NewServer(deps.identity, deps.tours, deps.steps, deps.publication, deps.public)
	stubAuth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), callerID)))
		})
	}
	return srv.Routes(stubAuth)
}

func strPtr(s string) *string { return &s }

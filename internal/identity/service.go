package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pmorales/tour-builder/backend/internal/domain"
	"github.com/pmorales/tour-builder/backend/internal/repo"
)

const minPasswordLength = 6

// ErrInvalidCredentials is returned by Login for a wrong email/password
// pair. Deliberately one error for both cases so the response does not
// reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthResult is what a successful register or login returns: the user's
// public fields plus a signed bearer token.
type AuthResult struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
	Token string    `json:"token"`
}

// Service implements registration, login, and current-user lookup.
type Service struct {
	users  repo.UserRepo
	tokens TokenManager
}

// NewService constructs a Service backed by the provided UserRepo and
// token manager.
func NewService(users repo.UserRepo, tokens TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account and returns it with a signed token.
// Returns domain.ErrValidation for a malformed email or short password,
// domain.ErrConflict if the email is already registered.
func (s *Service) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, fmt.Errorf("identity.Service.Register: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("identity.Service.Register: %w", err)
	}

	return s.authResult(user)
}

// Login verifies the email/password pair and returns the user with a
// fresh token. Returns ErrInvalidCredentials when either part is wrong.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("identity.Service.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.authResult(user)
}

// Me returns the user behind a validated identity.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("identity.Service.Me: %w", err)
	}
	return user, nil
}

func (s *Service) authResult(user domain.User) (AuthResult, error) {
	token, err := s.tokens.Sign(user.ID.String(), user.Email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("identity: sign token: %w", err)
	}
	return AuthResult{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateCredentials checks the register input. Email validation is a
// shape check only; deliverability is not this layer's problem.
func validateCredentials(email, password string) error {
	if !isValidEmail(email) {
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	return nil
}

// isValidEmail performs a basic format check: one @ with a non-empty
// local part and a dotted domain.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" {
		return false
	}
	domainPart := parts[1]
	dot := strings.LastIndex(domainPart, ".")
	return dot > 0 && dot < len(domainPart)-1
}

package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/finance-tracker/internal"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository returns (nil, nil) when no user has the email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns a token with the user summary.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(dto.Email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to load user for login", "error", err)
		return nil, err
	}
	if user == nil {
		s.logger.Warn("login rejected: unknown email")
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login rejected: password mismatch", "user_id", user.ID)
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.Issue(internal.Principal{ID: user.ID, Email: user.Email})
	if err != nil {
		s.logger.Error("failed to issue token", "error", err, "user_id", user.ID)
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResponse{
		Token: token,
		User:  UserSummary{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

// VerifyToken validates a bearer token without touching the store.
func (s *Service) VerifyToken(token string) (internal.Principal, error) {
	return s.tokenGenerator.Verify(token)
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

package user

import (
	"context"

	userRepo "hotelsa/database/repository/user"
	"hotelsa/models"
	"hotelsa/services/identity"

	"go.uber.org/zap"
)

// UserService covers account and profile flows. Each call acts through the
// identity provider of the caller's app session.
type UserService interface {
	// Registration
	Register(ctx context.Context, p identity.Provider, data models.UserRegistrationData) (*identity.Identity, error)
	ForgotPassword(ctx context.Context, p identity.Provider, email string) error

	// Profile
	Profile(ctx context.Context, id *identity.Identity) (*models.User, error)
	UpdateName(ctx context.Context, p identity.Provider, name string) (*models.User, error)
	RegisterPushToken(ctx context.Context, id *identity.Identity, token string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

func NewUserService(repo userRepo.UserRepository, logger *zap.Logger) *DefaultUserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultUserService{Repo: repo, Logger: logger}
}

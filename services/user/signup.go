package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "hotelsa/database/repository/user"
	"hotelsa/models"
	"hotelsa/services/identity"

	"go.uber.org/zap"
)

// Register validates the sign-up form, creates the account and stores the
// profile document. A successful sign-up signs the session in.
func (s *DefaultUserService) Register(ctx context.Context, p identity.Provider, data models.UserRegistrationData) (*identity.Identity, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Email = strings.TrimSpace(data.Email)
	if data.Name == "" || data.Email == "" || data.Password == "" {
		return nil, &ValidationError{Field: "form", Message: "please fill in all fields"}
	}
	if len(data.Password) < identity.MinPasswordLength {
		return nil, &ValidationError{Field: "password", Message: "password should be at least 6 characters"}
	}

	id, err := p.SignUp(ctx, identity.SignUpRequest{Name: data.Name, Email: data.Email, Password: data.Password})
	if err != nil {
		return nil, err
	}

	profile := &models.User{ID: id.UID, Name: data.Name, Email: data.Email}
	if err := s.Repo.Create(ctx, profile); err != nil {
		// The account exists at this point; the profile is rebuilt from the
		// identity on the next read.
		if !errors.Is(err, userRepo.ErrDuplicateUser) {
			s.Logger.Error("Register: failed to store profile", zap.String("uid", id.UID), zap.Error(err))
		}
	}
	s.Logger.Info("User registered", zap.String("uid", id.UID))
	return id, nil
}

// ForgotPassword sends the provider's password-reset e-mail.
func (s *DefaultUserService) ForgotPassword(ctx context.Context, p identity.Provider, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "please enter your email address first"}
	}
	if err := p.SendPasswordReset(ctx, email); err != nil {
		return fmt.Errorf("failed to send password reset: %w", err)
	}
	return nil
}

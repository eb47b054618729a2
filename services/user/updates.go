package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelsa/database/repository/shared"
	"hotelsa/models"
	"hotelsa/services/identity"

	"go.uber.org/zap"
)

// Profile returns the stored profile, or one derived from the identity when
// none was stored (accounts created outside this backend, demo users).
func (s *DefaultUserService) Profile(ctx context.Context, id *identity.Identity) (*models.User, error) {
	if id == nil {
		return nil, ErrNotSignedIn
	}
	u, err := s.Repo.GetByID(ctx, id.UID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &models.User{ID: id.UID, Name: id.DisplayName, Email: id.Email}, nil
}

// UpdateName changes the display name on the account and the profile.
func (s *DefaultUserService) UpdateName(ctx context.Context, p identity.Provider, name string) (*models.User, error) {
	id := p.Current()
	if id == nil {
		return nil, ErrNotSignedIn
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "please enter your name"}
	}

	if err := p.UpdateDisplayName(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := s.ensureProfile(ctx, id); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateName(ctx, id.UID, name); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Repo.GetByID(ctx, id.UID)
}

// RegisterPushToken stores the device's FCM token for booking confirmations.
func (s *DefaultUserService) RegisterPushToken(ctx context.Context, id *identity.Identity, token string) error {
	if id == nil {
		return ErrNotSignedIn
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return &ValidationError{Field: "token", Message: "push token is required"}
	}
	if err := s.ensureProfile(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.SetPushToken(ctx, id.UID, token); err != nil {
		return fmt.Errorf("failed to store push token: %w", err)
	}
	return nil
}

func (s *DefaultUserService) ensureProfile(ctx context.Context, id *identity.Identity) error {
	_, err := s.Repo.GetByID(ctx, id.UID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	s.Logger.Debug("Creating missing profile", zap.String("uid", id.UID))
	profile := &models.User{ID: id.UID, Name: id.DisplayName, Email: id.Email}
	if err := s.Repo.Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

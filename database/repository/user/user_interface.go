package userRepo

import (
	"context"
	"errors"

	"hotelsa/models"
)

// ErrDuplicateUser is returned by Create when the id or email is taken.
var ErrDuplicateUser = errors.New("user already exists")

// UserRepository defines methods for profile data access.
type UserRepository interface {
	// Create inserts a new profile keyed by the identity uid.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a profile by uid.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdateName changes the profile display name.
	UpdateName(ctx context.Context, id, name string) error
	// SetPushToken stores the device's FCM registration token.
	SetPushToken(ctx context.Context, id, token string) error
}

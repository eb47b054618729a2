package reviewRepo

import (
	"context"

	"hotelsa/models"
)

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a review. ID and CreatedAt are set when empty.
	Create(ctx context.Context, review *models.Review) error
	// ListByHotel returns a hotel's reviews, newest first.
	ListByHotel(ctx context.Context, hotelID string) ([]models.Review, error)
}

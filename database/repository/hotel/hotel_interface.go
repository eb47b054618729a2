package hotelRepo

import (
	"context"

	"hotelsa/models"
)

// HotelRepository defines methods for hotel catalogue access.
type HotelRepository interface {
	// GetByID retrieves a hotel by its ID; shared.ErrNotFound if missing.
	GetByID(ctx context.Context, id string) (*models.Hotel, error)
	// List returns hotels in the requested order. limit <= 0 means all.
	List(ctx context.Context, sortBy models.HotelSort, limit int) ([]models.Hotel, error)
	// Upsert inserts or replaces a hotel by ID.
	Upsert(ctx context.Context, hotel *models.Hotel) error
}

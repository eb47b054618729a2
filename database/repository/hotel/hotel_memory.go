package hotelRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"hotelsa/database/repository/shared"
	"hotelsa/models"
)

// MemoryHotelRepo implements HotelRepository in process memory.
type MemoryHotelRepo struct {
	mu     sync.RWMutex
	hotels map[string]models.Hotel
}

func NewMemoryHotelRepo() *MemoryHotelRepo {
	return &MemoryHotelRepo{hotels: make(map[string]models.Hotel)}
}

func (r *MemoryHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hotels[id]
	if !ok {
		return nil, fmt.Errorf("hotel %s: %w", id, shared.ErrNotFound)
	}
	return &h, nil
}

func (r *MemoryHotelRepo) List(ctx context.Context, sortBy models.HotelSort, limit int) ([]models.Hotel, error) {
	r.mu.RLock()
	hotels := make([]models.Hotel, 0, len(r.hotels))
	for _, h := range r.hotels {
		hotels = append(hotels, h)
	}
	r.mu.RUnlock()

	SortHotels(hotels, sortBy)
	if limit > 0 && len(hotels) > limit {
		hotels = hotels[:limit]
	}
	return hotels, nil
}

func (r *MemoryHotelRepo) Upsert(ctx context.Context, hotel *models.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hotels[hotel.ID] = *hotel
	return nil
}

// SortHotels orders hotels the same way the mongo repository does:
// by rating descending or price ascending, ties broken by ID.
func SortHotels(hotels []models.Hotel, sortBy models.HotelSort) {
	sort.SliceStable(hotels, func(i, j int) bool {
		a, b := hotels[i], hotels[j]
		if sortBy == models.SortByPrice {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		} else if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.ID < b.ID
	})
}

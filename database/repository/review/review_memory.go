package reviewRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"hotelsa/models"

	"github.com/google/uuid"
)

// MemoryReviewRepo implements ReviewRepository in process memory.
type MemoryReviewRepo struct {
	mu      sync.RWMutex
	reviews []models.Review
}

func NewMemoryReviewRepo() *MemoryReviewRepo {
	return &MemoryReviewRepo{}
}

func (r *MemoryReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *MemoryReviewRepo) ListByHotel(ctx context.Context, hotelID string) ([]models.Review, error) {
	r.mu.RLock()
	out := []models.Review{}
	for _, rv := range r.reviews {
		if rv.HotelID == hotelID {
			out = append(out, rv)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

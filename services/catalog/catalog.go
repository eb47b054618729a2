package catalog

import (
	"context"
	"fmt"
	"strings"

	hotelRepo "hotelsa/database/repository/hotel"
	reviewRepo "hotelsa/database/repository/review"
	"hotelsa/models"
)

// FeaturedCount is how many hotels the home screen features.
const FeaturedCount = 2

// CatalogService is the read side of the hotel catalogue.
type CatalogService interface {
	// Featured returns the top rated hotels.
	Featured(ctx context.Context) ([]models.Hotel, error)
	// Explore lists every hotel in the given order.
	Explore(ctx context.Context, sortBy models.HotelSort) ([]models.Hotel, error)
	// GetHotel fetches one hotel; the error wraps repository.ErrNotFound when missing.
	GetHotel(ctx context.Context, id string) (*models.Hotel, error)
	// Reviews lists a hotel's reviews, newest first.
	Reviews(ctx context.Context, hotelID string) ([]models.Review, error)
}

// DefaultCatalogService reads from the hotel and review repositories.
type DefaultCatalogService struct {
	Hotels     hotelRepo.HotelRepository
	ReviewRepo reviewRepo.ReviewRepository
}

func NewCatalogService(hotels hotelRepo.HotelRepository, reviews reviewRepo.ReviewRepository) *DefaultCatalogService {
	return &DefaultCatalogService{Hotels: hotels, ReviewRepo: reviews}
}

// ParseSort maps a query value to a sort order. Anything unknown sorts by rating.
func ParseSort(s string) models.HotelSort {
	if models.HotelSort(strings.ToLower(strings.TrimSpace(s))) == models.SortByPrice {
		return models.SortByPrice
	}
	return models.SortByRating
}

func (s *DefaultCatalogService) Featured(ctx context.Context) ([]models.Hotel, error) {
	hotels, err := s.Hotels.List(ctx, models.SortByRating, FeaturedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load featured hotels: %w", err)
	}
	return hotels, nil
}

func (s *DefaultCatalogService) Explore(ctx context.Context, sortBy models.HotelSort) ([]models.Hotel, error) {
	hotels, err := s.Hotels.List(ctx, sortBy, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load hotels: %w", err)
	}
	return hotels, nil
}

func (s *DefaultCatalogService) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	return s.Hotels.GetByID(ctx, id)
}

func (s *DefaultCatalogService) Reviews(ctx context.Context, hotelID string) ([]models.Review, error) {
	reviews, err := s.ReviewRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews for hotel %s: %w", hotelID, err)
	}
	return reviews, nil
}

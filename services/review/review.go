package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	hotelRepo "hotelsa/database/repository/hotel"
	reviewRepo "hotelsa/database/repository/review"
	"hotelsa/models"

	"go.uber.org/zap"
)

// Star scale bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// AnonymousName is stored when the reviewer has no display name.
const AnonymousName = "Anonymous"

// ErrSignInRequired is returned when a review is submitted without an identity.
var ErrSignInRequired = errors.New("sign in required to review")

// ValidationError reports an unacceptable review field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Author is who is submitting the review.
type Author struct {
	UserID      string
	DisplayName string
}

type ReviewService interface {
	Submit(ctx context.Context, author Author, req models.ReviewRequest) (*models.Review, error)
}

type DefaultReviewService struct {
	Hotels  hotelRepo.HotelRepository
	Reviews reviewRepo.ReviewRepository
	Logger  *zap.Logger
}

func NewReviewService(hotels hotelRepo.HotelRepository, reviews reviewRepo.ReviewRepository, logger *zap.Logger) *DefaultReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultReviewService{Hotels: hotels, Reviews: reviews, Logger: logger}
}

func (s *DefaultReviewService) Submit(ctx context.Context, author Author, req models.ReviewRequest) (*models.Review, error) {
	if author.UserID == "" {
		return nil, ErrSignInRequired
	}
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, &ValidationError{Field: "rating", Message: "please select a rating between 1 and 5"}
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, &ValidationError{Field: "comment", Message: "please write a review"}
	}

	hotel, err := s.Hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	name := strings.TrimSpace(author.DisplayName)
	if name == "" {
		name = AnonymousName
	}
	r := &models.Review{
		UserID:    author.UserID,
		UserName:  name,
		HotelID:   hotel.ID,
		HotelName: hotel.Name,
		Rating:    req.Rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}
	s.Logger.Info("Review submitted", zap.String("reviewID", r.ID), zap.String("hotelID", r.HotelID), zap.Int("rating", r.Rating))
	return r, nil
}

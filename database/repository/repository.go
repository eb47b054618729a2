package repository

import (
	"errors"

	bookingRepo "hotelsa/database/repository/booking"
	hotelRepo "hotelsa/database/repository/hotel"
	reviewRepo "hotelsa/database/repository/review"
	"hotelsa/database/repository/shared"
	userRepo "hotelsa/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by every repository when a document is missing.
var ErrNotFound = shared.ErrNotFound

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}

// Repositories bundles the document store used by the screens.
type Repositories struct {
	Hotels   hotelRepo.HotelRepository
	Bookings bookingRepo.BookingRepository
	Reviews  reviewRepo.ReviewRepository
	Users    userRepo.UserRepository
}

// NewMongoRepositories builds every repository on db.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Hotels:   hotelRepo.NewMongoHotelRepo(db),
		Bookings: bookingRepo.NewMongoBookingRepo(db),
		Reviews:  reviewRepo.NewMongoReviewRepo(db),
		Users:    userRepo.NewMongoUserRepo(db),
	}
}

// NewMemoryRepositories builds in-memory repositories for the mock backend.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Hotels:   hotelRepo.NewMemoryHotelRepo(),
		Bookings: bookingRepo.NewMemoryBookingRepo(),
		Reviews:  reviewRepo.NewMemoryReviewRepo(),
		Users:    userRepo.NewMemoryUserRepo(),
	}
}

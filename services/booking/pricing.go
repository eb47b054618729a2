package booking

import (
	"time"
)

// DateLayout is the wire format of check-in and check-out dates.
const DateLayout = "2006-01-02"

// Defaults for a fresh booking screen.
const (
	DefaultNights = 5
	DefaultGuests = 2
	DefaultRooms  = 1
)

// Nights counts whole days between check-in and check-out.
func Nights(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return 0, newValidationError("checkInDate", "must be a date in YYYY-MM-DD format")
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return 0, newValidationError("checkOutDate", "must be a date in YYYY-MM-DD format")
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 0, newValidationError("checkOutDate", "must be at least one night after check-in")
	}
	return nights, nil
}

// Total is nights x nightly rate x rooms.
func Total(nights int, nightlyRate float64, rooms int) float64 {
	return float64(nights) * nightlyRate * float64(rooms)
}

func validateParty(guests, rooms int) error {
	if guests < 1 {
		return newValidationError("guests", "must be at least 1")
	}
	if rooms < 1 {
		return newValidationError("rooms", "must be at least 1")
	}
	return nil
}

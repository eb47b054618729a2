package models

import "time"

// BookingConfirmation is queued after a booking is stored and delivered to
// the user's device as a push notification.
type BookingConfirmation struct {
	BookingID    string    `json:"bookingId"`
	UserID       string    `json:"userId"`
	HotelName    string    `json:"hotelName"`
	CheckInDate  string    `json:"checkInDate"`
	CheckOutDate string    `json:"checkOutDate"`
	Total        float64   `json:"total"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Notification is a rendered push message.
type Notification struct {
	UserID string            `json:"userId"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data"`
}

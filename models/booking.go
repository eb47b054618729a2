// File: hotelsa/models/booking.go
package models

import "time"

const BookingStatusConfirmed = "confirmed"

// Booking represents a confirmed stay.
type Booking struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"userId"`
	HotelID      string    `bson:"hotel_id" json:"hotelId"`
	HotelName    string    `bson:"hotel_name" json:"hotelName"`
	CheckInDate  string    `bson:"check_in_date" json:"checkInDate"`   // "YYYY-MM-DD"
	CheckOutDate string    `bson:"check_out_date" json:"checkOutDate"` // "YYYY-MM-DD"
	Guests       int       `bson:"guests" json:"guests"`
	Rooms        int       `bson:"rooms" json:"rooms"`
	Nights       int       `bson:"nights" json:"nights"`
	Total        float64   `bson:"total" json:"total"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// BookingRequest is what the booking screen submits.
type BookingRequest struct {
	HotelID      string `json:"hotelId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	Guests       int    `json:"guests"`
	Rooms        int    `json:"rooms"`
}

// BookingQuote is the price breakdown shown before confirming.
type BookingQuote struct {
	HotelID      string  `json:"hotelId"`
	HotelName    string  `json:"hotelName"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	Guests       int     `json:"guests"`
	Rooms        int     `json:"rooms"`
	Nights       int     `json:"nights"`
	NightlyRate  float64 `json:"nightlyRate"`
	Total        float64 `json:"total"`
}

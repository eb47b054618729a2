// File: hotelsa/models/review.go
package models

import "time"

// Review is a guest's rating of a hotel.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	UserName  string    `bson:"user_name" json:"userName"`
	HotelID   string    `bson:"hotel_id" json:"hotelId"`
	HotelName string    `bson:"hotel_name" json:"hotelName"`
	Rating    int       `bson:"rating" json:"rating"` // 1-5 stars
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// ReviewRequest is what the rating screen submits.
type ReviewRequest struct {
	HotelID string `json:"hotelId" binding:"required"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

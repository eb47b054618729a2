// File: hotelsa/models/hotel.go
package models

// Hotel is a bookable property in the catalogue.
type Hotel struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Location    string   `bson:"location" json:"location"`
	Description string   `bson:"description" json:"description"`
	Price       float64  `bson:"price" json:"price"`   // Nightly rate in rand
	Rating      float64  `bson:"rating" json:"rating"` // Average guest rating, 0-5
	ImageURL    string   `bson:"image_url" json:"imageUrl"`
	Amenities   []string `bson:"amenities,omitempty" json:"amenities,omitempty"`
}

// HotelSort selects the ordering of a hotel listing.
type HotelSort string

const (
	SortByRating HotelSort = "rating" // highest rated first
	SortByPrice  HotelSort = "price"  // cheapest first
)

package screens

import "hotelsa/models"

// Slide is one onboarding page.
type Slide struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type OnboardingView struct {
	Slides []Slide `json:"slides"`
	Finish string  `json:"finish"`
}

type AuthView struct {
	Tabs              []string `json:"tabs"`
	DemoModeEnabled   bool     `json:"demoModeEnabled"`
	MinPasswordLength int      `json:"minPasswordLength"`
}

type HomeView struct {
	Greeting string         `json:"greeting"`
	Featured []models.Hotel `json:"featured"`
}

type ExploreView struct {
	Sort   models.HotelSort   `json:"sort"`
	Sorts  []models.HotelSort `json:"sorts"`
	Hotels []models.Hotel     `json:"hotels"`
}

type HotelDetailsView struct {
	Hotel   models.Hotel    `json:"hotel"`
	Reviews []models.Review `json:"reviews"`
	CanBook bool            `json:"canBook"`
	CanRate bool            `json:"canRate"`
}

type BookingView struct {
	Hotel   models.Hotel          `json:"hotel"`
	Request models.BookingRequest `json:"request"`
	Quote   *models.BookingQuote  `json:"quote,omitempty"`
}

type RatingView struct {
	Hotel models.Hotel `json:"hotel"`
	Scale []int        `json:"scale"`
}

type ProfileView struct {
	SignedIn bool             `json:"signedIn"`
	Profile  *models.User     `json:"profile,omitempty"`
	Bookings []models.Booking `json:"bookings"`
}

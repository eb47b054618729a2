package screens

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"hotelsa/models"
	"hotelsa/navigation"
	"hotelsa/services/booking"
	"hotelsa/services/catalog"
	"hotelsa/services/identity"
	"hotelsa/services/review"
	"hotelsa/services/user"
)

// ParamHotelID names the hotel a details, booking or rating screen shows.
const ParamHotelID = "hotelId"

// ErrMissingParam is returned when a screen is rendered without a required param.
var ErrMissingParam = errors.New("missing screen param")

// Slides are the onboarding pages.
var Slides = []Slide{
	{
		Title:       "Discover Luxury South African Hotels",
		Description: "Find and book the perfect hotel for your next adventure across beautiful South Africa",
		Icon:        "🏨",
	},
	{
		Title:       "Easy Booking Process",
		Description: "Book your stay in just a few simple steps with secure payment",
		Icon:        "📱",
	},
	{
		Title:       "Real Guest Reviews & Ratings",
		Description: "Make informed decisions with authentic reviews from fellow travelers",
		Icon:        "⭐",
	},
}

// Deps are the services the renderers read from.
type Deps struct {
	Catalog         catalog.CatalogService
	Bookings        booking.BookingService
	Users           user.UserService
	DemoModeEnabled bool
}

// BuildRegistry binds a renderer to every screen and validates the result.
func BuildRegistry(d Deps) (*navigation.Registry, error) {
	reg := navigation.NewRegistry().
		Register(navigation.ScreenOnboarding, navigation.RendererFunc(renderOnboarding)).
		Register(navigation.ScreenAuth, navigation.RendererFunc(d.renderAuth)).
		Register(navigation.ScreenHome, navigation.RendererFunc(d.renderHome)).
		Register(navigation.ScreenExplore, navigation.RendererFunc(d.renderExplore)).
		Register(navigation.ScreenHotelDetails, navigation.RendererFunc(d.renderHotelDetails)).
		Register(navigation.ScreenBooking, navigation.RendererFunc(d.renderBooking)).
		Register(navigation.ScreenRating, navigation.RendererFunc(d.renderRating)).
		Register(navigation.ScreenProfile, navigation.RendererFunc(d.renderProfile))
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func renderOnboarding(ctx context.Context, f navigation.Frame) (any, error) {
	return OnboardingView{Slides: Slides, Finish: "Get Started"}, nil
}

func (d Deps) renderAuth(ctx context.Context, f navigation.Frame) (any, error) {
	return AuthView{
		Tabs:              []string{"signin", "signup"},
		DemoModeEnabled:   d.DemoModeEnabled,
		MinPasswordLength: identity.MinPasswordLength,
	}, nil
}

func (d Deps) renderHome(ctx context.Context, f navigation.Frame) (any, error) {
	featured, err := d.Catalog.Featured(ctx)
	if err != nil {
		return nil, err
	}
	name := "Guest"
	if id := f.State.Identity; id != nil && id.DisplayName != "" {
		name = id.DisplayName
	}
	return HomeView{Greeting: "Hello, " + name, Featured: featured}, nil
}

func (d Deps) renderExplore(ctx context.Context, f navigation.Frame) (any, error) {
	sortBy := catalog.ParseSort(param(f.Entry, "sort"))
	hotels, err := d.Catalog.Explore(ctx, sortBy)
	if err != nil {
		return nil, err
	}
	return ExploreView{
		Sort:   sortBy,
		Sorts:  []models.HotelSort{models.SortByRating, models.SortByPrice},
		Hotels: hotels,
	}, nil
}

func (d Deps) renderHotelDetails(ctx context.Context, f navigation.Frame) (any, error) {
	hotel, err := d.hotel(ctx, f)
	if err != nil {
		return nil, err
	}
	reviews, err := d.Catalog.Reviews(ctx, hotel.ID)
	if err != nil {
		return nil, err
	}
	signedIn := f.State.Authenticated()
	return HotelDetailsView{
		Hotel:   *hotel,
		Reviews: reviews,
		CanBook: signedIn,
		CanRate: signedIn,
	}, nil
}

func (d Deps) renderBooking(ctx context.Context, f navigation.Frame) (any, error) {
	hotel, err := d.hotel(ctx, f)
	if err != nil {
		return nil, err
	}
	req := bookingRequest(d.Bookings.DefaultRequest(hotel.ID), f.Entry)
	view := BookingView{Hotel: *hotel, Request: req}
	if q, err := d.Bookings.Quote(ctx, req); err == nil {
		view.Quote = q
	} else if !booking.IsValidation(err) {
		return nil, err
	}
	return view, nil
}

func (d Deps) renderRating(ctx context.Context, f navigation.Frame) (any, error) {
	hotel, err := d.hotel(ctx, f)
	if err != nil {
		return nil, err
	}
	scale := make([]int, 0, review.MaxRating)
	for i := review.MinRating; i <= review.MaxRating; i++ {
		scale = append(scale, i)
	}
	return RatingView{Hotel: *hotel, Scale: scale}, nil
}

func (d Deps) renderProfile(ctx context.Context, f navigation.Frame) (any, error) {
	id := f.State.Identity
	if id == nil {
		return ProfileView{Bookings: []models.Booking{}}, nil
	}
	profile, err := d.Users.Profile(ctx, &identity.Identity{UID: id.UID, Email: id.Email, DisplayName: id.DisplayName})
	if err != nil {
		return nil, err
	}
	bookings, err := d.Bookings.ListForUser(ctx, id.UID)
	if err != nil {
		return nil, err
	}
	return ProfileView{SignedIn: true, Profile: profile, Bookings: bookings}, nil
}

func (d Deps) hotel(ctx context.Context, f navigation.Frame) (*models.Hotel, error) {
	id := param(f.Entry, ParamHotelID)
	if id == "" {
		return nil, fmt.Errorf("%s needs %s: %w", f.Entry.Screen, ParamHotelID, ErrMissingParam)
	}
	return d.Catalog.GetHotel(ctx, id)
}

// bookingRequest overlays the stay params carried by the entry on the defaults.
func bookingRequest(req models.BookingRequest, e navigation.Entry) models.BookingRequest {
	if v := param(e, "checkInDate"); v != "" {
		req.CheckInDate = v
	}
	if v := param(e, "checkOutDate"); v != "" {
		req.CheckOutDate = v
	}
	if n, err := strconv.Atoi(param(e, "guests")); err == nil {
		req.Guests = n
	}
	if n, err := strconv.Atoi(param(e, "rooms")); err == nil {
		req.Rooms = n
	}
	return req
}

func param(e navigation.Entry, key string) string {
	v, _ := e.Param(key)
	return v
}

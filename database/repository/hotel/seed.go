package hotelRepo

import (
	"context"
	"fmt"

	"hotelsa/models"
)

// Catalogue is the launch set of hotels.
var Catalogue = []models.Hotel{
	{
		ID:          "1",
		Name:        "The Silo Hotel",
		Location:    "Cape Town",
		Description: "Luxury hotel in a converted grain silo overlooking the V&A Waterfront.",
		Price:       4500,
		Rating:      4.8,
		ImageURL:    "https://images.unsplash.com/photo-1542314831-068cd1dbfeeb?auto=format&fit=crop&w=2070&q=80",
		Amenities:   []string{"Rooftop pool", "Spa", "Harbour views"},
	},
	{
		ID:          "2",
		Name:        "Singita Kruger National Park",
		Location:    "Kruger National Park",
		Description: "Safari lodge on a private concession in the Kruger.",
		Price:       3800,
		Rating:      4.6,
		ImageURL:    "https://images.unsplash.com/photo-1566073771259-6a8506099945?auto=format&fit=crop&w=2070&q=80",
		Amenities:   []string{"Game drives", "Plunge pools"},
	},
	{
		ID:          "3",
		Name:        "One&Only Cape Town",
		Location:    "Cape Town",
		Description: "Island resort with Table Mountain views.",
		Price:       3200,
		Rating:      4.7,
		ImageURL:    "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?auto=format&fit=crop&w=2070&q=80",
		Amenities:   []string{"Spa", "Marina"},
	},
	{
		ID:          "4",
		Name:        "The Oyster Box",
		Location:    "Umhlanga",
		Description: "Beachfront hotel on the KwaZulu-Natal coast.",
		Price:       5200,
		Rating:      4.9,
		ImageURL:    "https://images.unsplash.com/photo-1582719508461-905c673771fd?auto=format&fit=crop&w=1925&q=80",
		Amenities:   []string{"Beach", "Curry buffet", "Lighthouse views"},
	},
}

// Seed upserts the launch catalogue.
func Seed(ctx context.Context, repo HotelRepository) error {
	for i := range Catalogue {
		h := Catalogue[i]
		if err := repo.Upsert(ctx, &h); err != nil {
			return fmt.Errorf("failed to seed hotel %s: %w", h.Name, err)
		}
	}
	return nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// fallbackEvents is the bundled demo catalogue shown when no live source is usable.
var fallbackEvents = []Event{
	{
		ID:          "event-1",
		Title:       "Summer Music Festival",
		Description: "A three-day open air festival with local and international headliners.",
		Date:        time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
		Location:    "Jakarta",
		Venue:       "Gelora Bung Karno Stadium",
		ImageURL:    "https://images.unsplash.com/photo-1459865264687-595d652de67e",
		Price:       decimal.NewFromInt(150),
		Currency:    "IDRX",
		Category:    "Music",
		Status:      EventStatusAvailable,
		Organizer: Organizer{
			ID:          "org-1",
			Name:        "Melody Productions",
			Verified:    true,
			Description: "Concert and festival promoter",
		},
		TicketsAvailable: 1200,
	},
	{
		ID:          "event-2",
		Title:       "Tech Innovation Summit",
		Description: "Talks and workshops on blockchain, AI and the startup ecosystem.",
		Date:        time.Date(2025, time.July, 10, 9, 0, 0, 0, time.UTC),
		Location:    "Bandung",
		Venue:       "Bandung Convention Center",
		ImageURL:    "https://images.unsplash.com/photo-1540575467063-178a50c2df87",
		Price:       decimal.NewFromInt(75),
		Currency:    "IDRX",
		Category:    "Technology",
		Status:      EventStatusLimited,
		Organizer: Organizer{
			ID:          "org-2",
			Name:        "TechHub Indonesia",
			Verified:    true,
			Description: "Technology conference organizer",
		},
		TicketsAvailable: 45,
	},
	{
		ID:          "event-3",
		Title:       "Jazz Night at the Harbour",
		Description: "An evening of smooth jazz by the sea.",
		Date:        time.Date(2025, time.June, 15, 19, 30, 0, 0, time.UTC),
		Location:    "Surabaya",
		Venue:       "Tanjung Perak Waterfront",
		ImageURL:    "https://images.unsplash.com/photo-1415201364774-f6f0bb35f28f",
		Price:       decimal.NewFromInt(50),
		Currency:    "IDRX",
		Category:    "Music",
		Status:      EventStatusSoldOut,
		Organizer: Organizer{
			ID:          "org-1",
			Name:        "Melody Productions",
			Verified:    true,
			Description: "Concert and festival promoter",
		},
		TicketsAvailable: 0,
	},
	{
		ID:          "event-4",
		Title:       "Contemporary Art Exhibition",
		Description: "Works from emerging Indonesian artists across painting and installation.",
		Date:        time.Date(2025, time.August, 2, 10, 0, 0, 0, time.UTC),
		Location:    "Yogyakarta",
		Venue:       "Jogja National Museum",
		ImageURL:    "https://images.unsplash.com/photo-1531058020387-3be344556be6",
		Price:       decimal.NewFromInt(25),
		Currency:    "IDRX",
		Category:    "Art",
		Status:      EventStatusAvailable,
		Organizer: Organizer{
			ID:          "org-3",
			Name:        "Galeri Nusantara",
			Verified:    false,
			Description: "Independent gallery collective",
		},
		TicketsAvailable: 300,
	},
	{
		ID:          "event-5",
		Title:       "Bali Food Festival",
		Description: "Street food, cooking demos and chef tastings from across the islands.",
		Date:        time.Date(2025, time.September, 20, 11, 0, 0, 0, time.UTC),
		Location:    "Bali",
		Venue:       "Puputan Square",
		ImageURL:    "https://images.unsplash.com/photo-1555939594-58d7cb561ad1",
		Price:       decimal.NewFromInt(30),
		Currency:    "IDRX",
		Category:    "Food",
		Status:      EventStatusAvailable,
		Organizer: Organizer{
			ID:          "org-4",
			Name:        "Island Tastes",
			Verified:    true,
			Description: "Culinary event organizer",
		},
		TicketsAvailable: 800,
	},
	{
		ID:          "event-6",
		Title:       "Creative Writing Workshop",
		Description: "A hands-on workshop for fiction and poetry writers.",
		Date:        time.Date(2025, time.July, 10, 14, 0, 0, 0, time.UTC),
		Location:    "Jakarta",
		Venue:       "Kemang Creative Hub",
		ImageURL:    "https://images.unsplash.com/photo-1455390582262-044cdead277a",
		Price:       decimal.NewFromInt(20),
		Currency:    "IDRX",
		Category:    "Workshop",
		Status:      EventStatusLimited,
		Organizer: Organizer{
			ID:          "org-5",
			Name:        "Sarah Wijaya",
			Verified:    false,
			Description: "Workshop facilitator",
		},
		TicketsAvailable: 12,
	},
}

// FallbackEvents returns a fresh copy of the bundled demo catalogue.
func FallbackEvents() []Event {
	events := make([]Event, len(fallbackEvents))
	copy(events, fallbackEvents)
	return events
}

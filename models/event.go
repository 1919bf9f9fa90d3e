package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventDetails is the record a source returns for one event identifier.
type EventDetails struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Date         int64  `json:"date"` // unix seconds
	Venue        string `json:"venue"`
	IPFSMetadata string `json:"ipfs_metadata"`
	Organizer    string `json:"organizer"`
}

type Organizer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Verified    bool   `json:"verified"`
	Description string `json:"description"`
}

// Event is the display shape used by the feed, filters and sorting.
type Event struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Date             time.Time       `json:"date"`
	Location         string          `json:"location"`
	Venue            string          `json:"venue"`
	ImageURL         string          `json:"image_url"`
	Price            decimal.Decimal `json:"price"`
	Currency         string          `json:"currency"`
	Category         string          `json:"category"`
	Status           string          `json:"status"` // available, limited, soldout
	Organizer        Organizer       `json:"organizer"`
	TicketsAvailable int             `json:"tickets_available"`
}

const (
	EventStatusAvailable = "available"
	EventStatusLimited   = "limited"
	EventStatusSoldOut   = "soldout"
)

// EventStatuses lists the availability values offered as filter choices.
var EventStatuses = []string{EventStatusAvailable, EventStatusLimited, EventStatusSoldOut}

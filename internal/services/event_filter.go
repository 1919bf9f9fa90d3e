package services

import (
	"lummy/models"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// EventFilter narrows the active feed. Empty fields match everything; set
// fields are ANDed together, so the order filters are applied in does not
// matter.
type EventFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	Date     string `json:"date,omitempty"` // YYYY-MM-DD, compared in UTC
	Status   string `json:"status,omitempty"`
}

func (f EventFilter) IsZero() bool {
	return f == EventFilter{}
}

func (f EventFilter) Matches(event models.Event) bool {
	if f.Search != "" {
		query := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(event.Title), query) &&
			!strings.Contains(strings.ToLower(event.Description), query) &&
			!strings.Contains(strings.ToLower(event.Location), query) {
			return false
		}
	}
	if f.Category != "" && event.Category != f.Category {
		return false
	}
	if f.Location != "" && event.Location != f.Location {
		return false
	}
	if f.Status != "" && event.Status != f.Status {
		return false
	}
	if f.Date != "" {
		day, ok := parseFilterDate(f.Date)
		if !ok || event.Date.UTC().Format(time.DateOnly) != day {
			return false
		}
	}
	return true
}

// parseFilterDate accepts a calendar date or a full timestamp and returns its
// UTC calendar day.
func parseFilterDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.Format(time.DateOnly), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(time.DateOnly), true
	}
	return "", false
}

// ApplyFilter returns the events matching f, in their original order.
func ApplyFilter(events []models.Event, f EventFilter) []models.Event {
	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if f.Matches(event) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

type SortKey string

const (
	SortDateAsc   SortKey = "date-asc"
	SortDateDesc  SortKey = "date-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"

	DefaultSort = SortDateAsc
)

// SortEvents returns a sorted copy of events. Ties keep their original
// relative order; an unknown key leaves the order unchanged.
func SortEvents(events []models.Event, key SortKey) []models.Event {
	sorted := slices.Clone(events)

	var cmp func(a, b models.Event) int
	switch key {
	case SortDateAsc:
		cmp = func(a, b models.Event) int { return a.Date.Compare(b.Date) }
	case SortDateDesc:
		cmp = func(a, b models.Event) int { return b.Date.Compare(a.Date) }
	case SortPriceAsc:
		cmp = func(a, b models.Event) int { return a.Price.Cmp(b.Price) }
	case SortPriceDesc:
		cmp = func(a, b models.Event) int { return b.Price.Cmp(a.Price) }
	case SortNameAsc, SortNameDesc:
		c := collate.New(language.Und)
		cmp = func(a, b models.Event) int { return c.CompareString(a.Title, b.Title) }
		if key == SortNameDesc {
			cmp = func(a, b models.Event) int { return c.CompareString(b.Title, a.Title) }
		}
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, cmp)
	return sorted
}

func uniqueValues(events []models.Event, field func(models.Event) string) []string {
	seen := make(map[string]struct{}, len(events))
	values := []string{}
	for _, event := range events {
		v := field(event)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

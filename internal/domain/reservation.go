package domain

import "strings"

// SearchRequest is one user-initiated availability search.
type SearchRequest struct {
	Day        string // calendar date, "2006-01-02"
	PartySize  int    // 1..10
	TargetTime string // optional 12h clock string ("06:00 PM"); empty = any time
}

// ReservationRecord is one bookable slot at a venue, normalized from the
// upstream search payload.
type ReservationRecord struct {
	VenueName    string   `json:"venue_name"`
	Neighborhood string   `json:"neighborhood"`
	Rating       *float64 `json:"rating"`
	RatingCount  *int     `json:"rating_count"`
	PriceTier    int      `json:"price_tier"` // ordinal 0..4
	Category     string   `json:"category"`
	Date         string   `json:"date"`
	Time         string   `json:"time"` // localized "03:04 PM", America/New_York
	PartySize    int      `json:"party_size"`
	DiningType   string   `json:"dining_type"`
	Link         string   `json:"link"` // dedup key: venue + day + party size
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	IconImage    string   `json:"icon_image"`
}

// PriceLabel renders the price tier as a repeated currency symbol ("$$$").
func (r ReservationRecord) PriceLabel() string { return strings.Repeat("$", r.PriceTier) }

type CategoryStatus string

const (
	// StatusComplete means every page of the category was fetched, including
	// the legitimate "no availability" case.
	StatusComplete CategoryStatus = "complete"

	// StatusPartialFailure means the category degraded: some or all pages were
	// lost. Records collected before the failure are still returned.
	StatusPartialFailure CategoryStatus = "partial_failure"
)

// CategoryResult is the outcome of one category's paginated search.
type CategoryResult struct {
	Category string
	Records  []ReservationRecord
	Status   CategoryStatus
}

// AggregateResult is the merged, deduplicated outcome of one full search.
// Reservation links are unique within Records; multiple time slots at the
// same venue collapse to the first record observed, since the link does not
// encode time-of-day.
type AggregateResult struct {
	Records          []ReservationRecord       `json:"records"`
	TotalCount       int                       `json:"total_count"`
	UniqueVenues     int                       `json:"unique_venues"`
	CategoryStatuses map[string]CategoryStatus `json:"category_statuses"`
	FailedCategories []string                  `json:"failed_categories,omitempty"`

	// Empty distinguishes a completed search with no availability from a
	// search the UI has not yet run. FailedCategories tells the two empty
	// cases apart: complete-but-empty vs everything-failed.
	Empty bool `json:"empty"`
}

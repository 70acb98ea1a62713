package domain

import (
	"context"
	"time"
)

// PageQuery is one page request against the upstream venue search.
type PageQuery struct {
	Category   string
	Day        string // "2006-01-02"
	PartySize  int
	TimeFilter string // 24h "HH:MM", empty = any time
	Page       int
}

// SearchPage is one validated page of upstream results.
type SearchPage struct {
	TotalPages int
	Hits       []VenueHit
}

// VenueHit is a single venue as reported by the upstream search, lifted out
// of the wire shape but not yet normalized into records.
type VenueHit struct {
	Name         string
	Neighborhood string
	URLSlug      string
	Rating       *float64
	RatingCount  *int
	PriceRangeID int
	Cuisine      []string
	Lat          float64
	Lng          float64
	Images       []string
	Slots        []Slot
}

// Slot is one bookable time-of-day instance on a hit.
type Slot struct {
	Start      string // wall clock "2006-01-02 15:04:05" in the venue's timezone
	DiningType string
}

// SearchClient fetches a single page, retrying transient upstream failures.
type SearchClient interface {
	Search(ctx context.Context, q PageQuery) (*SearchPage, error)
}

// Cache is the session-scoped result cache.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

package resy

import "tablescout/internal/domain"

// Wire shapes for POST /3/venuesearch/search. Pointer fields on the response
// let validation distinguish "absent" from "zero" instead of silently
// defaulting a structurally wrong payload.

type searchPayload struct {
	Availability bool        `json:"availability"`
	Page         int         `json:"page"`
	PerPage      int         `json:"per_page"`
	SlotFilter   slotFilter  `json:"slot_filter"`
	Types        []string    `json:"types"`
	OrderBy      string      `json:"order_by"`
	Geo          geoArea     `json:"geo"`
	VenueFilter  venueFilter `json:"venue_filter"`
}

type slotFilter struct {
	Day        string `json:"day"`
	PartySize  int    `json:"party_size"`
	TimeFilter string `json:"time_filter,omitempty"`
}

type geoArea struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
}

type venueFilter struct {
	Cuisine string `json:"cuisine"`
}

type searchResponse struct {
	Meta *struct {
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
	Search *struct {
		Hits []wireHit `json:"hits"`
	} `json:"search"`
}

type wireHit struct {
	Name         string `json:"name"`
	Neighborhood string `json:"neighborhood"`
	URLSlug      string `json:"url_slug"`
	Rating       *struct {
		Average *float64 `json:"average"`
		Count   *int     `json:"count"`
	} `json:"rating"`
	PriceRangeID int      `json:"price_range_id"`
	Cuisine      []string `json:"cuisine"`
	Geoloc       struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"_geoloc"`
	Images       []string `json:"images"`
	Availability struct {
		Slots []wireSlot `json:"slots"`
	} `json:"availability"`
}

type wireSlot struct {
	Date struct {
		Start string `json:"start"`
	} `json:"date"`
	Config struct {
		Type string `json:"type"`
	} `json:"config"`
}

func (h wireHit) toDomain() domain.VenueHit {
	out := domain.VenueHit{
		Name:         h.Name,
		Neighborhood: h.Neighborhood,
		URLSlug:      h.URLSlug,
		PriceRangeID: h.PriceRangeID,
		Cuisine:      h.Cuisine,
		Lat:          h.Geoloc.Lat,
		Lng:          h.Geoloc.Lng,
		Images:       h.Images,
	}
	if h.Rating != nil {
		out.Rating = h.Rating.Average
		out.RatingCount = h.Rating.Count
	}
	for _, s := range h.Availability.Slots {
		out.Slots = append(out.Slots, domain.Slot{Start: s.Date.Start, DiningType: s.Config.Type})
	}
	return out
}

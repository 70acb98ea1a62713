package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tablescout/internal/domain"
)

const (
	slotStartLayout = "2006-01-02 15:04:05"
	linkFormat      = "https://resy.com/cities/new-york-ny/venues/%s?date=%s&seats=%d"

	// shown when a hit carries no images
	placeholderIcon = "https://img.freepik.com/premium-vector/cartoon-orange_24381-186.jpg"
)

// mapHits normalizes one page of hits into reservation records: one record per
// availability slot, slot start interpreted as wall clock in loc.
func mapHits(hits []domain.VenueHit, req domain.SearchRequest, loc *time.Location) []domain.ReservationRecord {
	var out []domain.ReservationRecord
	for _, h := range hits {
		category := "Unknown"
		if len(h.Cuisine) > 0 {
			category = h.Cuisine[0]
		}
		icon := placeholderIcon
		if len(h.Images) > 0 {
			icon = h.Images[0]
		}
		link := fmt.Sprintf(linkFormat, h.URLSlug, req.Day, req.PartySize)

		for _, s := range h.Slots {
			start, err := time.ParseInLocation(slotStartLayout, s.Start, loc)
			if err != nil {
				log.Warn().Str("venue", h.Name).Str("start", s.Start).
					Msg("unparseable slot start, skipping slot")
				continue
			}
			out = append(out, domain.ReservationRecord{
				VenueName:    h.Name,
				Neighborhood: strings.TrimSpace(h.Neighborhood),
				Rating:       h.Rating,
				RatingCount:  h.RatingCount,
				PriceTier:    h.PriceRangeID,
				Category:     category,
				Date:         start.Format("2006-01-02"),
				Time:         start.Format("03:04 PM"),
				PartySize:    req.PartySize,
				DiningType:   s.DiningType,
				Link:         link,
				Lat:          h.Lat,
				Lng:          h.Lng,
				IconImage:    icon,
			})
		}
	}
	return out
}

package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tablescout/internal/adapters/observability"
	"tablescout/internal/domain"
)

// categoryWorker drives one category's full paginated search. Pages are
// fetched strictly sequentially; a failed or malformed page is skipped rather
// than discarding pages already collected.
type categoryWorker struct {
	client  domain.SearchClient
	pageCap int
	loc     *time.Location
}

func (w *categoryWorker) run(ctx context.Context, category string, req domain.SearchRequest, timeFilter string) domain.CategoryResult {
	q := domain.PageQuery{
		Category:   category,
		Day:        req.Day,
		PartySize:  req.PartySize,
		TimeFilter: timeFilter,
		Page:       1,
	}

	// probe for the reported page count
	first, err := w.client.Search(ctx, q)
	if err != nil {
		log.Warn().Err(err).Str("cuisine", category).Msg("category search failed")
		observability.ObserveCategory(string(domain.StatusPartialFailure))
		return domain.CategoryResult{Category: category, Status: domain.StatusPartialFailure}
	}

	pages := first.TotalPages
	if pages > w.pageCap {
		pages = w.pageCap // bound worst-case latency and upstream load
	}
	if pages <= 0 {
		// legitimate "no availability", not a failure
		log.Info().Str("cuisine", category).Msg("no reservations found")
		observability.ObserveCategory(string(domain.StatusComplete))
		return domain.CategoryResult{Category: category, Status: domain.StatusComplete}
	}

	var records []domain.ReservationRecord
	degraded := false
	for page := 1; page <= pages; page++ {
		q.Page = page
		pg, err := w.client.Search(ctx, q)
		if err != nil {
			// one bad page must not discard pages already fetched
			log.Warn().Err(err).Str("cuisine", category).Int("page", page).
				Msg("skipping failed page")
			degraded = true
			continue
		}
		records = append(records, mapHits(pg.Hits, req, w.loc)...)
	}

	status := domain.StatusComplete
	if degraded {
		status = domain.StatusPartialFailure
	}
	observability.ObserveCategory(string(status))
	log.Info().Str("cuisine", category).Int("pages", pages).
		Int("records", len(records)).Str("status", string(status)).Msg("category search done")
	return domain.CategoryResult{Category: category, Records: records, Status: status}
}

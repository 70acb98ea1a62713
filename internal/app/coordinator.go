package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"tablescout/internal/domain"
)

// SearchService fans one request out across all categories with bounded
// concurrency, fans the results back in, and deduplicates by reservation link.
type SearchService struct {
	client     domain.SearchClient
	cache      domain.Cache // optional
	categories []string
	workers    int64 // pool size, kept well below the category count to avoid upstream rate limiting
	pageCap    int
	cacheTTL   time.Duration
	loc        *time.Location
}

func NewSearchService(client domain.SearchClient, cache domain.Cache, categories []string, workers, pageCap int, cacheTTL time.Duration) (*SearchService, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	if workers <= 0 {
		workers = 5
	}
	if pageCap <= 0 {
		pageCap = 10
	}
	return &SearchService{
		client:     client,
		cache:      cache,
		categories: categories,
		workers:    int64(workers),
		pageCap:    pageCap,
		cacheTTL:   cacheTTL,
		loc:        loc,
	}, nil
}

// Search runs one full availability search. It returns an error only for an
// invalid request (time format, party size); upstream failures degrade the
// affected categories and are reported through the result's status manifest,
// so the UI can say "results may be incomplete" instead of silently
// under-reporting.
func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (domain.AggregateResult, error) {
	if req.PartySize < 1 || req.PartySize > 10 {
		return domain.AggregateResult{}, fmt.Errorf("%w: %d", domain.ErrInvalidPartySize, req.PartySize)
	}
	var timeFilter string
	if req.TargetTime != "" {
		tf, err := ParseTimeFilter(req.TargetTime)
		if err != nil {
			return domain.AggregateResult{}, err
		}
		timeFilter = tf
	}

	// session cache, keyed by the literal request parameters
	key := fmt.Sprintf("search:%s:%d:%s", req.Day, req.PartySize, timeFilter)
	if s.cache != nil {
		var cached domain.AggregateResult
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	start := time.Now()
	w := &categoryWorker{client: s.client, pageCap: s.pageCap, loc: s.loc}
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	results := make(chan domain.CategoryResult, len(s.categories))

	for _, c := range s.categories {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			results <- domain.CategoryResult{Category: c, Status: domain.StatusPartialFailure}
			continue
		}
		wg.Add(1)
		go func(cuisine string) {
			defer wg.Done()
			defer sem.Release(1)
			results <- w.run(ctx, cuisine, req, timeFilter)
		}(c)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Merge as each category completes. First-seen-wins on the reservation
	// link; seen order follows completion order, so which category's record
	// survives a collision is not deterministic across runs.
	agg := domain.AggregateResult{CategoryStatuses: make(map[string]domain.CategoryStatus, len(s.categories))}
	seen := make(map[string]struct{})
	venues := make(map[string]struct{})
	for res := range results {
		agg.CategoryStatuses[res.Category] = res.Status
		if res.Status != domain.StatusComplete {
			agg.FailedCategories = append(agg.FailedCategories, res.Category)
		}
		for _, r := range res.Records {
			if _, dup := seen[r.Link]; dup {
				continue
			}
			seen[r.Link] = struct{}{}
			venues[r.VenueName] = struct{}{}
			agg.Records = append(agg.Records, r)
		}
	}
	sort.Strings(agg.FailedCategories)
	agg.TotalCount = len(agg.Records)
	agg.UniqueVenues = len(venues)
	agg.Empty = agg.TotalCount == 0

	log.Info().Str("day", req.Day).Int("party_size", req.PartySize).
		Int("records", agg.TotalCount).Int("venues", agg.UniqueVenues).
		Int("failed_categories", len(agg.FailedCategories)).
		Dur("duration", time.Since(start)).Msg("search complete")
	if agg.Empty {
		log.Warn().Str("day", req.Day).Msg("no reservations found in any category")
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, agg, s.cacheTTL)
	}
	return agg, nil
}

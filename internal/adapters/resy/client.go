package resy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"tablescout/internal/adapters/observability"
	"tablescout/internal/domain"
)

const (
	searchPath  = "/3/venuesearch/search"
	maxAttempts = 3
	perPage     = 100
)

// Search area covering Manhattan. The geographic scope is fixed, not
// user-configurable.
var manhattan = geoArea{Latitude: 40.712941, Longitude: -74.006393, Radius: 35420}

// Client issues venue-search page requests with client-side rate limiting and
// bounded retries for transient failures.
type Client struct {
	base string
	hc   *http.Client
	key  string
	ua   string
	rl   *rate.Limiter

	// injectable for deterministic tests
	backoff func(attempt int) time.Duration
	sleep   func(ctx context.Context, d time.Duration) bool
}

func New(base, key, userAgent string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:    base,
		hc:      &http.Client{Timeout: 10 * time.Second},
		key:     key,
		ua:      userAgent,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		backoff: defaultBackoff,
		sleep:   sleepCtx,
	}, nil
}

// SetHTTPClient swaps the underlying HTTP client (for testing).
func (c *Client) SetHTTPClient(hc *http.Client) { c.hc = hc }

// SetBackoff swaps the backoff schedule (for testing).
func (c *Client) SetBackoff(f func(attempt int) time.Duration) { c.backoff = f }

// Search fetches one page. Transient failures (HTTP 502, network errors) are
// retried up to maxAttempts with an increasing delay; any other non-2xx status
// aborts immediately as domain.ErrNonRetryableHTTP. A body that is not valid
// JSON, or is missing meta/search, aborts as domain.ErrMalformedResponse
// without retrying. Exhausting all attempts yields domain.ErrExhaustedRetries,
// which is distinct from a legitimate empty page set.
func (c *Client) Search(ctx context.Context, q domain.PageQuery) (*domain.SearchPage, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(searchPayload{
		Availability: true,
		Page:         q.Page,
		PerPage:      perPage,
		SlotFilter:   slotFilter{Day: q.Day, PartySize: q.PartySize, TimeFilter: q.TimeFilter},
		Types:        []string{"venue"},
		OrderBy:      "availability",
		Geo:          manhattan,
		VenueFilter:  venueFilter{Cuisine: q.Category},
	})
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+searchPath, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", fmt.Sprintf("ResyAPI api_key=%q", c.key))
		req.Header.Set("User-Agent", c.ua)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			// network error or context canceled
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			observability.ObserveUpstream("resy", 0, time.Since(start))
			lastErr = err
			if attempt < maxAttempts {
				observability.ObserveRetry("resy", "network")
				log.Warn().Err(err).Str("cuisine", q.Category).Int("page", q.Page).
					Int("attempt", attempt).Msg("network error, retrying")
				if c.sleep(ctx, c.backoff(attempt)) {
					continue
				}
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			break
		}
		observability.ObserveUpstream("resy", resp.StatusCode, time.Since(start))

		if resp.StatusCode == http.StatusBadGateway {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if attempt < maxAttempts {
				observability.ObserveRetry("resy", "transient_status")
				log.Warn().Str("cuisine", q.Category).Int("page", q.Page).
					Int("attempt", attempt).Msg("502 from upstream, retrying")
				if c.sleep(ctx, c.backoff(attempt)) {
					continue
				}
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			break
		}

		if resp.StatusCode != http.StatusOK {
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return nil, fmt.Errorf("%w: status %d: %s",
				domain.ErrNonRetryableHTTP, resp.StatusCode, strings.TrimSpace(string(b)))
		}

		var out searchResponse
		err = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
		}
		if out.Meta == nil || out.Search == nil {
			return nil, fmt.Errorf("%w: missing meta or search", domain.ErrMalformedResponse)
		}

		page := &domain.SearchPage{TotalPages: out.Meta.TotalPages}
		for _, h := range out.Search.Hits {
			page.Hits = append(page.Hits, h.toDomain())
		}
		return page, nil
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", domain.ErrExhaustedRetries, maxAttempts, lastErr)
}

// defaultBackoff grows linearly with the attempt number: 3s, 4s, ...
// (2s base plus one second per attempt).
func defaultBackoff(attempt int) time.Duration {
	return 2*time.Second + time.Duration(attempt)*time.Second
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

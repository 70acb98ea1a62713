package resy_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tablescout/internal/adapters/resy"
	"tablescout/internal/domain"
)

func newClient(t *testing.T, base string) *resy.Client {
	t.Helper()
	cl, err := resy.New(base, "test-key", "tablescout-test/1.0", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cl.SetBackoff(func(int) time.Duration { return 0 })
	return cl
}

func okPage(totalPages int, hits ...map[string]any) map[string]any {
	return map[string]any{
		"meta":   map[string]any{"total_pages": totalPages},
		"search": map[string]any{"hits": hits},
	}
}

func sampleHit(name, slug string) map[string]any {
	return map[string]any{
		"name":           name,
		"neighborhood":   "  SoHo ",
		"url_slug":       slug,
		"rating":         map[string]any{"average": 4.5, "count": 120},
		"price_range_id": 3,
		"cuisine":        []string{"Sushi", "Japanese"},
		"_geoloc":        map[string]any{"lat": 40.72, "lng": -74.0},
		"images":         []string{"https://example.com/a.jpg"},
		"availability": map[string]any{
			"slots": []map[string]any{
				{"date": map[string]any{"start": "2024-06-01 18:00:00"}, "config": map[string]any{"type": "Dining Room"}},
			},
		},
	}
}

func query(page int) domain.PageQuery {
	return domain.PageQuery{Category: "Sushi", Day: "2024-06-01", PartySize: 2, TimeFilter: "18:00", Page: page}
}

func TestSearch_RetriesOn502ThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_ = json.NewEncoder(w).Encode(okPage(1, sampleHit("Sushi Nakazawa", "sushi-nakazawa")))
		}
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	page, err := cl.Search(context.Background(), query(1))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.TotalPages != 1 || len(page.Hits) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Fatalf("expected exactly 3 attempts, got %d", got)
	}
	h := page.Hits[0]
	if h.Name != "Sushi Nakazawa" || h.URLSlug != "sushi-nakazawa" {
		t.Fatalf("unexpected hit: %+v", h)
	}
	if h.Rating == nil || *h.Rating != 4.5 || h.RatingCount == nil || *h.RatingCount != 120 {
		t.Fatalf("rating not mapped: %+v", h)
	}
	if len(h.Slots) != 1 || h.Slots[0].DiningType != "Dining Room" {
		t.Fatalf("slots not mapped: %+v", h.Slots)
	}
}

func TestSearch_ExhaustedRetries(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	_, err := cl.Search(context.Background(), query(1))
	if !errors.Is(err, domain.ErrExhaustedRetries) {
		t.Fatalf("expected ErrExhaustedRetries, got %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Fatalf("expected retry bound of 3 attempts, got %d", got)
	}
}

func TestSearch_NonRetryableStatusAbortsImmediately(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	_, err := cl.Search(context.Background(), query(1))
	if !errors.Is(err, domain.ErrNonRetryableHTTP) {
		t.Fatalf("expected ErrNonRetryableHTTP, got %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("403 must not be retried, got %d attempts", got)
	}
}

func TestSearch_MalformedJSONNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	_, err := cl.Search(context.Background(), query(1))
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("malformed body must not be retried, got %d attempts", got)
	}
}

func TestSearch_MissingTopLevelFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"unexpected": true})
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	_, err := cl.Search(context.Background(), query(1))
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestSearch_NetworkErrorRetriedThenExhausted(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close() // connection refused from here on

	cl := newClient(t, url)
	_, err := cl.Search(context.Background(), query(1))
	if !errors.Is(err, domain.ErrExhaustedRetries) {
		t.Fatalf("expected ErrExhaustedRetries for network failure, got %v", err)
	}
}

func TestSearch_PayloadShapeAndAuth(t *testing.T) {
	var captured map[string]any
	var auth, ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		ua = r.Header.Get("User-Agent")
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(okPage(0))
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	if _, err := cl.Search(context.Background(), query(4)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if auth != `ResyAPI api_key="test-key"` {
		t.Fatalf("unexpected auth header: %q", auth)
	}
	if ua != "tablescout-test/1.0" {
		t.Fatalf("unexpected user-agent: %q", ua)
	}
	if captured["availability"] != true || captured["order_by"] != "availability" {
		t.Fatalf("unexpected payload: %+v", captured)
	}
	if captured["page"].(float64) != 4 || captured["per_page"].(float64) != 100 {
		t.Fatalf("unexpected paging fields: %+v", captured)
	}
	sf := captured["slot_filter"].(map[string]any)
	if sf["day"] != "2024-06-01" || sf["party_size"].(float64) != 2 || sf["time_filter"] != "18:00" {
		t.Fatalf("unexpected slot_filter: %+v", sf)
	}
	if captured["venue_filter"].(map[string]any)["cuisine"] != "Sushi" {
		t.Fatalf("unexpected venue_filter: %+v", captured["venue_filter"])
	}
	geo := captured["geo"].(map[string]any)
	if geo["latitude"].(float64) != 40.712941 || geo["radius"].(float64) != 35420 {
		t.Fatalf("unexpected geo: %+v", geo)
	}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := resy.New("http://localhost", "", "ua", 5); err == nil {
		t.Fatalf("expected error for empty API key")
	}
}

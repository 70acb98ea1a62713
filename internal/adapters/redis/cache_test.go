package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "tablescout/internal/adapters/redis"
	"tablescout/internal/domain"
)

func TestCache_SetGetRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	agg := domain.AggregateResult{
		Records: []domain.ReservationRecord{
			{VenueName: "Carbone", Link: "https://resy.com/cities/new-york-ny/venues/carbone?date=2024-06-01&seats=2"},
		},
		TotalCount:       1,
		UniqueVenues:     1,
		CategoryStatuses: map[string]domain.CategoryStatus{"Italian": domain.StatusComplete},
	}
	key := "search:2024-06-01:2:18:00"

	if err := c.Set(ctx, key, agg, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.AggregateResult
	ok, err := c.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got.TotalCount != 1 || len(got.Records) != 1 || got.Records[0].VenueName != "Carbone" {
		t.Fatalf("unexpected cached value: %+v", got)
	}
	if got.CategoryStatuses["Italian"] != domain.StatusComplete {
		t.Fatalf("statuses not preserved: %+v", got.CategoryStatuses)
	}
}

func TestCache_MissAndExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	var got domain.AggregateResult
	ok, err := c.Get(ctx, "search:absent", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss for absent key")
	}

	if err := c.Set(ctx, "search:expiring", domain.AggregateResult{TotalCount: 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	ok, err = c.Get(ctx, "search:expiring", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected TTL expiry")
	}
}

func TestCache_Del(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", domain.AggregateResult{}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var got domain.AggregateResult
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatalf("expected key to be deleted")
	}
}

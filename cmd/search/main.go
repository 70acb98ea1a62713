// One-shot search: runs the full fan-out once and prints the aggregate as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"tablescout/internal/adapters/observability"
	redisad "tablescout/internal/adapters/redis"
	"tablescout/internal/adapters/resy"
	"tablescout/internal/app"
	"tablescout/internal/domain"
	"tablescout/internal/shared"
)

func main() {
	day := flag.String("date", time.Now().Format("2006-01-02"), "reservation date (YYYY-MM-DD)")
	partySize := flag.Int("party", 2, "party size (1-10)")
	targetTime := flag.String("time", "", `target time, e.g. "06:00 PM" (empty = any)`)
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	client, err := resy.New(cfg.ResyBase, cfg.ResyKey, cfg.UserAgent, cfg.RateRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize resy client")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	svc, err := app.NewSearchService(client, cache, shared.Cuisines, cfg.Workers, cfg.PageCap, cfg.CacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize search service")
	}

	req := domain.SearchRequest{Day: *day, PartySize: *partySize, TargetTime: *targetTime}
	log.Info().Str("day", req.Day).Int("party_size", req.PartySize).
		Str("time", req.TargetTime).Msg("search starting")

	agg, err := svc.Search(context.Background(), req)
	if err != nil {
		log.Fatal().Err(err).Msg("search failed")
	}
	if len(agg.FailedCategories) > 0 {
		log.Warn().Strs("cuisines", agg.FailedCategories).Msg("results may be incomplete")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(agg); err != nil {
		log.Fatal().Err(err).Msg("encode result failed")
	}
}

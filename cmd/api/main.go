package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "tablescout/internal/adapters/http_server"
	"tablescout/internal/adapters/observability"
	redisad "tablescout/internal/adapters/redis"
	"tablescout/internal/adapters/resy"
	"tablescout/internal/app"
	"tablescout/internal/domain"
	"tablescout/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	client, err := resy.New(cfg.ResyBase, cfg.ResyKey, cfg.UserAgent, cfg.RateRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize resy client")
	}

	// cache is optional; without redis every search hits the upstream
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	svc, err := app.NewSearchService(client, cache, shared.Cuisines, cfg.Workers, cfg.PageCap, cfg.CacheTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize search service")
	}

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Int("cuisines", len(shared.Cuisines)).
		Int("workers", cfg.Workers).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

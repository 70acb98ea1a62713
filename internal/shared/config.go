package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	ResyBase    string
	ResyKey     string
	UserAgent   string
	Workers     int
	PageCap     int
	RateRPS     int
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		ResyBase:    env("RESY_BASE_URL", "https://api.resy.com"),
		ResyKey:     env("RESY_API_KEY", ""),
		UserAgent:   env("RESY_USER_AGENT", "tablescout/1.0"),
		Workers:     atoi("SEARCH_WORKERS", 5),
		PageCap:     atoi("SEARCH_PAGE_CAP", 10),
		RateRPS:     atoi("RESY_RPS", 5),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.ResyKey == "" {
		log.Warn().Msg("RESY_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

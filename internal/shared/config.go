package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	StoreBackend  string // badger|redis|mysql|memory
	BadgerDir     string
	MySQLDSN      string
	RedisAddr     string // empty disables the advice cache
	RedisDB       int
	RedisPass     string
	AdvisorBase   string
	AdvisorKey    string
	AdvisorModel  string
	AdvisorRPS    int
	AdminUser     string
	AdminPass     string
	Workers       int
	CacheTTL      time.Duration
	FetchDelay    time.Duration
	LocationDelay time.Duration
	MutationDelay time.Duration
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
	ms := func(k string, def int) time.Duration {
		return time.Duration(atoi(k, def)) * time.Millisecond
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		StoreBackend:  env("STORE_BACKEND", "badger"),
		BadgerDir:     env("BADGER_DIR", "./data/snowland"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/snowland?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		RedisPass:     env("REDIS_PASSWORD", ""),
		AdvisorBase:   env("ADVISOR_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		AdvisorKey:    env("ADVISOR_API_KEY", ""),
		AdvisorModel:  env("ADVISOR_MODEL", "gemini-2.5-flash"),
		AdvisorRPS:    atoi("ADVISOR_RPS", 2),
		AdminUser:     env("ADMIN_USER", "admin"),
		AdminPass:     env("ADMIN_PASSWORD", "snowland2025"),
		Workers:       atoi("WARM_WORKERS", 4),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 86400)) * time.Second,
		FetchDelay:    ms("FETCH_DELAY_MS", 400),
		LocationDelay: ms("LOCATION_DELAY_MS", 250),
		MutationDelay: ms("MUTATION_DELAY_MS", 300),
	}
	if c.Workers < 1 {
		log.Warn().Int("workers", c.Workers).Msg("WARM_WORKERS must be at least 1; using 1")
		c.Workers = 1
	}
	if c.AdvisorKey == "" {
		log.Warn().Msg("ADVISOR_API_KEY is empty; travel tips will use fallback text")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

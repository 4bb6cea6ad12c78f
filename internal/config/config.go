package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr            string        // API bind address, e.g., ":8080"
	LogDir          string        // logs directory
	DatabaseURL     string        // postgres://... for Postgres, a file path for SQLite, empty for in-memory
	ProbeTimeout    time.Duration // hard wall-clock bound on a single probe
	RateLimitPerMin int           // requests per minute per client IP; <= 0 disables
	RateBurst       int
	AllowedOrigins  []string // CORS allowlist; empty means allow all
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	// Empty means the in-memory store.
	db := os.Getenv("DATABASE_URL")

	probeTimeout := 10 * time.Second
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			probeTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	ratePerMin := 120
	if v := os.Getenv("RATE_LIMIT_PER_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			ratePerMin = n
		}
	}
	rateBurst := 60
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rateBurst = n
		}
	}

	var origins []string
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Addr:            addr,
		LogDir:          logDir,
		DatabaseURL:     db,
		ProbeTimeout:    probeTimeout,
		RateLimitPerMin: ratePerMin,
		RateBurst:       rateBurst,
		AllowedOrigins:  origins,
	}
}

// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "FAIL", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "WARN", msg) }
	ok := func(msg string) { fmt.Println("OK  ", msg) }

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	timeout := strings.TrimSpace(os.Getenv("PROBE_TIMEOUT_MS"))
	rate := strings.TrimSpace(os.Getenv("RATE_LIMIT_PER_MIN"))
	origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))

	if addr == "" {
		warn("ADDR is empty; the API defaults to :8080.")
	} else {
		ok("ADDR=" + addr)
	}

	switch {
	case db == "":
		warn("DATABASE_URL empty: results live in memory and vanish on restart.")
	case strings.HasPrefix(db, "postgres://"), strings.HasPrefix(db, "postgresql://"):
		ok("DATABASE_URL -> postgres backend")
	default:
		ok("DATABASE_URL -> sqlite file " + db)
	}

	if timeout != "" {
		if ms, err := strconv.Atoi(timeout); err != nil || ms <= 0 {
			fail("PROBE_TIMEOUT_MS must be a positive integer, got " + timeout)
		} else {
			ok(fmt.Sprintf("PROBE_TIMEOUT_MS=%dms", ms))
		}
	}

	if rate != "" {
		if n, err := strconv.Atoi(rate); err != nil {
			fail("RATE_LIMIT_PER_MIN must be an integer, got " + rate)
		} else if n <= 0 {
			warn("RATE_LIMIT_PER_MIN <= 0 disables rate limiting.")
		}
	}

	if origins == "" {
		warn("ALLOWED_ORIGINS empty: CORS allows every origin.")
	} else if strings.Contains(origins, " ") && !strings.Contains(origins, ",") {
		warn("ALLOWED_ORIGINS looks space-separated; use commas, e.g. https://a.com,https://b.com")
	} else {
		ok("ALLOWED_ORIGINS=" + origins)
	}

	ok("preflight passed")
}

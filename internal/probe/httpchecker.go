package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single probe end to end, redirects and body
// included.
const DefaultTimeout = 10 * time.Second

// HTTPChecker probes a URL with one GET request. http.Client follows
// redirects on its own, so the measured latency covers the whole chain.
type HTTPChecker struct {
	Client  *http.Client
	timeout time.Duration
}

func NewHTTPChecker(timeout time.Duration) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPChecker{
		Client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Check never returns an error: every failure mode is folded into the
// Outcome so the caller can persist it like any other result.
func (h *HTTPChecker) Check(ctx context.Context, target string) Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return failure(fmt.Sprintf("Unexpected error: %v", err))
	}

	start := time.Now()
	resp, err := h.Client.Do(req)
	if err != nil {
		return failure(h.classify(err))
	}
	defer resp.Body.Close()

	// Drain the body so latency reflects the fully received response, the
	// same clock a real client experiences. Client.Timeout still applies
	// while reading.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return failure(h.classify(err))
	}
	latency := time.Since(start).Seconds() * 1000 // ms

	code := resp.StatusCode
	return Outcome{StatusCode: &code, LatencyMS: &latency}
}

// classify maps transport failures to the stable message families the API
// exposes: timeouts, reachability errors, and everything else.
func (h *HTTPChecker) classify(err error) string {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Sprintf("Request timeout (> %d seconds)", int(h.timeout/time.Second))
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Sprintf("Request error: %v", uerr.Err)
	}
	return fmt.Sprintf("Unexpected error: %v", err)
}

func failure(msg string) Outcome {
	return Outcome{ErrorMessage: &msg}
}

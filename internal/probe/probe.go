package probe

import "context"

// Outcome is the result of a single probe attempt.
//
// StatusCode and LatencyMS are nil when the request never completed; then
// ErrorMessage says why. A completed exchange always carries both, even for
// 4xx/5xx responses: a reachable-but-broken target is still a measurement.
type Outcome struct {
	StatusCode   *int
	LatencyMS    *float64
	ErrorMessage *string
}

// Checker performs a single check against a target URL.
type Checker interface {
	Check(ctx context.Context, target string) Outcome
}

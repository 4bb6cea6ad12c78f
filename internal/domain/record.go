package domain

import "time"

// Record is one completed check attempt against a URL.
//
// StatusCode and LatencyMS are pointers so a probe that never completed
// (timeout, DNS failure, refused connection) serializes as null instead of a
// misleading zero. A present StatusCode always comes with a present LatencyMS.
type Record struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	StatusCode   *int      `json:"status_code"`
	LatencyMS    *float64  `json:"response_time_ms"`
	IsHealthy    bool      `json:"is_healthy"`
	ErrorMessage *string   `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}

package domain

// Stats summarizes the whole result set. The latency fields and
// MostMonitoredURL are nil when no record can contribute to them; an empty
// store yields the zero-state (all counts 0, uptime 0.0, everything else nil).
type Stats struct {
	TotalChecks      int      `json:"total_checks"`
	HealthyCount     int      `json:"healthy_count"`
	UnhealthyCount   int      `json:"unhealthy_count"`
	UptimePercentage float64  `json:"uptime_percentage"`
	AverageLatencyMS *float64 `json:"average_response_time_ms"`
	FastestLatencyMS *float64 `json:"fastest_response_ms"`
	SlowestLatencyMS *float64 `json:"slowest_response_ms"`
	MostMonitoredURL *string  `json:"most_monitored_url"`
}

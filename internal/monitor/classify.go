package monitor

// IsHealthy reports whether a status code counts as "up". 2xx and 3xx are
// healthy (a redirect is not an outage); everything else is not, and a nil
// code means the probe never completed, which is always unhealthy.
func IsHealthy(statusCode *int) bool {
	if statusCode == nil {
		return false
	}
	return *statusCode >= 200 && *statusCode < 400
}

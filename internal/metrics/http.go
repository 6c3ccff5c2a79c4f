package metrics

import (
	"strconv"
	"time"
)

// RecordHTTPRequest counts one request and observes its latency. The
// status label is the class ("2xx", "4xx", ...) rather than the exact
// code to keep label cardinality down.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := "unknown"
	if statusCode >= 200 && statusCode < 600 {
		status = strconv.Itoa(statusCode/100) + "xx"
	} else if statusCode >= 600 {
		status = "5xx"
	}
	m.safeExecute("RecordHTTPRequest", func() {
		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	})
}

// ShouldSkipEndpoint reports whether a path is operational plumbing
// that should not show up in request metrics.
func ShouldSkipEndpoint(path string) bool {
	switch path {
	case "/metrics", "/health", "/ready":
		return true
	}
	return false
}

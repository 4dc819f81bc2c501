package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks the latency of API operations
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "loyalty_request_duration_seconds",
			Help: "Duration of API requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
				10.0,  // 10s
			},
		},
		[]string{"operation", "status"}, // status is success or failed
	)
)

// RecordRequestDuration records the duration of one API operation
func RecordRequestDuration(operation, status string, duration float64) {
	RequestDuration.WithLabelValues(operation, status).Observe(duration)
}

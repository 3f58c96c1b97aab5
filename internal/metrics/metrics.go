package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

var (
	GenerateRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapcode_generate_requests_total",
			Help: "Total number of generate requests handled, by response status",
		},
		[]string{"status"},
	)
	GenerateLatencySeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "snapcode_generate_latency_seconds",
			Help:    "Latency of generate requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
	)
	GeneratedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapcode_generated_bytes_total",
			Help: "Total bytes of generated code returned to callers",
		},
	)
	OpenAITokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openai_tokens_total",
			Help: "Total number of tokens sent/received from OpenAI",
		},
		[]string{"type"}, // type: prompt, completion, total
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

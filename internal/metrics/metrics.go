package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SessionsStarted counts interview sessions started, by kind (scheduled/practice).
	SessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "sessions_started_total",
		Help:      "Total number of interview sessions started",
	}, []string{"kind"})

	// SessionsCompleted counts interview sessions that reached finish.
	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "sessions_completed_total",
		Help:      "Total number of interview sessions completed",
	})

	// GatewayFallbacks counts evaluator calls that fell back to local defaults.
	GatewayFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "gateway_fallbacks_total",
		Help:      "Total evaluator gateway failures recovered by fallback",
	}, []string{"operation"})

	// RoomAutoCompletes counts auto-complete transitions, by trigger path.
	RoomAutoCompletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "room_autocomplete_total",
		Help:      "Total room auto-complete transitions applied",
	}, []string{"trigger"})
)

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

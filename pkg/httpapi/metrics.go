package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jakechorley/escalas/pkg/core/roster"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escalas",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests broken down by route and result.",
	}, []string{"route", "result"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "escalas",
		Subsystem: "http",
		Name:      "latency_seconds",
		Help:      "Latency distribution of HTTP requests.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"route", "result"})

	rosterOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "escalas",
		Subsystem: "roster",
		Name:      "operations_total",
		Help:      "Roster mutations broken down by operation and outcome (ok or rejection reason).",
	}, []string{"operation", "outcome"})
)

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// instrument records count and latency per route template
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ensureRequestID(rec, r)

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		result := "2xx"
		switch {
		case rec.status >= 500:
			result = "5xx"
		case rec.status >= 400:
			result = "4xx"
		}

		httpRequests.WithLabelValues(route, result).Inc()
		httpLatency.WithLabelValues(route, result).Observe(time.Since(start).Seconds())
	})
}

func recordOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = roster.Reason(err)
		if outcome == "" {
			outcome = "error"
		}
	}
	rosterOperations.WithLabelValues(operation, outcome).Inc()
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "canteen_orders_placed_total",
		Help: "Orders accepted by the order store",
	})

	OrderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_order_transitions_total",
			Help: "Order status transitions applied, by target status",
		},
		[]string{"to"},
	)

	RatingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "canteen_ratings_submitted_total",
		Help: "Ratings upserted",
	})

	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "canteen_reports_generated_total",
		Help: "Daily reports generated",
	})

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_events_consumed_total",
			Help: "Kafka events processed by the aggregation consumer",
		},
		[]string{"type", "result"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "canteen_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "route", "method", "code"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument returns a mux middleware that records request latency labelled
// by the matched route template.
func Instrument(service string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			route := "unmatched"
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			requestDuration.WithLabelValues(service, route, r.Method, strconv.Itoa(rec.status)).
				Observe(time.Since(start).Seconds())
		})
	}
}

package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guildmaster_http_requests_total",
			Help: "Total HTTP requests by route and method.",
		},
		[]string{"route", "method"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "guildmaster_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// Middleware records a counter and latency histogram per matched route.
func Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			timer := prometheus.NewTimer(requestDuration.WithLabelValues(route))
			defer timer.ObserveDuration()
			requestsTotal.WithLabelValues(route, r.Method).Inc()
			next.ServeHTTP(w, r)
		})
	}
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Controller mounts the scrape endpoint on the application router.
type Controller struct {
	Path string
}

func (c *Controller) Key() string {
	return c.Path
}

func (c *Controller) Register(r *mux.Router) {
	r.Handle(c.Path, Handler()).Methods(http.MethodGet)
}

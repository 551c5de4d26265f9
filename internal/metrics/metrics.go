// Package metrics exposes Prometheus collectors for the ad service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a proximity query
const (
	ResultOK                 = "ok"
	ResultInvalidAuth        = "invalid_auth"
	ResultInvalidCoordinates = "invalid_coordinates"
	ResultError              = "error"
)

// Metrics holds the service collectors and the registry serving them
type Metrics struct {
	gatherer        prometheus.Gatherer
	nearbyQueries   *prometheus.CounterVec
	adViews         prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		nearbyQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geoads_nearby_queries_total",
			Help: "Proximity queries by outcome.",
		}, []string{"result"}),
		adViews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geoads_ad_views_total",
			Help: "Ad views recorded by proximity queries.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geoads_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		m.nearbyQueries,
		m.adViews,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveQuery records one proximity query and the views it produced
func (m *Metrics) ObserveQuery(result string, views int) {
	m.nearbyQueries.WithLabelValues(result).Inc()
	if views > 0 {
		m.adViews.Add(float64(views))
	}
}

// Middleware times every request by route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Package metrics exposes front-desk counters and HTTP timings for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"hotel-frontdesk/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "frontdesk"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	checkIns  *prometheus.CounterVec
	checkOuts *prometheus.CounterVec
	nights    prometheus.Histogram
	guests    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_ins_total",
			Help:      "Completed check-ins by room.",
		}, []string{"room"}),
		checkOuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_outs_total",
			Help:      "Completed check-outs by room.",
		}, []string{"room"}),
		nights: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stay_nights",
			Help:      "Length of closed stays in nights.",
			Buckets:   []float64{1, 2, 3, 5, 7, 14, 30},
		}),
		guests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guest_saves_total",
			Help:      "Guest registrations and updates.",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.checkIns, m.checkOuts, m.nights, m.guests,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) CheckedIn(room models.RoomNumber) {
	m.checkIns.WithLabelValues(string(room)).Inc()
}

func (m *Metrics) CheckedOut(room models.RoomNumber, nights int) {
	m.checkOuts.WithLabelValues(string(room)).Inc()
	m.nights.Observe(float64(nights))
}

func (m *Metrics) GuestSaved(created bool) {
	kind := "update"
	if created {
		kind = "create"
	}
	m.guests.WithLabelValues(kind).Inc()
}

// Middleware records every request under its route template, so /api/guests/:id
// is one series however many guests exist.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

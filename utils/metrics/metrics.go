package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry so tests can build as many
// instances as they need without colliding on the default registerer.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	catalogEntities *prometheus.GaugeVec
	notesUploaded   prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studyshare_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyshare_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyshare_cache_hits_total",
		Help: "Total cache hits by key",
	}, []string{"key"})

	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyshare_cache_misses_total",
		Help: "Total cache misses by key",
	}, []string{"key"})

	catalogEntities := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "studyshare_catalog_entities",
		Help: "Number of stored catalog entities by kind",
	}, []string{"kind"})

	notesUploaded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studyshare_notes_uploaded_total",
		Help: "Notes accepted by the upload endpoint",
	})

	registry.MustRegister(
		requestDuration, requestTotal, cacheHits, cacheMisses, catalogEntities, notesUploaded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		catalogEntities: catalogEntities,
		notesUploaded:   notesUploaded,
	}
}

// Registry exposes the underlying registry, used by tests to gather values.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	if m == nil {
		return func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}
	}
	return adaptor.HTTPHandler(m.handler)
}

// Middleware records request counts and latency labelled by route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		m.ObserveHTTPRequest(c.Method(), path, status, time.Since(start))
		return err
	}
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

func (m *Metrics) RecordCacheLookup(key string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.WithLabelValues(key).Inc()
		return
	}
	m.cacheMisses.WithLabelValues(key).Inc()
}

// SetCatalogCounts publishes the latest entity totals.
func (m *Metrics) SetCatalogCounts(universities, faculties, subjects, notes int64) {
	if m == nil {
		return
	}
	m.catalogEntities.WithLabelValues("universities").Set(float64(universities))
	m.catalogEntities.WithLabelValues("faculties").Set(float64(faculties))
	m.catalogEntities.WithLabelValues("subjects").Set(float64(subjects))
	m.catalogEntities.WithLabelValues("notes").Set(float64(notes))
}

func (m *Metrics) NoteUploaded() {
	if m == nil {
		return
	}
	m.notesUploaded.Inc()
}

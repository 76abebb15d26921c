package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notespath_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notespath_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware records request counts and durations per route
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)

			wrapped := &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}

type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

const (
	materialsPrefix = "/api/v1/materials/"
	storagePrefix   = "/storage/v1/object/public/"
)

// normalizePath replaces identifiers in the path with placeholders to keep label cardinality bounded.
//
//	/api/v1/materials/3f2a... → /api/v1/materials/{id}
//	/api/v1/materials/3f2a.../share → /api/v1/materials/{id}/share
//	/storage/v1/object/public/materials/user/file.pdf → /storage/v1/object/public/{bucket}/*
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, materialsPrefix) && len(path) > len(materialsPrefix):
		rest := path[len(materialsPrefix):]
		if _, suffix, found := strings.Cut(rest, "/"); found {
			return materialsPrefix + "{id}/" + suffix
		}
		return materialsPrefix + "{id}"
	case strings.HasPrefix(path, storagePrefix):
		return storagePrefix + "{bucket}/*"
	case strings.HasPrefix(path, "/swagger/"):
		return "/swagger/*"
	}
	return path
}

package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"go.opentelemetry.io/otel/trace"
)

var logRequest = log.Printf

// RequestLogger writes one access line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics := httpsnoop.CaptureMetrics(next, w, r)
		duration := metrics.Duration
		if duration == 0 {
			duration = time.Since(start)
		}

		spanContext := trace.SpanFromContext(r.Context()).SpanContext()
		logRequest(
			"request method=%s path=%s status=%d bytes=%d duration=%s trace_id=%s span_id=%s",
			r.Method,
			r.URL.Path,
			metrics.Code,
			metrics.Written,
			duration,
			spanContext.TraceID().String(),
			spanContext.SpanID().String(),
		)
	})
}

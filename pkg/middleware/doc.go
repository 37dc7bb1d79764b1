// Package middleware provides the HTTP middleware stack of the dashboard
// server. Every middleware has the chi signature func(http.Handler) http.Handler.
//
//   - RequestID assigns an X-Request-ID to each request
//   - Logger writes one slog line per request
//   - Metrics records Prometheus request and render metrics
//   - Tracer wraps requests and renders in OpenTelemetry spans
//   - RateLimiter rejects requests above a global rate
//
// # Prometheus Metrics
//
//	m := middleware.NewMetrics(middleware.WithNamespace("dashboard"))
//	r.Use(m.Handler)
//	r.Handle("/metrics", promhttp.Handler())
//
// Collected series:
//   - dashboard_http_requests_total{route,method,status}
//   - dashboard_http_request_duration_seconds{route,method}
//   - dashboard_http_requests_in_flight
//   - dashboard_page_render_duration_seconds{route}
//   - dashboard_page_render_errors_total{route,reason}
//   - dashboard_http_rate_limited_total
//   - dashboard_dev_reloads_total
//
// # OpenTelemetry
//
// The tracer uses the global tracer provider unless WithTracerProvider is
// given. Spans are stored on the request context, so outbound calls made
// with r.Context() inherit the trace.
//
//	t := middleware.NewTracer(middleware.WithRequestFilter(func(r *http.Request) bool {
//	    return r.URL.Path != "/_dashboard/health"
//	}))
//	r.Use(t.Handler)
package middleware

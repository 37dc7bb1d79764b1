package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// =============================================================================
// Test Helpers
// =============================================================================

type spanRecord struct {
	name   string
	kind   trace.SpanKind
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	errs   []error
	ended  bool
}

type recorder struct {
	mu    sync.Mutex
	spans []*spanRecord
}

func (r *recorder) all() []*spanRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*spanRecord(nil), r.spans...)
}

type recordingProvider struct {
	noop.TracerProvider
	rec *recorder
}

func (p recordingProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	return recordingTracer{Tracer: p.TracerProvider.Tracer(name, opts...), rec: p.rec}
}

type recordingTracer struct {
	trace.Tracer
	rec *recorder
}

func (t recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	sr := &spanRecord{name: name, kind: cfg.SpanKind(), attrs: map[attribute.Key]attribute.Value{}}
	for _, kv := range cfg.Attributes() {
		sr.attrs[kv.Key] = kv.Value
	}
	t.rec.mu.Lock()
	t.rec.spans = append(t.rec.spans, sr)
	t.rec.mu.Unlock()

	ctx, inner := t.Tracer.Start(ctx, name, opts...)
	span := &recordingSpan{Span: inner, rec: sr}
	return trace.ContextWithSpan(ctx, span), span
}

type recordingSpan struct {
	trace.Span
	rec *spanRecord
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string) { s.rec.status = code }
func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.rec.errs = append(s.rec.errs, err)
}
func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.rec.attrs[a.Key] = a.Value
	}
}
func (s *recordingSpan) End(...trace.SpanEndOption) { s.rec.ended = true }

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		w.Write([]byte("body"))
	})
}

// =============================================================================
// RequestID
// =============================================================================

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when missing", "", false},
		{"client id kept", "abc-123_x.y", true},
		{"invalid chars replaced", "bad id\n", false},
		{"too long replaced", strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got != seen {
				t.Errorf("header %q != context %q", got, seen)
			}
			if tt.keep {
				if got != tt.incoming {
					t.Errorf("request id = %q, want %q", got, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("generated id %q is not a UUID: %v", got, err)
			}
		})
	}
}

func TestGetRequestIDEmpty(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("GetRequestID = %q, want empty", id)
	}
}

// =============================================================================
// Logger
// =============================================================================

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := RequestID(Logger(logger)(statusHandler(http.StatusNotFound)))
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{
		"level=WARN",
		"msg=request",
		"component=http",
		"method=GET",
		"path=/missing",
		"status=404",
		"bytes=4",
		"request_id=req-1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %q: %s", want, out)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusBadRequest, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		Logger(logger)(statusHandler(tt.status)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		if !strings.Contains(buf.String(), tt.level) {
			t.Errorf("status %d logged %q, want %s", tt.status, buf.String(), tt.level)
		}
	}
}

// =============================================================================
// RateLimiter
// =============================================================================

func TestRateLimiter(t *testing.T) {
	rejected := 0
	l := NewRateLimiter(0.5, 2).OnReject(func(*http.Request) { rejected++ })
	h := l.Handler(statusHandler(http.StatusOK))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests && rec.Header().Get("Retry-After") != "2" {
			t.Errorf("Retry-After = %q, want 2", rec.Header().Get("Retry-After"))
		}
	}

	if codes[0] != 200 || codes[1] != 200 || codes[2] != 429 {
		t.Errorf("status codes = %v, want [200 200 429]", codes)
	}
	if rejected != 1 {
		t.Errorf("rejected = %d, want 1", rejected)
	}
}

func TestNewRateLimiterBurstDefault(t *testing.T) {
	l := NewRateLimiter(3.2, 0)
	if got := l.limiter.Burst(); got != 4 {
		t.Errorf("Burst() = %d, want 4", got)
	}
	if got := NewRateLimiter(0, 0).limiter.Burst(); got != 1 {
		t.Errorf("Burst() = %d, want 1", got)
	}
}

// =============================================================================
// Tracer
// =============================================================================

func TestTracerHandler(t *testing.T) {
	rec := &recorder{}
	tr := NewTracer(
		WithTracerProvider(recordingProvider{rec: rec}),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	var inner trace.Span
	h := RequestID(tr.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = trace.SpanFromContext(r.Context())
		w.WriteHeader(http.StatusInternalServerError)
	})))
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set(RequestIDHeader, "trace-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	spans := rec.all()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	s := spans[0]
	if s.name != "GET /reports" {
		t.Errorf("span name = %q", s.name)
	}
	if s.kind != trace.SpanKindServer {
		t.Errorf("span kind = %v", s.kind)
	}
	if s.attrs["http.target"].AsString() != "/reports" || s.attrs["test.attr"].AsString() != "ok" {
		t.Errorf("span attrs = %v", s.attrs)
	}
	if s.attrs["dashboard.request_id"].AsString() != "trace-1" {
		t.Errorf("request id attr = %v", s.attrs["dashboard.request_id"])
	}
	if s.attrs["http.status_code"].AsInt64() != 500 {
		t.Errorf("status attr = %v", s.attrs["http.status_code"])
	}
	if s.status != codes.Error || !s.ended {
		t.Errorf("span status = %v ended = %v", s.status, s.ended)
	}
	if rs, ok := inner.(*recordingSpan); !ok || rs.rec != s {
		t.Error("handler should see the request span in its context")
	}
}

func TestTracerFilter(t *testing.T) {
	rec := &recorder{}
	tr := NewTracer(
		WithTracerProvider(recordingProvider{rec: rec}),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/_dashboard/health" }),
	)
	h := tr.Handler(statusHandler(http.StatusOK))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/_dashboard/health", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	spans := rec.all()
	if len(spans) != 1 || spans[0].name != "GET /" {
		t.Fatalf("spans = %+v, want only GET /", spans)
	}
	if spans[0].status != codes.Ok {
		t.Errorf("status = %v, want Ok", spans[0].status)
	}
}

func TestTracerStartRender(t *testing.T) {
	rec := &recorder{}
	tr := NewTracer(WithTracerProvider(recordingProvider{rec: rec}))

	_, end := tr.StartRender(context.Background(), "/")
	end(nil)
	_, end = tr.StartRender(context.Background(), "/broken")
	end(context.Canceled)

	spans := rec.all()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}
	if spans[0].name != "render /" || spans[0].status != codes.Unset || !spans[0].ended {
		t.Errorf("ok render span = %+v", spans[0])
	}
	if spans[1].status != codes.Error || len(spans[1].errs) != 1 {
		t.Errorf("failed render span = %+v", spans[1])
	}
}

func TestNewTracerDefaultsToGlobalProvider(t *testing.T) {
	tr := NewTracer()
	if tr.config.TracerName != defaultTracerName {
		t.Errorf("TracerName = %q", tr.config.TracerName)
	}
	h := tr.Handler(statusHandler(http.StatusOK))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if TraceContext(context.Background()).IsValid() {
		t.Error("empty context should have no valid span context")
	}
}

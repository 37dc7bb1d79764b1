package dashboard

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-go/dashboard/internal/errors"
	"github.com/vango-go/dashboard/pkg/middleware"
	"github.com/vango-go/dashboard/pkg/ui"
	"github.com/vango-go/dashboard/pkg/vdom"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testApp(t *testing.T, mutate func(*Config)) *App {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DevMode = false
	cfg.Logger = testLogger()
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg)
}

func helloPage() *VNode {
	return ui.Center(
		ui.VStack(
			ui.Heading("Hello", ui.Size("7")),
			ui.Text("world", ui.Color(ui.Gray, 11)),
			ui.Spacing("3"),
		),
		ui.Height("100vh"),
	)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestAppServesPage(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/", helloPage, WithTitle("Greeting"), WithDescription("A friendly page"))

	rec := get(t, app, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Greeting</title>",
		`<meta name="description" content="A friendly page">`,
		`<link rel="stylesheet" href="` + StylesheetPath + `">`,
		"Hello",
		"world",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q\n%s", want, body)
		}
	}
	if strings.Contains(body, "_dashboard/reload") {
		t.Error("reload client injected outside dev mode")
	}
}

func TestAppTrailingSlash(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/reports", helloPage)

	if rec := get(t, app, "/reports/"); rec.Code != http.StatusOK {
		t.Errorf("GET /reports/ status = %d, want 200", rec.Code)
	}
}

func TestAppHead(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/", helloPage)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD returned %d body bytes", rec.Body.Len())
	}
}

func TestAppCtxHandler(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/greet", func(ctx Ctx) *VNode {
		return vdom.Div(vdom.Text("hi " + ctx.Query().Get("name") + " at " + ctx.Path()))
	})

	rec := get(t, app, "/greet?name=ada")
	if !strings.Contains(rec.Body.String(), "hi ada at /greet") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestAppPageReplace(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/", func() *VNode { return vdom.Div(vdom.Text("first")) })
	app.Page("/", func() *VNode { return vdom.Div(vdom.Text("second")) })

	body := get(t, app, "/").Body.String()
	if strings.Contains(body, "first") || !strings.Contains(body, "second") {
		t.Errorf("replacement not served: %s", body)
	}
	if n := len(app.Routes()); n != 1 {
		t.Errorf("len(Routes()) = %d, want 1", n)
	}
}

func TestAppPagePanics(t *testing.T) {
	tests := []struct {
		name    string
		handler PageHandler
	}{
		{"nil", nil},
		{"wrong signature", func(int) *VNode { return nil }},
		{"typed nil", (func() *VNode)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			testApp(t, nil).Page("/", tt.handler)
		})
	}
}

func TestAppNotFound(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/", helloPage)

	rec := get(t, app, "/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "404") || !strings.Contains(body, "<title>Not Found</title>") {
		t.Errorf("default not-found page not rendered: %s", body)
	}
}

func TestAppCustomNotFound(t *testing.T) {
	app := testApp(t, nil)
	app.SetNotFound(func(ctx Ctx) *VNode {
		return vdom.Div(vdom.Text("nothing at " + ctx.Request().URL.Path))
	})

	rec := get(t, app, "/nope")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "nothing at /nope") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestAppRenderFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler func() *VNode
		devMode bool
		want    string
	}{
		{
			name:    "nil page",
			handler: func() *VNode { return nil },
			devMode: true,
			want:    "E200",
		},
		{
			name:    "invalid token",
			handler: func() *VNode { return ui.VStack(ui.Spacing("12")) },
			devMode: true,
			want:    "E201",
		},
		{
			name:    "production hides detail",
			handler: func() *VNode { return nil },
			want:    "Internal Server Error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t, func(c *Config) { c.DevMode = tt.devMode })
			app.Page("/", tt.handler)

			rec := get(t, app, "/")
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestAppDevMode(t *testing.T) {
	app := testApp(t, func(c *Config) { c.DevMode = true })
	app.Page("/", helloPage)

	if app.Reload() == nil {
		t.Fatal("Reload() = nil in dev mode")
	}
	rec := get(t, app, "/")
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}
	if !strings.Contains(rec.Body.String(), "_dashboard/reload") {
		t.Error("reload client missing in dev mode")
	}
}

func TestAppHealth(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/", helloPage)
	app.Page("/about", helloPage)

	rec := get(t, app, HealthPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "ok" || got.Routes != 2 {
		t.Errorf("health = %+v", got)
	}
}

func TestAppStylesheet(t *testing.T) {
	app := testApp(t, nil)

	rec := get(t, app, StylesheetPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/css") {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != ui.Stylesheet() {
		t.Error("stylesheet body differs from ui.Stylesheet()")
	}
}

func TestAppStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.a1b2c3d4.js"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := testApp(t, func(c *Config) {
		c.Static = StaticConfig{
			Dir:          dir,
			Prefix:       "/assets",
			CacheControl: CacheControlProduction,
			Headers:      map[string]string{"X-Static": "1"},
		}
	})

	rec := get(t, app, "/assets/app.css")
	if rec.Code != http.StatusOK || rec.Body.String() != "body{}" {
		t.Fatalf("GET /assets/app.css = %d %q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Static") != "1" {
		t.Error("custom static header missing")
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=3600, must-revalidate" {
		t.Errorf("Cache-Control = %q", cc)
	}

	rec = get(t, app, "/assets/app.a1b2c3d4.js")
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=31536000, immutable" {
		t.Errorf("fingerprinted Cache-Control = %q", cc)
	}

	for _, path := range []string{"/app.css", "/assets/../app.css", "/assets/%2e%2e/secret", "/assets/"} {
		if rec := get(t, app, path); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestStaticRelPath(t *testing.T) {
	app := &App{staticFS: http.Dir("."), staticDir: ".", staticPrefix: "/static"}
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/static/app.css", "app.css", true},
		{"/static/img/logo.svg", "img/logo.svg", true},
		{"/static/", "", false},
		{"/other/app.css", "", false},
		{"/static/../go.mod", "", false},
		{"/static/./app.css", "", false},
		{"/static//etc/passwd", "", false},
		{"/static/a\\b", "", false},
		{"/static/a\x00b", "", false},
	}
	for _, tt := range tests {
		got, ok := app.staticRelPath(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("staticRelPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsFingerprinted(t *testing.T) {
	tests := map[string]bool{
		"app.a1b2c3d4.css":      true,
		"js/main.DEADBEEF00.js": true,
		"app.css":               false,
		"app.abc.css":           false,
		"app.zzzzzzzz.css":      false,
	}
	for name, want := range tests {
		if got := isFingerprinted(name); got != want {
			t.Errorf("isFingerprinted(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestAppMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	app := testApp(t, func(c *Config) {
		c.Metrics = middleware.NewMetrics(middleware.WithRegistry(reg))
		c.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	})
	app.Page("/", helloPage)

	get(t, app, "/")
	rec := get(t, app, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"dashboard_http_requests_total",
		"dashboard_page_render_duration_seconds",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestAppRateLimit(t *testing.T) {
	app := testApp(t, func(c *Config) {
		c.RateLimit = RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}
	})
	app.Page("/", helloPage)

	if rec := get(t, app, "/"); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	if rec := get(t, app, "/"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
}

func TestRenderRoute(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/", helloPage, WithTitle("Home"))

	html, err := app.RenderRoute(context.Background(), "/")
	if err != nil {
		t.Fatalf("RenderRoute: %v", err)
	}
	if !strings.Contains(string(html), "<title>Home</title>") {
		t.Errorf("html = %s", html)
	}

	_, err = app.RenderRoute(context.Background(), "/missing")
	if !errors.HasCode(err, errors.CodeRouteNotFound) {
		t.Errorf("err = %v, want %s", err, errors.CodeRouteNotFound)
	}
}

func TestAppServeShutdown(t *testing.T) {
	app := testApp(t, nil)
	app.Page("/", helloPage)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + HealthPath)
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

package dashboard

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vango-go/dashboard/internal/dev"
	"github.com/vango-go/dashboard/internal/errors"
	"github.com/vango-go/dashboard/pkg/middleware"
	"github.com/vango-go/dashboard/pkg/render"
	"github.com/vango-go/dashboard/pkg/router"
	"github.com/vango-go/dashboard/pkg/ui"
)

// Internal endpoints.
const (
	HealthPath     = "/_dashboard/health"
	StylesheetPath = "/_dashboard/styles.css"
)

// App is the main application entry point. It wraps routing, page rendering
// and static file serving into a single http.Handler.
//
//	app := dashboard.New(dashboard.Config{
//	    Static:  dashboard.StaticConfig{Dir: "public", Prefix: "/"},
//	    DevMode: os.Getenv("DASHBOARD_ENV") != "production",
//	})
//
//	routes.Register(app)
//	http.ListenAndServe(":3000", app)
type App struct {
	mux    *chi.Mux
	router *router.Router
	reload *dev.ReloadServer

	// Static file serving
	staticDir    string
	staticPrefix string
	staticFS     http.FileSystem

	config Config
	logger *slog.Logger
}

// New creates a new application with the given configuration.
func New(cfg Config) *App {
	cfg.applyDefaults()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{
		mux:          chi.NewRouter(),
		router:       router.NewRouter(),
		staticDir:    cfg.Static.Dir,
		staticPrefix: cfg.Static.Prefix,
		config:       cfg,
		logger:       logger.With("component", "app"),
	}
	if cfg.Static.Dir != "" {
		app.staticFS = http.Dir(cfg.Static.Dir)
	}

	r := app.mux
	r.Use(chimw.RealIP, middleware.RequestID, middleware.Logger(logger), chimw.Recoverer)
	if cfg.Tracer != nil {
		r.Use(cfg.Tracer.Handler)
	}
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Handler)
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).
			OnReject(func(*http.Request) { cfg.Metrics.RecordRateLimited() })
		r.Use(limiter.Handler)
	}
	r.Use(chimw.CleanPath, chimw.StripSlashes, chimw.GetHead)

	r.Get(HealthPath, app.handleHealth)
	r.Get(StylesheetPath, app.handleStylesheet)
	if cfg.MetricsHandler != nil {
		r.Handle(cfg.MetricsPath, cfg.MetricsHandler)
	}
	if cfg.DevMode {
		app.reload = dev.NewReloadServer(logger)
		app.reload.OnBroadcast(func(msg dev.ReloadMessage) {
			if msg.Type == dev.ReloadTypeFull || msg.Type == dev.ReloadTypeCSS {
				cfg.Metrics.RecordReload()
			}
		})
		r.Handle(dev.ReloadPath, app.reload)
	}
	r.NotFound(app.handleFallback)

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Handler returns the App as an http.Handler.
func (a *App) Handler() http.Handler {
	return a
}

// Page registers a page handler for a path.
// Two handler signatures are supported:
//
//	func IndexPage() *dashboard.VNode
//	func ReportPage(ctx dashboard.Ctx) *dashboard.VNode
//
// Registering the same path twice replaces the earlier page. Page panics on
// an invalid path or handler.
func (a *App) Page(path string, handler PageHandler, opts ...RouteOption) *Route {
	route := a.router.Page(path, wrapPageHandler(handler), opts...)
	a.mux.Get(route.Path, a.pageHandler(route.Path))
	return route
}

// SetNotFound sets the page rendered (with status 404) for unknown paths.
func (a *App) SetNotFound(handler PageHandler) {
	a.router.SetNotFound(wrapPageHandler(handler))
}

// Router returns the page registry.
func (a *App) Router() *router.Router {
	return a.router
}

// Routes returns all registered pages sorted by path.
func (a *App) Routes() []*Route {
	return a.router.Routes()
}

// Config returns the app configuration.
func (a *App) Config() Config {
	return a.config
}

// Reload returns the hot reload server, or nil outside dev mode.
func (a *App) Reload() *dev.ReloadServer {
	return a.reload
}

// pageHandler resolves the route at request time so that re-registration
// of a path takes effect.
func (a *App) pageHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route, ok := a.router.Match(path)
		if !ok {
			a.handleFallback(w, r)
			return
		}
		a.servePage(w, r, route, http.StatusOK)
	}
}

// handleFallback serves static files, then the not-found page.
func (a *App) handleFallback(w http.ResponseWriter, r *http.Request) {
	if a.staticFS != nil && a.shouldServeStatic(r.URL.Path) {
		a.serveStatic(w, r)
		return
	}

	handler := a.router.NotFound()
	if handler == nil {
		handler = defaultNotFound
	}
	route := &router.Route{Path: r.URL.Path, Meta: router.PageMeta{Title: "Not Found"}, Handler: handler}
	a.servePage(w, r, route, http.StatusNotFound)
}

func (a *App) servePage(w http.ResponseWriter, r *http.Request, route *router.Route, status int) {
	html, err := a.renderDocument(r.Context(), r, route)
	if err != nil {
		a.logger.Error("render failed",
			"path", route.Path,
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err)
		msg := http.StatusText(http.StatusInternalServerError)
		if a.config.DevMode {
			msg = err.Error()
		}
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if a.config.DevMode {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		w.Write(html)
	}
}

// RenderRoute renders the page registered at path to a complete HTML
// document without an HTTP request.
func (a *App) RenderRoute(ctx context.Context, path string) ([]byte, error) {
	route, ok := a.router.Match(path)
	if !ok {
		return nil, errors.New(errors.CodeRouteNotFound).WithDetail("No page is registered for " + path)
	}
	return a.renderDocument(ctx, nil, route)
}

// renderDocument runs the page handler, validates the tree and renders the
// full document. Every render is timed and traced.
func (a *App) renderDocument(ctx context.Context, r *http.Request, route *router.Route) (out []byte, err error) {
	start := time.Now()
	reason := ""
	if a.config.Tracer != nil {
		var end func(error)
		ctx, end = a.config.Tracer.StartRender(ctx, route.Path)
		defer func() { end(err) }()
	}
	defer func() {
		a.config.Metrics.ObserveRender(route.Path, time.Since(start), reason)
	}()

	pctx := newPageCtx(ctx, r, route, a.logger.With("path", route.Path))
	node := route.Handler(pctx)
	if node == nil {
		reason = "nil_page"
		return nil, errors.New(errors.CodeNilPage).WithDetail("Page " + route.Path + " returned nil")
	}
	if verr := ui.Validate(node); verr != nil {
		reason = "invalid_token"
		return nil, errors.New(errors.CodeInvalidToken).WithDetail("Page " + route.Path).Wrap(verr)
	}

	page := render.PageData{
		Body:        node,
		Title:       route.Meta.Title,
		Lang:        a.config.Lang,
		StyleSheets: []string{StylesheetPath},
	}
	if d := route.Meta.Description; d != "" {
		page.Meta = append(page.Meta, render.MetaTag{Name: "description", Content: d})
	}
	if a.reload != nil {
		page.Scripts = append(page.Scripts, render.ScriptTag{Inline: dev.ClientScript})
	}

	var buf bytes.Buffer
	renderer := render.NewRenderer(render.RendererConfig{Pretty: a.config.DevMode})
	if rerr := renderer.RenderPage(&buf, page); rerr != nil {
		reason = "render"
		return nil, rerr
	}
	return buf.Bytes(), nil
}

// Run listens on addr and serves until ctx is cancelled, then shuts down
// gracefully within Server.ShutdownTimeout.
func (a *App) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", ln.Addr().String(), "routes", a.router.Len(), "dev", a.config.DevMode)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	if a.reload != nil {
		a.reload.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

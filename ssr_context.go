package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/vango-go/dashboard/pkg/router"
)

// pageCtx implements router.Ctx for a single render. request is nil when the
// page is rendered outside HTTP (static export).
type pageCtx struct {
	request *http.Request
	route   *router.Route
	std     context.Context
	logger  *slog.Logger
}

func newPageCtx(std context.Context, r *http.Request, route *router.Route, logger *slog.Logger) *pageCtx {
	if std == nil {
		std = context.Background()
	}
	return &pageCtx{request: r, route: route, std: std, logger: logger}
}

func (c *pageCtx) Request() *http.Request { return c.request }
func (c *pageCtx) Route() *router.Route   { return c.route }

func (c *pageCtx) Path() string {
	if c.route != nil {
		return c.route.Path
	}
	if c.request != nil {
		return c.request.URL.Path
	}
	return "/"
}

func (c *pageCtx) Query() url.Values {
	if c.request == nil {
		return url.Values{}
	}
	return c.request.URL.Query()
}

func (c *pageCtx) Header(key string) string {
	if c.request == nil {
		return ""
	}
	return c.request.Header.Get(key)
}

func (c *pageCtx) Logger() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

func (c *pageCtx) StdContext() context.Context { return c.std }

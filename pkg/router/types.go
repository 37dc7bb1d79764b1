package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/vango-go/dashboard/pkg/vdom"
)

// Ctx is the request-scoped context handed to page handlers.
type Ctx interface {
	// Request returns the underlying HTTP request. It is nil when a page is
	// rendered outside an HTTP request (static export).
	Request() *http.Request

	// Path returns the canonical route path being rendered.
	Path() string

	// Query returns the parsed query string.
	Query() url.Values

	// Header returns a request header value.
	Header(key string) string

	// Route returns the matched route.
	Route() *Route

	// Logger returns the request logger.
	Logger() *slog.Logger

	// StdContext returns the standard library context for the request.
	StdContext() context.Context
}

// PageHandler produces the component tree for a page.
type PageHandler func(ctx Ctx) *vdom.VNode

// PageMeta contains page metadata rendered into the document head.
type PageMeta struct {
	Title       string
	Description string
	Keywords    []string
	OGImage     string
}

// Route is a registered page.
type Route struct {
	// Path is the canonical URL path (e.g., "/").
	Path string

	// Meta is the page metadata.
	Meta PageMeta

	// Handler renders the page.
	Handler PageHandler
}

// Title returns the page title.
func (r *Route) Title() string {
	return r.Meta.Title
}

// RouteOption configures route registration.
type RouteOption func(*Route)

// WithTitle sets the page title.
func WithTitle(title string) RouteOption {
	return func(r *Route) { r.Meta.Title = title }
}

// WithDescription sets the meta description.
func WithDescription(desc string) RouteOption {
	return func(r *Route) { r.Meta.Description = desc }
}

// WithMeta replaces the page metadata.
func WithMeta(meta PageMeta) RouteOption {
	return func(r *Route) { r.Meta = meta }
}

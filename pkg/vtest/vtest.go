package vtest

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-go/dashboard/pkg/render"
	"github.com/vango-go/dashboard/pkg/router"
	"github.com/vango-go/dashboard/pkg/ui"
	"github.com/vango-go/dashboard/pkg/vdom"
)

// CtxBuilder allows fluent construction of page contexts.
type CtxBuilder struct {
	path   string
	query  url.Values
	header http.Header
	route  *router.Route
	logger *slog.Logger
}

// NewCtx creates a new context builder for a GET of "/".
func NewCtx() *CtxBuilder {
	return &CtxBuilder{path: "/", query: url.Values{}, header: http.Header{}}
}

// WithPath sets the request path.
func (b *CtxBuilder) WithPath(path string) *CtxBuilder {
	b.path = path
	return b
}

// WithQuery adds a query parameter.
func (b *CtxBuilder) WithQuery(key, value string) *CtxBuilder {
	b.query.Add(key, value)
	return b
}

// WithHeader sets a request header.
func (b *CtxBuilder) WithHeader(key, value string) *CtxBuilder {
	b.header.Set(key, value)
	return b
}

// WithRoute sets the matched route.
func (b *CtxBuilder) WithRoute(route *router.Route) *CtxBuilder {
	b.route = route
	return b
}

// WithLogger sets the page logger.
func (b *CtxBuilder) WithLogger(logger *slog.Logger) *CtxBuilder {
	b.logger = logger
	return b
}

// Build returns the context.
func (b *CtxBuilder) Build() router.Ctx {
	target := b.path
	if len(b.query) > 0 {
		target += "?" + b.query.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range b.header {
		req.Header[k] = v
	}
	route := b.route
	if route == nil {
		route = &router.Route{Path: req.URL.Path}
	}
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &testCtx{req: req, route: route, logger: logger}
}

type testCtx struct {
	req    *http.Request
	route  *router.Route
	logger *slog.Logger
}

func (c *testCtx) Request() *http.Request      { return c.req }
func (c *testCtx) Path() string                { return c.req.URL.Path }
func (c *testCtx) Query() url.Values           { return c.req.URL.Query() }
func (c *testCtx) Header(key string) string    { return c.req.Header.Get(key) }
func (c *testCtx) Route() *router.Route        { return c.route }
func (c *testCtx) Logger() *slog.Logger        { return c.logger }
func (c *testCtx) StdContext() context.Context { return c.req.Context() }

// RenderToString renders a VNode and returns the HTML string, or "" when
// rendering fails.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	out, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return out
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	out := RenderToString(node)
	if !strings.Contains(out, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(out, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	out := RenderToString(node)
	if strings.Contains(out, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(out, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	out := RenderToString(node)
	if !strings.Contains(out, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(out, 500))
	}
}

// ExpectAttribute asserts that some element carries attr with value among
// its space-separated values.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	found := vdom.Find(node, func(n *vdom.VNode) bool {
		if n.Kind != vdom.KindElement {
			return false
		}
		v, ok := n.Props[attr].(string)
		return ok && slices.Contains(strings.Fields(v), value)
	})
	if found == nil {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(RenderToString(node), 500))
	}
}

// ExpectValid asserts that every design token in the tree is in scale.
func ExpectValid(t testing.TB, node *vdom.VNode) {
	t.Helper()
	if err := ui.Validate(node); err != nil {
		t.Errorf("invalid tree: %v", err)
	}
}

// ExpectText asserts the tree's text nodes, in document order.
func ExpectText(t testing.TB, node *vdom.VNode, want ...string) {
	t.Helper()
	if got := vdom.TextNodes(node); !slices.Equal(got, want) {
		t.Errorf("text nodes = %q, want %q", got, want)
	}
}

// Get performs a GET against h.
func Get(t testing.TB, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// BodyText parses an HTML document and returns the trimmed, non-empty text
// nodes inside <body>, skipping script and style content.
func BodyText(t testing.TB, document string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	body := findElement(doc, "body")
	if body == nil {
		t.Fatalf("document has no body:\n%s", truncate(document, 500))
	}
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
	return out
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

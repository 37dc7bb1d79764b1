package router

import (
	"testing"

	"github.com/vango-go/dashboard/pkg/vdom"
)

func page(text string) PageHandler {
	return func(Ctx) *vdom.VNode { return vdom.P(vdom.Text(text)) }
}

func TestPageAndMatch(t *testing.T) {
	r := NewRouter()
	r.Page("/", page("home"), WithTitle("Dashboard"))
	r.Page("/about/", page("about"), WithDescription("About us"))

	tests := []struct {
		path  string
		want  string
		found bool
	}{
		{"/", "/", true},
		{"", "/", true},
		{"/?tab=1", "/", true},
		{"/about", "/about", true},
		{"//about/", "/about", true},
		{"/x/../about", "/about", true},
		{"/missing", "", false},
		{"/../etc", "", false},
		{`\about`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, ok := r.Match(tt.path)
			if ok != tt.found {
				t.Fatalf("Match(%q) found = %v, want %v", tt.path, ok, tt.found)
			}
			if ok && route.Path != tt.want {
				t.Errorf("Match(%q).Path = %q, want %q", tt.path, route.Path, tt.want)
			}
		})
	}

	root, _ := r.Match("/")
	if root.Title() != "Dashboard" {
		t.Errorf("Title() = %q, want Dashboard", root.Title())
	}
	about, _ := r.Match("/about")
	if about.Meta.Description != "About us" {
		t.Errorf("Description = %q", about.Meta.Description)
	}
}

func TestPageReplaces(t *testing.T) {
	r := NewRouter()
	r.Page("/", page("one"), WithTitle("One"))
	r.Page("/", page("two"), WithMeta(PageMeta{Title: "Two"}))

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	route, _ := r.Match("/")
	if route.Title() != "Two" {
		t.Errorf("Title() = %q, want Two", route.Title())
	}
	if got := vdom.TextContent(route.Handler(nil)); got != "two" {
		t.Errorf("handler text = %q, want two", got)
	}
}

func TestRoutesSorted(t *testing.T) {
	r := NewRouter()
	r.Page("/zeta", page("z"))
	r.Page("/", page("root"))
	r.Page("/alpha", page("a"))

	var paths []string
	for _, route := range r.Routes() {
		paths = append(paths, route.Path)
	}
	want := []string{"/", "/alpha", "/zeta"}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("Routes() = %v, want %v", paths, want)
		}
	}
}

func TestPagePanics(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	r := NewRouter()
	assertPanics("nil handler", func() { r.Page("/", nil) })
	assertPanics("escaping path", func() { r.Page("/../x", page("x")) })
}

func TestNotFound(t *testing.T) {
	r := NewRouter()
	if r.NotFound() != nil {
		t.Error("NotFound() should be nil by default")
	}
	r.SetNotFound(page("gone"))
	if r.NotFound() == nil {
		t.Error("NotFound() should be set")
	}
}

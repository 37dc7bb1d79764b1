package router

import (
	"fmt"
	"sort"
	"sync"
)

// Router maps canonical paths to pages.
// Registration and matching are safe for concurrent use.
type Router struct {
	mu       sync.RWMutex
	routes   map[string]*Route
	notFound PageHandler
}

// NewRouter creates a new router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]*Route),
	}
}

// Page registers a page handler for a path. Registering the same canonical
// path again replaces the earlier route.
//
// Page panics if the path cannot be canonicalized or handler is nil; both are
// programming errors caught at startup.
//
//	r.Page("/", routes.IndexPage, router.WithTitle("Dashboard"))
func (r *Router) Page(path string, handler PageHandler, opts ...RouteOption) *Route {
	if handler == nil {
		panic("router: nil handler for " + path)
	}
	canon, err := CanonicalizePath(path)
	if err != nil {
		panic(fmt.Sprintf("router: invalid path %q: %v", path, err))
	}

	route := &Route{Path: canon.Path, Handler: handler}
	for _, opt := range opts {
		opt(route)
	}

	r.mu.Lock()
	r.routes[route.Path] = route
	r.mu.Unlock()
	return route
}

// Match finds the route for a request path. The path is canonicalized first,
// so "/about/" and "//about" both match "/about".
func (r *Router) Match(path string) (*Route, bool) {
	canon, err := CanonicalizePath(path)
	if err != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[canon.Path]
	return route, ok
}

// Routes returns all registered routes sorted by path.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	out := make([]*Route, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of registered routes.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.routes)
}

// SetNotFound sets the page rendered for unmatched paths.
func (r *Router) SetNotFound(handler PageHandler) {
	r.mu.Lock()
	r.notFound = handler
	r.mu.Unlock()
}

// NotFound returns the not-found page handler, or nil.
func (r *Router) NotFound() PageHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.notFound
}

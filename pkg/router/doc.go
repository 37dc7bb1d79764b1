// Package router maps URL paths to page handlers.
//
// Pages are registered by path with optional metadata:
//
//	r := router.NewRouter()
//	r.Page("/", routes.IndexPage, router.WithTitle("Dashboard"))
//
// Paths are canonicalized on registration and on lookup, so a request for
// "/about/" matches a page registered as "/about". Routes are exact: there
// are no parameters or wildcards.
package router

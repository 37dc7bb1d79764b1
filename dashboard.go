// Package dashboard is a small server-rendered dashboard framework.
//
// Pages are functions returning a component tree. The App renders them to
// complete HTML documents on every GET:
//
//	app := dashboard.New(dashboard.DefaultConfig())
//	app.Page("/", routes.IndexPage, dashboard.WithTitle("Dashboard"))
//	app.Run(ctx, ":3000")
//
// Component trees are built with pkg/vdom elements and the pkg/ui layout and
// typography components. Design tokens on ui components are validated before
// every render; an out-of-scale token fails the request instead of producing
// markup.
package dashboard

import (
	"github.com/vango-go/dashboard/pkg/router"
	"github.com/vango-go/dashboard/pkg/vdom"
)

// VNode is a node of a component tree.
type VNode = vdom.VNode

// Ctx is the request-scoped context passed to page handlers.
type Ctx = router.Ctx

// Route is a registered page.
type Route = router.Route

// RouteOption configures a page registration.
type RouteOption = router.RouteOption

// WithTitle sets the document title of a page.
var WithTitle = router.WithTitle

// WithDescription sets the meta description of a page.
var WithDescription = router.WithDescription

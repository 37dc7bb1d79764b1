package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vango-go/dashboard/pkg/router"
	"github.com/vango-go/dashboard/pkg/ui"
)

// PageHandler is a function that renders a page.
// Two signatures are supported:
//   - func() *VNode      - static page that ignores the request
//   - func(Ctx) *VNode   - page reading request data
type PageHandler = any

// wrapPageHandler converts a user PageHandler to a router.PageHandler.
func wrapPageHandler(handler PageHandler) router.PageHandler {
	switch fn := handler.(type) {
	case func() *VNode:
		if fn == nil {
			break
		}
		return func(router.Ctx) *VNode { return fn() }
	case func(Ctx) *VNode:
		if fn == nil {
			break
		}
		return fn
	case router.PageHandler:
		if fn == nil {
			break
		}
		return fn
	default:
		panic(fmt.Sprintf("dashboard: page handler must be func() *VNode or func(Ctx) *VNode, got %T", handler))
	}
	panic("dashboard: nil page handler")
}

// healthResponse is the body of the health endpoint.
type healthResponse struct {
	Status string `json:"status"`
	Routes int    `json:"routes"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(healthResponse{Status: "ok", Routes: a.router.Len()})
}

func (a *App) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if a.config.DevMode {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}
	w.Write([]byte(ui.Stylesheet()))
}

// defaultNotFound is rendered for unknown paths when no custom page is set.
func defaultNotFound(router.Ctx) *VNode {
	return ui.Center(
		ui.VStack(
			ui.Heading("404", ui.Size("8")),
			ui.Text("This page could not be found.", ui.Color(ui.Gray, 11)),
			ui.Spacing("3"),
			ui.Align("center"),
		),
		ui.Height("100vh"),
	)
}

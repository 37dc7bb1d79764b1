package routes

import (
	"github.com/vango-go/dashboard/pkg/ui"
	"github.com/vango-go/dashboard/pkg/vdom"
)

// IndexPage is the root page: a heading and a status line centered in the
// viewport.
func IndexPage() *vdom.VNode {
	return ui.Center(
		ui.VStack(
			ui.Heading("Dashboard", ui.Size("7")),
			ui.Text("Reflex app skeleton is running.", ui.Color(ui.Gray, 11)),
			ui.Spacing("3"),
			ui.Padding("6"),
		),
		ui.Height("100vh"),
	)
}

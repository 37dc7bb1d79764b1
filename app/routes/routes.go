// Package routes holds the application's pages.
package routes

import (
	dashboard "github.com/vango-go/dashboard"
)

// IndexTitle is the document title of the root page.
const IndexTitle = "Dashboard"

// Register adds every page to app.
func Register(app *dashboard.App) {
	app.Page("/", IndexPage, dashboard.WithTitle(IndexTitle))
}

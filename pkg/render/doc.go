// Package render provides server-side rendering of vdom trees to HTML.
//
// The renderer produces HTML5 with escaped text and attribute values, void
// element handling, boolean attributes and attributes in sorted order, so the
// same tree always yields the same bytes. Internal props (keys starting with
// "_") are never emitted.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Body:   bodyNode,
//	    Title:  "Dashboard",
//	    Styles: []string{ui.Stylesheet()},
//	}
//	err := renderer.RenderPage(w, page)
package render

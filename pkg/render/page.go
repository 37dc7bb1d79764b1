package render

import (
	"bytes"
	"io"

	"github.com/vango-go/dashboard/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// Links contains link tags (favicon, preload, etc.).
	Links []LinkTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS blocks.
	Styles []string

	// Scripts contains script tags. Deferred and async scripts go in the head,
	// the rest at the end of the body.
	Scripts []ScriptTag
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string
	Content  string
	Property string // OpenGraph
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string
	Href string
	Type string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Defer  bool
	Async  bool
	Module bool
	Inline string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	ew := &errWriter{w: w}
	ew.WriteString("<!DOCTYPE html>\n")
	ew.WriteString(`<html lang="` + escapeAttr(lang) + `">` + "\n")
	r.renderHead(ew, page)
	ew.WriteString("<body>\n")
	if ew.err != nil {
		return ew.err
	}

	r.renderNode(ew, page.Body, 0)
	if !r.config.Pretty {
		ew.WriteString("\n")
	}

	for _, script := range page.Scripts {
		if !script.Defer && !script.Async {
			renderScriptTag(ew, script)
		}
	}
	ew.WriteString("</body>\n</html>\n")
	return ew.err
}

// RenderPageBytes renders a complete HTML document into memory.
func (r *Renderer) RenderPageBytes(page PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w *errWriter, page PageData) {
	w.WriteString("<head>\n")
	w.WriteString(`  <meta charset="utf-8">` + "\n")
	w.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")

	if page.Title != "" {
		w.WriteString("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}

	for _, meta := range page.Meta {
		w.WriteString("  <meta")
		writeAttr(w, "name", meta.Name)
		writeAttr(w, "property", meta.Property)
		writeAttr(w, "content", meta.Content)
		w.WriteString(">\n")
	}

	for _, link := range page.Links {
		w.WriteString("  <link")
		writeAttr(w, "rel", link.Rel)
		writeAttr(w, "href", link.Href)
		writeAttr(w, "type", link.Type)
		w.WriteString(">\n")
	}

	for _, href := range page.StyleSheets {
		w.WriteString(`  <link rel="stylesheet" href="` + escapeAttr(href) + `">` + "\n")
	}

	for _, style := range page.Styles {
		w.WriteString("  <style>\n" + style + "</style>\n")
	}

	for _, script := range page.Scripts {
		if script.Defer || script.Async {
			renderScriptTag(w, script)
		}
	}

	w.WriteString("</head>\n")
}

// renderScriptTag renders a script element.
func renderScriptTag(w *errWriter, script ScriptTag) {
	w.WriteString("  <script")
	writeAttr(w, "src", script.Src)
	if script.Module {
		w.WriteString(` type="module"`)
	}
	if script.Defer {
		w.WriteString(" defer")
	}
	if script.Async {
		w.WriteString(" async")
	}
	w.WriteString(">" + script.Inline + "</script>\n")
}

// writeAttr writes a quoted attribute if value is non-empty.
func writeAttr(w *errWriter, name, value string) {
	if value == "" {
		return
	}
	w.WriteString(" " + name + `="` + escapeAttr(value) + `"`)
}

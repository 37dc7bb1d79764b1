// Package vtest provides testing helpers for dashboard pages.
//
// # Page Contexts
//
// Pages that take a Ctx can be called directly with a fabricated request:
//
//	ctx := vtest.NewCtx().
//	    WithPath("/reports").
//	    WithQuery("range", "7d").
//	    Build()
//	node := ReportsPage(ctx)
//
// # Render Assertions
//
// Assert on the rendered HTML of a tree:
//
//	vtest.ExpectContains(t, node, "Weekly report")
//	vtest.ExpectAttribute(t, node, "class", "rt-Flex")
//	vtest.ExpectValid(t, node)
//
// # Documents
//
// BodyText parses a full HTML document and returns the visible text of its
// body, which is what end-to-end page tests compare against:
//
//	rec := vtest.Get(t, app, "/")
//	got := vtest.BodyText(t, rec.Body.String())
package vtest

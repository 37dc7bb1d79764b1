// Package vdom provides the component tree used to describe pages.
//
// A page is a tree of VNodes: elements, text, fragments, nested components
// and raw HTML. The tree is a plain value; it is built fresh for every render
// and is never mutated after construction.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// # Internal props
//
// Props whose key starts with "_" are carried on the tree for tooling and
// tests (component names, design tokens) and are skipped by the renderer.
//
// # Queries
//
// Walk, Find, TextNodes and ElementChildren inspect a tree without rendering it.
package vdom

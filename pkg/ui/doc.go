// Package ui provides layout and typography components built on vdom.
//
// Components take the same variadic arguments as vdom elements plus design
// token options:
//
//	ui.Center(
//	    ui.VStack(
//	        ui.Heading("Dashboard", ui.Size("7")),
//	        ui.Text("Hello", ui.Color(ui.Gray, 11)),
//	        ui.Spacing("3"),
//	        ui.Padding("6"),
//	    ),
//	    ui.Height("100vh"),
//	)
//
// Tokens are kept on the node as internal props (readable with Token, ColorOf
// and NameOf) and projected to classes and inline styles backed by Stylesheet.
// Validate reports tokens that fall outside the scales.
package ui

package ui

import "github.com/vango-go/dashboard/pkg/vdom"

// Spacing sets the gap between stack children ("0" to "9").
func Spacing(token string) vdom.Attr { return vdom.Prop(propSpacing, token) }

// Padding sets the inner padding ("0" to "9").
func Padding(token string) vdom.Attr { return vdom.Prop(propPadding, token) }

// Size sets the typographic size of a Heading or Text ("1" to "9").
func Size(token string) vdom.Attr { return vdom.Prop(propSize, token) }

// Weight sets the font weight: light, regular, medium or bold.
func Weight(token string) vdom.Attr { return vdom.Prop(propWeight, token) }

// Height sets a CSS height, e.g. "100vh".
func Height(value string) vdom.Attr { return vdom.Prop(propHeight, value) }

// Align sets cross-axis alignment of a stack: start, center, end, baseline or stretch.
func Align(token string) vdom.Attr { return vdom.Prop(propAlign, token) }

// Justify sets main-axis distribution of a stack: start, center, end or between.
func Justify(token string) vdom.Attr { return vdom.Prop(propJustify, token) }

// As renders a Heading with a different tag (h1 to h6).
func As(tag string) vdom.Attr { return vdom.Prop(propAs, tag) }

// Color sets the text color to a palette step.
func Color(name ColorName, shade int) vdom.Attr {
	return vdom.Prop(propColor, ColorRef{Name: name, Shade: shade})
}

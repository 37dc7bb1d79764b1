package ui

import (
	"strings"

	"github.com/vango-go/dashboard/pkg/vdom"
)

// Component names recorded in the "_ui" prop.
const (
	NameCenter  = "center"
	NameVStack  = "vstack"
	NameHStack  = "hstack"
	NameHeading = "heading"
	NameText    = "text"
)

// Center lays out its children centered on both axes.
func Center(args ...any) *vdom.VNode {
	node := build("div", NameCenter, nil, args)
	node.Props["class"] = joinClass("rt-Center", node.Prop("class"))
	applyBox(node)
	return node
}

// VStack stacks its children vertically. Spacing defaults to "2" and
// alignment to "start".
func VStack(args ...any) *vdom.VNode {
	return stack(NameVStack, "column", args)
}

// HStack stacks its children horizontally. Spacing defaults to "2" and
// alignment to "start".
func HStack(args ...any) *vdom.VNode {
	return stack(NameHStack, "row", args)
}

func stack(name, direction string, args []any) *vdom.VNode {
	node := build("div", name, []vdom.Attr{Spacing("2"), Align("start")}, args)

	classes := []string{"rt-Flex", "rt-r-fd-" + direction}
	if v := node.Prop(propAlign); v != "" {
		classes = append(classes, "rt-r-ai-"+v)
	}
	if v := node.Prop(propJustify); v != "" {
		classes = append(classes, "rt-r-jc-"+v)
	}
	if v := node.Prop(propSpacing); v != "" {
		classes = append(classes, "rt-r-gap-"+v)
	}
	node.Props["class"] = joinClass(strings.Join(classes, " "), node.Prop("class"))
	applyBox(node)
	return node
}

// Heading renders a heading. Size defaults to "6"; the tag defaults to h1.
func Heading(text string, args ...any) *vdom.VNode {
	node := build("h1", NameHeading, []vdom.Attr{Size("6")}, append([]any{text}, args...))
	if tag := node.Prop(propAs); tag != "" {
		node.Tag = tag
	}
	applyTypography(node, "rt-Heading")
	return node
}

// Text renders a paragraph of text.
func Text(text string, args ...any) *vdom.VNode {
	node := build("p", NameText, nil, append([]any{text}, args...))
	applyTypography(node, "rt-Text")
	return node
}

// build creates the element with defaults applied before the caller's args,
// so explicit options win.
func build(tag, name string, defaults []vdom.Attr, args []any) *vdom.VNode {
	all := make([]any, 0, len(args)+2)
	all = append(all, vdom.Prop(propComponent, name))
	if len(defaults) > 0 {
		all = append(all, defaults)
	}
	all = append(all, args...)
	return vdom.Element(tag, all...)
}

func applyBox(node *vdom.VNode) {
	if v := node.Prop(propPadding); v != "" {
		node.Props["class"] = joinClass(node.Prop("class"), "rt-r-p-"+v)
	}
	if v := node.Prop(propHeight); v != "" {
		appendStyle(node, "height: "+v)
	}
}

func applyTypography(node *vdom.VNode, base string) {
	classes := []string{base}
	if v := node.Prop(propSize); v != "" {
		classes = append(classes, "rt-r-size-"+v)
	}
	if v := node.Prop(propWeight); v != "" {
		classes = append(classes, "rt-r-weight-"+v)
	}
	node.Props["class"] = joinClass(strings.Join(classes, " "), node.Prop("class"))
	if c, ok := ColorOf(node); ok {
		appendStyle(node, "color: "+c.Var())
	}
}

// ColorOf returns the color token set on a node, if any.
func ColorOf(node *vdom.VNode) (ColorRef, bool) {
	if node == nil || node.Props == nil {
		return ColorRef{}, false
	}
	c, ok := node.Props[propColor].(ColorRef)
	return c, ok
}

// NameOf returns the ui component name of a node, or "" for plain elements.
func NameOf(node *vdom.VNode) string {
	return node.Prop(propComponent)
}

// Token returns a string design token ("spacing", "padding", "size", "height",
// "weight", "align", "justify") set on a node.
func Token(node *vdom.VNode, name string) string {
	return node.Prop("_" + name)
}

func appendStyle(node *vdom.VNode, decl string) {
	existing := strings.TrimSpace(node.Prop("style"))
	if existing == "" {
		node.Props["style"] = decl + ";"
		return
	}
	if !strings.HasSuffix(existing, ";") {
		existing += ";"
	}
	node.Props["style"] = existing + " " + decl + ";"
}

func joinClass(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

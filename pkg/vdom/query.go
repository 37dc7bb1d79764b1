package vdom

import "strings"

// Walk visits node and its descendants depth-first, parents before children.
// Components are expanded by calling Render. Returning false from fn skips the
// node's children.
func Walk(node *VNode, fn func(n *VNode) bool) {
	if node == nil {
		return
	}
	if node.Kind == KindComponent {
		if node.Comp != nil {
			Walk(node.Comp.Render(), fn)
		}
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// Find returns the first node (depth-first) matching pred, or nil.
func Find(node *VNode, pred func(n *VNode) bool) *VNode {
	var found *VNode
	Walk(node, func(n *VNode) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// TextNodes returns the content of every non-blank text node under node, in document order.
func TextNodes(node *VNode) []string {
	var out []string
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindText && strings.TrimSpace(n.Text) != "" {
			out = append(out, n.Text)
		}
		return true
	})
	return out
}

// TextContent concatenates all text under node.
func TextContent(node *VNode) string {
	return strings.Join(TextNodes(node), "")
}

// ElementChildren returns the direct children of node that are elements,
// flattening fragments and expanding components.
func ElementChildren(node *VNode) []*VNode {
	if node == nil {
		return nil
	}
	var out []*VNode
	for _, child := range node.Children {
		out = append(out, flattenElements(child)...)
	}
	return out
}

func flattenElements(node *VNode) []*VNode {
	switch {
	case node == nil:
		return nil
	case node.Kind == KindElement:
		return []*VNode{node}
	case node.Kind == KindFragment:
		var out []*VNode
		for _, c := range node.Children {
			out = append(out, flattenElements(c)...)
		}
		return out
	case node.Kind == KindComponent && node.Comp != nil:
		return flattenElements(node.Comp.Render())
	default:
		return nil
	}
}

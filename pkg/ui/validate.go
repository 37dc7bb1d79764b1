package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vango-go/dashboard/pkg/vdom"
)

// ErrInvalidToken is wrapped by every error Validate reports.
var ErrInvalidToken = errors.New("invalid design token")

// Validate checks every ui component in the tree against the design scales.
// All problems are reported together, joined with errors.Join.
func Validate(root *vdom.VNode) error {
	var errs []error
	vdom.Walk(root, func(n *vdom.VNode) bool {
		name := NameOf(n)
		if name == "" {
			return true
		}
		check := func(token, value string, ok bool) {
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s %s %q", ErrInvalidToken, name, token, value))
			}
		}

		if v, set := lookup(n, propSpacing); set {
			_, ok := spaceScale[v]
			check("spacing", v, ok)
		}
		if v, set := lookup(n, propPadding); set {
			_, ok := spaceScale[v]
			check("padding", v, ok)
		}
		if v, set := lookup(n, propSize); set {
			_, ok := fontScale[v]
			check("size", v, ok)
		}
		if v, set := lookup(n, propWeight); set {
			_, ok := weights[v]
			check("weight", v, ok)
		}
		if v, set := lookup(n, propAlign); set {
			_, ok := alignments[v]
			check("align", v, ok)
		}
		if v, set := lookup(n, propJustify); set {
			_, ok := justifications[v]
			check("justify", v, ok)
		}
		if v, set := lookup(n, propHeight); set {
			check("height", v, strings.TrimSpace(v) != "" && !strings.ContainsAny(v, ";{}"))
		}
		if v, set := lookup(n, propAs); set {
			check("as", v, len(v) == 2 && v[0] == 'h' && v[1] >= '1' && v[1] <= '6')
		}
		if raw, set := n.Props[propColor]; set {
			c, ok := raw.(ColorRef)
			check("color", fmt.Sprint(raw), ok && c.Valid())
		}
		return true
	})
	return errors.Join(errs...)
}

func lookup(n *vdom.VNode, key string) (string, bool) {
	raw, ok := n.Props[key]
	if !ok {
		return "", false
	}
	s, _ := raw.(string)
	return s, true
}

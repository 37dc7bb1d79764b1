package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-go/dashboard/pkg/vdom"
)

func TestValidateAcceptsScaleTokens(t *testing.T) {
	tree := Center(
		VStack(
			Heading("Title", Size("9"), As("h2")),
			Text("body", Color(Accent, 11), Size("1"), Weight("light")),
			Spacing("0"),
			Padding("9"),
			Align("center"),
		),
		Height("100vh"),
	)
	if err := Validate(tree); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateReportsEveryBadToken(t *testing.T) {
	tree := vdom.Div(
		VStack(Spacing("10"), Padding("x")),
		Heading("t", Size("0"), As("div")),
		Text("t", Color("chartreuse", 11), Weight("heavy")),
		Center(Height("  ")),
	)
	err := Validate(tree)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("errors.Is(err, ErrInvalidToken) = false")
	}
	msg := err.Error()
	for _, want := range []string{
		`vstack spacing "10"`,
		`vstack padding "x"`,
		`heading size "0"`,
		`heading as "div"`,
		`text color "chartreuse.11"`,
		`text weight "heavy"`,
		`center height "  "`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q:\n%s", want, msg)
		}
	}
}

func TestValidateIgnoresPlainElements(t *testing.T) {
	tree := vdom.Div(vdom.Prop("spacing", "99"))
	if err := Validate(tree); err != nil {
		t.Errorf("Validate() = %v, want nil for non-ui nodes", err)
	}
	if err := Validate(nil); err != nil {
		t.Errorf("Validate(nil) = %v", err)
	}
}

package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeProp(t *testing.T) {
	var nilNode *VNode
	if got := nilNode.Prop("class"); got != "" {
		t.Errorf("nil.Prop() = %q, want empty", got)
	}

	node := Div(Class("a b"), Prop("spacing", "3"), Attr{Key: "tabindex", Value: 1})
	if got := node.Prop("_spacing"); got != "3" {
		t.Errorf("Prop(_spacing) = %q, want 3", got)
	}
	if got := node.Prop("tabindex"); got != "" {
		t.Errorf("Prop(tabindex) = %q, want empty for non-string", got)
	}
	if !node.HasClass("b") {
		t.Error("HasClass(b) = false, want true")
	}
	if node.HasClass("ab") {
		t.Error("HasClass(ab) = true, want false")
	}
}

func TestIsInternalProp(t *testing.T) {
	if !IsInternalProp("_ui") {
		t.Error("_ui should be internal")
	}
	if IsInternalProp("class") {
		t.Error("class should not be internal")
	}
}

func TestFuncComponent(t *testing.T) {
	comp := Func(func() *VNode { return P(Text("hi")) })
	node := comp.Render()
	if node.Tag != "p" {
		t.Errorf("Render().Tag = %q, want p", node.Tag)
	}
}

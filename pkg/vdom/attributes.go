package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
// Repeated Class arguments on one element accumulate.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with StyleEl).
func StyleAttr(style string) Attr { return attr("style", style) }

// DataAttr sets a data-* attribute.
func DataAttr(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the ARIA role.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets aria-label.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Hidden marks the element hidden.
func Hidden() Attr { return attr("hidden", true) }

// TitleAttr sets the title attribute (the tooltip, not the <title> element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Document attributes

func Lang(lang string) Attr       { return attr("lang", lang) }
func Href(url string) Attr        { return attr("href", url) }
func Rel(rel string) Attr         { return attr("rel", rel) }
func Name(name string) Attr       { return attr("name", name) }
func Content(content string) Attr { return attr("content", content) }
func Charset(charset string) Attr { return attr("charset", charset) }
func Src(url string) Attr         { return attr("src", url) }
func Alt(text string) Attr        { return attr("alt", text) }
func Type(t string) Attr          { return attr("type", t) }
func Defer() Attr                 { return attr("defer", true) }

// Prop sets an internal prop. The key is prefixed with "_" if it isn't already,
// so the value never reaches rendered HTML.
func Prop(key string, value any) Attr {
	if !IsInternalProp(key) {
		key = "_" + key
	}
	return attr(key, value)
}

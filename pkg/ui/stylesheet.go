package ui

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	stylesheetOnce sync.Once
	stylesheet     string
)

// Stylesheet returns the CSS defining the design tokens and component classes.
// The output is deterministic and computed once.
func Stylesheet() string {
	stylesheetOnce.Do(func() {
		stylesheet = buildStylesheet()
	})
	return stylesheet
}

func buildStylesheet() string {
	var b strings.Builder

	b.WriteString(":root {\n")
	for _, k := range sortedKeys(spaceScale) {
		fmt.Fprintf(&b, "  --space-%s: %s;\n", k, spaceScale[k])
	}
	for _, k := range sortedKeys(fontScale) {
		fmt.Fprintf(&b, "  --font-size-%s: %s;\n", k, fontScale[k][0])
		fmt.Fprintf(&b, "  --line-height-%s: %s;\n", k, fontScale[k][1])
	}
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, string(name))
	}
	sort.Strings(names)
	for _, name := range names {
		for i, hex := range palette[ColorName(name)] {
			fmt.Fprintf(&b, "  --%s-%d: %s;\n", name, i+1, hex)
		}
	}
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "  --accent-%d: var(--%s-%d);\n", i, accentColor, i)
	}
	b.WriteString("}\n")

	b.WriteString("*, *::before, *::after { box-sizing: border-box; }\n")
	b.WriteString("body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, \"Segoe UI\", Roboto, sans-serif; color: var(--gray-12); background: var(--gray-1); }\n")
	b.WriteString(".rt-Center { display: flex; align-items: center; justify-content: center; }\n")
	b.WriteString(".rt-Flex { display: flex; }\n")
	b.WriteString(".rt-r-fd-column { flex-direction: column; }\n")
	b.WriteString(".rt-r-fd-row { flex-direction: row; }\n")
	for _, k := range sortedKeys(alignments) {
		fmt.Fprintf(&b, ".rt-r-ai-%s { align-items: %s; }\n", k, alignments[k])
	}
	for _, k := range sortedKeys(justifications) {
		fmt.Fprintf(&b, ".rt-r-jc-%s { justify-content: %s; }\n", k, justifications[k])
	}
	for _, k := range sortedKeys(spaceScale) {
		fmt.Fprintf(&b, ".rt-r-gap-%s { gap: var(--space-%s); }\n", k, k)
		fmt.Fprintf(&b, ".rt-r-p-%s { padding: var(--space-%s); }\n", k, k)
	}
	b.WriteString(".rt-Heading { margin: 0; font-weight: 700; }\n")
	b.WriteString(".rt-Text { margin: 0; }\n")
	for _, k := range sortedKeys(fontScale) {
		fmt.Fprintf(&b, ".rt-r-size-%s { font-size: var(--font-size-%s); line-height: var(--line-height-%s); }\n", k, k, k)
	}
	for _, k := range sortedKeys(weights) {
		fmt.Fprintf(&b, ".rt-r-weight-%s { font-weight: %s; }\n", k, weights[k])
	}

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

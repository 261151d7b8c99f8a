// Package prompt holds the templating layer: plain-text prompt
// blueprints with named placeholders, a file-backed store with embedded
// defaults, tag-driven template selection, and placeholder rendering.
package prompt

import (
	"regexp"

	"github.com/Robotu-ai/robotu-molkit/core"
)

// placeholderPattern matches {name}-style placeholders. Placeholder
// names are lowercase identifiers.
var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Template is a parametrized prompt blueprint for one audience
// category. Templates are selected, never mutated, at request time.
type Template struct {
	Category core.Category
	Text     string
}

// Placeholders returns the distinct placeholder names referenced by the
// template, in first-appearance order.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.Text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

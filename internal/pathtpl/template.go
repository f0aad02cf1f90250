// Package pathtpl renders named path templates. Templates contain {Field}
// tokens substituted from a field map; the rendered path may keep a
// %d-style frame placeholder that is filled in per frame at link time.
package pathtpl

import (
	"fmt"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// Template is a named path template.
type Template struct {
	name string
	raw  string
}

// New constructs a template from its configured raw form.
func New(name, raw string) Template {
	return Template{name: name, raw: raw}
}

// Name returns the template's configured name.
func (t Template) Name() string {
	return t.name
}

// Fields returns the distinct token names referenced by the template, in
// order of first appearance.
func (t Template) Fields() []string {
	matches := tokenPattern.FindAllStringSubmatch(t.raw, -1)
	seen := make(map[string]struct{}, len(matches))
	fields := make([]string, 0, len(matches))
	for _, match := range matches {
		if _, ok := seen[match[1]]; ok {
			continue
		}
		seen[match[1]] = struct{}{}
		fields = append(fields, match[1])
	}
	return fields
}

// Render substitutes every {Field} token from the supplied field map. A token
// with no mapping, or a mapping with an empty value, is an error naming the
// token and the template.
func (t Template) Render(fields map[string]string) (string, error) {
	var missing []string
	rendered := tokenPattern.ReplaceAllStringFunc(t.raw, func(token string) string {
		name := token[1 : len(token)-1]
		value, ok := fields[name]
		if !ok || value == "" {
			missing = append(missing, name)
			return token
		}
		return value
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("template %s: unresolved fields: %s", t.name, strings.Join(missing, ", "))
	}
	return rendered, nil
}

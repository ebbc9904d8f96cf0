package codegen

import (
	"regexp"

	"github.com/chatforge/blockflow/internal/ir"
)

// fieldToken matches {{fieldName}} placeholders in code templates.
var fieldToken = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// Render substitutes every {{field}} token in the template with the
// stringified field value. Tokens with no matching field render as the
// empty string and are returned in missing, in order of first
// appearance; rendering never fails.
func Render(template string, fields ir.FieldObject) (rendered string, missing []string) {
	seen := make(map[string]bool)
	rendered = fieldToken.ReplaceAllStringFunc(template, func(m string) string {
		name := m[2 : len(m)-2]
		v, ok := fields[name]
		if !ok {
			if !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
			return ""
		}
		return v.Render()
	})
	return rendered, missing
}

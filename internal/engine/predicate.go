package engine

import (
	"regexp"
	"strings"

	"github.com/chatforge/blockflow/internal/ir"
)

// Predicate prefixes for CONDITION edges. A predicate without a prefix is
// treated as contains.
const (
	prefixContains = "contains:"
	prefixEquals   = "equals:"
)

// varToken matches ${name} references resolved from context variables.
var varToken = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Evaluate decides whether a CONDITION predicate matches the runtime
// context. Matching is case-insensitive against the incoming text.
//
// Supported forms:
//
//	contains:<needle>  incoming text contains needle
//	equals:<value>     incoming text equals value
//	<bare word>        shorthand for contains:<bare word>
//
// ${name} tokens in the needle resolve from context variables before
// matching.
//
// Everything else evaluates to false: empty predicates, unknown prefixes,
// unresolvable variables, and bare strings with no letter or digit in
// them. Fail-closed, never fail-open: a broken predicate silences one
// branch instead of firing it on every message.
func Evaluate(predicate string, ctx ir.RuntimeContext) bool {
	predicate = strings.TrimSpace(predicate)
	if predicate == "" {
		return false
	}

	predicate, ok := substituteVars(predicate, ctx.Variables)
	if !ok {
		return false
	}

	text := strings.ToLower(ctx.IncomingText)

	switch {
	case strings.HasPrefix(predicate, prefixContains):
		needle := strings.TrimSpace(strings.TrimPrefix(predicate, prefixContains))
		if needle == "" {
			return false
		}
		return strings.Contains(text, strings.ToLower(needle))

	case strings.HasPrefix(predicate, prefixEquals):
		value := strings.TrimSpace(strings.TrimPrefix(predicate, prefixEquals))
		if value == "" {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(ctx.IncomingText), value)

	case strings.Contains(predicate, ":"):
		// Unknown predicate form.
		return false

	default:
		if !hasWordContent(predicate) {
			return false
		}
		return strings.Contains(text, strings.ToLower(predicate))
	}
}

// substituteVars resolves ${name} tokens. Returns ok=false if any
// referenced variable is absent.
func substituteVars(s string, vars map[string]string) (string, bool) {
	missing := false
	out := varToken.ReplaceAllStringFunc(s, func(m string) string {
		name := m[2 : len(m)-1]
		v, ok := vars[name]
		if !ok {
			missing = true
			return m
		}
		return v
	})
	if missing {
		return "", false
	}
	return out, true
}

// hasWordContent reports whether s contains at least one letter or
// digit. A bare predicate of pure punctuation ("???") is malformed.
func hasWordContent(s string) bool {
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') || r > 127 {
			return true
		}
	}
	return false
}

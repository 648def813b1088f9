package msgmap

import "regexp"

// Definition maps collection keys to the items they render.
type Definition map[string]Item

// Item describes one template of a collection. An item with only Base set is
// a literal string with no tokens.
type Item struct {
	// Base is the unrendered template string.
	Base string
	// Required maps token names to their substitution configs. A nil config
	// uses the presence check.
	Required map[string]*Substitution
	// Optional maps token names to their substitution configs. A nil config
	// accepts anything.
	Optional map[string]*Substitution
}

// Text returns an item for a literal string with no tokens.
func Text(s string) Item {
	return Item{Base: s}
}

// Substitution configures the validator built for one token of an item.
//
// The zero value (or a nil *Substitution) selects the built-in policy of the
// token's kind. Literal(s) always passes and uses s as the fallback.
type Substitution struct {
	// Pattern is a regular expression compiled case-insensitively.
	// Ignored when Regex is set.
	Pattern string
	// Regex is a pre-compiled pattern used as-is.
	Regex *regexp.Regexp
	// Validator is a custom check. When set, its verdict replaces the
	// pattern's.
	Validator Validator
	// Default is the fallback used when the checks above do not pass.
	Default string

	literal *string
}

// Literal returns a config that always passes and falls back to s when the
// value is absent or empty.
func Literal(s string) *Substitution {
	return &Substitution{literal: &s}
}

// LiteralValue returns the literal fallback, if s was built with Literal.
func (s *Substitution) LiteralValue() (string, bool) {
	if s == nil || s.literal == nil {
		return "", false
	}
	return *s.literal, true
}

// isEmpty reports whether s selects the built-in policy.
func (s *Substitution) isEmpty() bool {
	return s == nil ||
		(s.literal == nil && s.Pattern == "" && s.Regex == nil && s.Validator == nil && s.Default == "")
}

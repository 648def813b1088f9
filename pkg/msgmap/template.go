package msgmap

import (
	"fmt"

	"github.com/randalmurphal/msgmap/pkg/msgmap/token"
)

// binding ties a token name to the validator that guards it.
type binding struct {
	name      string
	required  bool
	validator Validator
}

// Template is a base string with registered tokens.
//
// Templates are immutable: every registration returns a new Template and
// leaves the receiver untouched, so a Template can be shared across
// goroutines and used as the starting point for several variants.
type Template struct {
	base     string
	bindings []binding
}

// New creates a Template for base with no registered tokens.
func New(base string) *Template {
	return &Template{base: base}
}

// Optional registers name as an optional token. Any value, including none, passes.
func (t *Template) Optional(name string) *Template {
	return t.with(name, false, AlwaysPass)
}

// OptionalWith registers name as an optional token guarded by v.
// A nil v behaves like Optional.
func (t *Template) OptionalWith(name string, v Validator) *Template {
	if v == nil {
		v = AlwaysPass
	}
	return t.with(name, false, v)
}

// Required registers name as a required token. Rendering fails when the
// value is absent or nil; an empty string is accepted.
func (t *Template) Required(name string) *Template {
	return t.with(name, true, RequirePresent)
}

// RequiredWith registers name as a required token guarded by v.
// A nil v behaves like Required.
func (t *Template) RequiredWith(name string, v Validator) *Template {
	if v == nil {
		v = RequirePresent
	}
	return t.with(name, true, v)
}

// with returns a copy of t with name bound to v. Re-registering a name
// replaces its binding in place, keeping its position in validation order.
func (t *Template) with(name string, required bool, v Validator) *Template {
	next := &Template{
		base:     t.base,
		bindings: make([]binding, len(t.bindings), len(t.bindings)+1),
	}
	copy(next.bindings, t.bindings)

	b := binding{name: name, required: required, validator: v}
	for i := range next.bindings {
		if next.bindings[i].name == name {
			next.bindings[i] = b
			return next
		}
	}
	next.bindings = append(next.bindings, b)
	return next
}

// Base returns the unrendered template string.
func (t *Template) Base() string { return t.base }

// Names returns the registered token names in validation order.
func (t *Template) Names() []string {
	names := make([]string, len(t.bindings))
	for i, b := range t.bindings {
		names[i] = b.name
	}
	return names
}

// IsRequired reports whether name is registered as a required token.
func (t *Template) IsRequired(name string) bool {
	for _, b := range t.bindings {
		if b.name == name {
			return b.required
		}
	}
	return false
}

// Placeholders returns the distinct %name tokens that appear in the base string.
func (t *Template) Placeholders() []string {
	return token.Scan(t.base)
}

// Unregistered returns placeholders in the base string that have no registered
// token. They are left verbatim by Render.
func (t *Template) Unregistered() []string {
	var out []string
	for _, name := range t.Placeholders() {
		if !t.has(name) {
			out = append(out, name)
		}
	}
	return out
}

func (t *Template) has(name string) bool {
	for _, b := range t.bindings {
		if b.name == name {
			return true
		}
	}
	return false
}

// Render substitutes every registered token in the base string.
//
// Tokens are processed in registration order. For each token the value is
// resolved (callbacks are invoked), then validated. A failing validator aborts
// the render with a *ValidationError and no output. Otherwise the token is
// replaced everywhere with the value if it is non-empty, or with the
// validator's fallback if one was produced; with neither, the token stays in
// the output as written.
//
// Example:
//
//	tpl := msgmap.New("Hello, %name!").Required("name")
//	s, err := tpl.Render(msgmap.Values{"name": "Nancy"})
//	// s: "Hello, Nancy!"
func (t *Template) Render(values Values) (string, error) {
	result := t.base

	for _, b := range t.bindings {
		c := values.resolve(b.name)

		verdict := b.validator(c)
		if !verdict.OK() {
			return "", &ValidationError{Token: b.name, Base: t.base, Received: c}
		}

		switch fallback, ok := verdict.Fallback(); {
		case c.Truthy():
			result = token.Replace(result, b.name, c.Value)
		case ok:
			result = token.Replace(result, b.name, fallback)
		}
	}

	return result, nil
}

// MustRender is like Render but panics on validation failure.
//
// Use it for templates whose values are known to satisfy every validator.
func (t *Template) MustRender(values Values) string {
	s, err := t.Render(values)
	if err != nil {
		panic(fmt.Sprintf("msgmap: %v", err))
	}
	return s
}

// Render renders tpl with values. It exists so callers holding either a
// Template or a Collection have a single rendering verb; see Collection.Render
// for keyed rendering.
func Render(tpl *Template, values Values) (string, error) {
	if tpl == nil {
		return "", ErrNilTemplate
	}
	return tpl.Render(values)
}

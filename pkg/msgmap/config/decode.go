package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/randalmurphal/msgmap/pkg/msgmap"
)

// baseFields are the accepted spellings of an item's base string, in
// precedence order.
var baseFields = []string{"base", "template", "message"}

var itemFields = map[string]bool{
	"base": true, "template": true, "message": true,
	"required": true, "optional": true,
}

var substitutionFields = map[string]bool{
	"regex": true, "pattern": true, "validator": true, "default": true,
}

// DecodeError reports a malformed definition document.
type DecodeError struct {
	// Path is the dotted location of the offending node, e.g. "HELLO.required.two".
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "decode definition: " + e.Message
	}
	return fmt.Sprintf("decode definition: %s: %s", e.Path, e.Message)
}

// Option configures decoding and watching.
type Option func(*options)

type options struct {
	validators     map[string]msgmap.Validator
	collectionOpts []msgmap.CollectionOption
	logger         *slog.Logger
	debounce       time.Duration
}

func defaultOptions() options {
	return options{debounce: 100 * time.Millisecond}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithValidators registers validators that documents reference by name.
// Later calls add to earlier ones.
func WithValidators(validators map[string]msgmap.Validator) Option {
	return func(o *options) {
		if o.validators == nil {
			o.validators = make(map[string]msgmap.Validator, len(validators))
		}
		for name, v := range validators {
			o.validators[name] = v
		}
	}
}

// Decode converts a decoded JSON or YAML document into a Definition.
//
// Each top-level value is either a string (a literal item) or an object with
// a base string (spelled base, template, or message) and optional required
// and optional maps. Substitution values are null (built-in policy), a string
// (literal fallback), or an object with regex, validator, and default fields.
// Validators are referenced by the names registered with WithValidators.
func Decode(doc map[string]any, opts ...Option) (msgmap.Definition, error) {
	o := applyOptions(opts)
	root := New(doc)

	def := make(msgmap.Definition, len(root.data))
	for _, key := range root.Keys() {
		item, err := o.decodeItem(key, root.data[key])
		if err != nil {
			return nil, err
		}
		def[key] = item
	}
	return def, nil
}

func (o options) decodeItem(key string, raw any) (msgmap.Item, error) {
	if s, ok := raw.(string); ok {
		return msgmap.Text(s), nil
	}

	m, ok := asMap(raw)
	if !ok {
		return msgmap.Item{}, &DecodeError{Path: key, Message: fmt.Sprintf("expected string or object, got %s", typeName(raw))}
	}
	node := New(m)

	if err := checkFields(key, node, itemFields); err != nil {
		return msgmap.Item{}, err
	}

	var item msgmap.Item
	found := false
	for _, field := range baseFields {
		if !node.Has(field) {
			continue
		}
		s, ok := node.Any(field, nil).(string)
		if !ok {
			return msgmap.Item{}, &DecodeError{Path: key + "." + field, Message: "expected string"}
		}
		item.Base = s
		found = true
		break
	}
	if !found {
		return msgmap.Item{}, &DecodeError{Path: key, Message: "missing base"}
	}

	var err error
	if item.Required, err = o.decodeTokens(key+".required", node, "required"); err != nil {
		return msgmap.Item{}, err
	}
	if item.Optional, err = o.decodeTokens(key+".optional", node, "optional"); err != nil {
		return msgmap.Item{}, err
	}
	return item, nil
}

func (o options) decodeTokens(path string, node Config, field string) (map[string]*msgmap.Substitution, error) {
	raw := node.Any(field, nil)
	if raw == nil {
		return nil, nil
	}
	tokens, ok := node.Map(field)
	if !ok {
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("expected object, got %s", typeName(raw))}
	}

	out := make(map[string]*msgmap.Substitution, len(tokens.data))
	for _, name := range tokens.Keys() {
		sub, err := o.decodeSubstitution(path+"."+name, tokens.data[name])
		if err != nil {
			return nil, err
		}
		out[name] = sub
	}
	return out, nil
}

func (o options) decodeSubstitution(path string, raw any) (*msgmap.Substitution, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return msgmap.Literal(v), nil
	}

	m, ok := asMap(raw)
	if !ok {
		return nil, &DecodeError{Path: path, Message: fmt.Sprintf("expected null, string, or object, got %s", typeName(raw))}
	}
	node := New(m)

	if err := checkFields(path, node, substitutionFields); err != nil {
		return nil, err
	}

	sub := &msgmap.Substitution{}
	for _, field := range []string{"regex", "pattern", "validator", "default"} {
		if !node.Has(field) {
			continue
		}
		s, ok := node.Any(field, nil).(string)
		if !ok {
			return nil, &DecodeError{Path: path + "." + field, Message: "expected string"}
		}
		switch field {
		case "regex", "pattern":
			if sub.Pattern != "" && sub.Pattern != s {
				return nil, &DecodeError{Path: path, Message: "regex and pattern disagree"}
			}
			sub.Pattern = s
		case "validator":
			v, ok := o.validators[s]
			if !ok {
				return nil, &DecodeError{Path: path + ".validator", Message: fmt.Sprintf("unknown validator %q", s)}
			}
			sub.Validator = v
		case "default":
			sub.Default = s
		}
	}
	return sub, nil
}

func checkFields(path string, node Config, allowed map[string]bool) error {
	var unknown []string
	for _, k := range node.Keys() {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return &DecodeError{Path: path, Message: "unknown field " + strings.Join(unknown, ", ")}
	}
	return nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int64, float64, uint64:
		return "number"
	case []any:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}

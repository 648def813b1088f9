package msgmap

import "fmt"

// Values maps token names to substitution values.
//
// Accepted value forms:
//   - string: used as-is
//   - func() string: invoked once per render
//   - fmt.Stringer: its String method is used
//   - nil: an explicit null, which fails required tokens
//   - anything else: formatted with %v
//
// A name with no entry is absent.
type Values map[string]any

// resolve turns the entry for name into a Candidate.
func (v Values) resolve(name string) Candidate {
	raw, ok := v[name]
	if !ok {
		return Absent()
	}

	switch val := raw.(type) {
	case nil:
		return Null()
	case string:
		return Present(val)
	case func() string:
		if val == nil {
			return Null()
		}
		return Present(val())
	case fmt.Stringer:
		return Present(val.String())
	default:
		return Present(fmt.Sprintf("%v", val))
	}
}

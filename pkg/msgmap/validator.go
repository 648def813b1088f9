package msgmap

import "strconv"

// presence describes whether a value was supplied for a token.
type presence uint8

const (
	absent presence = iota // key missing from Values
	null                   // key present with a nil value
	set                    // key present with a string value
)

// Candidate is the resolved value offered for a token during a render.
type Candidate struct {
	// Value is the resolved string. Empty unless the candidate is present.
	Value string

	state presence
}

// Absent returns a candidate for a token that had no entry in the values.
func Absent() Candidate { return Candidate{state: absent} }

// Null returns a candidate for a token whose value was explicitly nil.
func Null() Candidate { return Candidate{state: null} }

// Present returns a candidate carrying s.
func Present(s string) Candidate { return Candidate{Value: s, state: set} }

// IsPresent reports whether a value (possibly empty) was supplied.
func (c Candidate) IsPresent() bool { return c.state == set }

// IsNull reports whether the value was explicitly nil.
func (c Candidate) IsNull() bool { return c.state == null }

// Truthy reports whether the candidate is usable as a replacement.
// An empty string is present but not truthy.
func (c Candidate) Truthy() bool { return c.state == set && c.Value != "" }

// String returns the display form used in error messages: the value wrapped
// in double quotes without escaping, or the literal words undefined or null.
func (c Candidate) String() string {
	switch c.state {
	case set:
		return `"` + c.Value + `"`
	case null:
		return "null"
	default:
		return "undefined"
	}
}

type resultKind uint8

const (
	resultFail resultKind = iota
	resultPass
	resultFallback
)

// Result is the outcome of a Validator: pass, fail, or pass with a fallback
// replacement used when the candidate is absent or empty.
type Result struct {
	kind     resultKind
	fallback string
}

// Pass accepts the candidate.
func Pass() Result { return Result{kind: resultPass} }

// Fail rejects the candidate and aborts the render.
func Fail() Result { return Result{kind: resultFail} }

// PassWithFallback accepts the candidate and supplies s as the replacement
// when the candidate is absent or empty. An empty s is still a fallback:
// the token is replaced with nothing.
func PassWithFallback(s string) Result { return Result{kind: resultFallback, fallback: s} }

// Check converts a boolean verdict into a Result.
func Check(ok bool) Result {
	if ok {
		return Pass()
	}
	return Fail()
}

// OK reports whether the render may proceed.
func (r Result) OK() bool { return r.kind != resultFail }

// Fallback returns the fallback replacement, if the validator produced one.
func (r Result) Fallback() (string, bool) {
	return r.fallback, r.kind == resultFallback
}

// truthy mirrors how composed validators short-circuit: a plain pass, or a
// fallback that carries text.
func (r Result) truthy() bool {
	return r.kind == resultPass || (r.kind == resultFallback && r.fallback != "")
}

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r.kind {
	case resultPass:
		return "pass"
	case resultFallback:
		return "fallback(" + strconv.Quote(r.fallback) + ")"
	default:
		return "fail"
	}
}

// Validator decides whether a candidate may be substituted for a token.
type Validator func(c Candidate) Result

// AlwaysPass is the default validator for optional tokens.
func AlwaysPass(Candidate) Result { return Pass() }

// RequirePresent is the default validator for required tokens. It fails only
// when the candidate is absent or null; an empty string passes.
func RequirePresent(c Candidate) Result { return Check(c.IsPresent()) }

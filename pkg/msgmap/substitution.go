package msgmap

import (
	"fmt"
	"regexp"
)

// patternCompiler compiles string patterns for a substitution config.
type patternCompiler func(pattern string) (*regexp.Regexp, error)

// compileFold compiles pattern case-insensitively.
func compileFold(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

// newValidator builds the validator for one token from its config. Required
// tokens fall back to RequirePresent, optional ones to AlwaysPass.
//
// A literal config always passes with its literal as fallback. An empty config
// uses the fallback. Otherwise the checks run in order: the pattern (an
// absent or null value never matches), then the custom validator, which
// overrides the pattern's verdict. A truthy verdict passes; otherwise Default
// is offered as fallback if set. A supplied value rejected for a required
// token fails; everything else is left to the fallback.
func newValidator(cfg *Substitution, required bool, compile patternCompiler) (Validator, error) {
	var fallback Validator = AlwaysPass
	if required {
		fallback = RequirePresent
	}

	if lit, ok := cfg.LiteralValue(); ok {
		return func(Candidate) Result { return PassWithFallback(lit) }, nil
	}
	if cfg.isEmpty() {
		return fallback, nil
	}

	re := cfg.Regex
	if re == nil && cfg.Pattern != "" {
		var err error
		if re, err = compile(cfg.Pattern); err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidSubstitution, cfg.Pattern, err)
		}
	}
	custom := cfg.Validator
	def := cfg.Default

	return func(c Candidate) Result {
		proceed := Pass()
		if re != nil {
			proceed = Check(c.IsPresent() && re.MatchString(c.Value))
		}
		if custom != nil {
			proceed = custom(c)
		}

		switch {
		case proceed.truthy():
			return proceed
		case def != "":
			return PassWithFallback(def)
		case required && c.IsPresent():
			return Fail()
		default:
			return fallback(c)
		}
	}, nil
}

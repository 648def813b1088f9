package msgmap

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrValidation indicates a token value was rejected by its validator.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownKey indicates a collection was asked for a key its definition lacks.
	ErrUnknownKey = errors.New("unknown key")

	// ErrInvalidSubstitution indicates a substitution config cannot be turned into a validator.
	ErrInvalidSubstitution = errors.New("invalid substitution config")

	// ErrNilTemplate indicates Render was called without a template.
	ErrNilTemplate = errors.New("nil template")
)

// ValidationError reports a token whose value failed validation.
// Rendering is all-or-nothing, so no output accompanies this error.
type ValidationError struct {
	// Token is the name of the rejected token.
	Token string
	// Base is the unrendered template string.
	Base string
	// Received is the value that was offered.
	Received Candidate
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf(`validation failed: substitution "%%%s" in "%s": received %s`,
		e.Token, e.Base, e.Received)
}

// Unwrap returns ErrValidation for errors.Is support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// LookupError reports a key that is not part of a collection's definition.
type LookupError struct {
	Key string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown key %q", e.Key)
}

// Unwrap returns ErrUnknownKey for errors.Is support.
func (e *LookupError) Unwrap() error {
	return ErrUnknownKey
}

// ConfigError reports a substitution config that could not be built.
type ConfigError struct {
	// Key is the collection key whose item holds the config.
	Key string
	// Token is the token the config belongs to.
	Token string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("key %s: token %s: %v", e.Key, e.Token, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

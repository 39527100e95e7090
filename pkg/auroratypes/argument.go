package auroratypes

import "fmt"

// ArgumentType converts a single raw token into a typed value and offers
// completion candidates for interactive input. Implementations are stateless or
// read-mostly and may be shared between nodes and argument names.
type ArgumentType interface {
	// Name is a display label. It is not the key under which parsed values are stored.
	Name() string
	// Parse converts token into a value. Failures should be *ParseError so that
	// the message reaches the caller verbatim.
	Parse(caller Caller, token string) (any, error)
	// Completions returns candidate tokens. The result may be empty and may ignore caller.
	Completions(caller Caller) []string
}

// ParseError is returned by ArgumentType.Parse when a token cannot be converted.
// Message is shown to the caller as-is.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Errorf builds a *ParseError with a formatted message.
func Errorf(format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

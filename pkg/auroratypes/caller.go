// Package auroratypes defines the collaborator contracts of the Aurora command engine.
// This file contains the caller abstraction: who is invoking a command, what they are
// authorized to do, and where rejection messages are delivered.
package auroratypes

// CallerKind tags the kind of entity invoking a command.
type CallerKind int

const (
	// KindAny is the default node restriction and accepts every caller.
	KindAny CallerKind = iota
	// KindSession is an interactive session with a stable identity.
	KindSession
	// KindConsole is a non-interactive batch or console caller.
	KindConsole
)

// String returns a human-readable name used in caller-facing messages.
func (k CallerKind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindSession:
		return "session"
	case KindConsole:
		return "console"
	default:
		return "unknown"
	}
}

// Satisfies reports whether a caller of kind k may use a node restricted to required.
func (k CallerKind) Satisfies(required CallerKind) bool {
	return required == KindAny || k == required
}

// ParseCallerKind converts a configuration string into a CallerKind.
// The empty string maps to KindAny.
func ParseCallerKind(s string) (CallerKind, bool) {
	switch s {
	case "", "any":
		return KindAny, true
	case "session":
		return KindSession, true
	case "console":
		return KindConsole, true
	default:
		return KindAny, false
	}
}

// Caller is the entity invoking a command. The engine never inspects a caller
// beyond these four capabilities.
type Caller interface {
	// HasAuthorization reports whether the caller holds the capability token.
	HasAuthorization(token string) bool
	// Identity returns a stable key for cooldown bookkeeping. Callers without a
	// stable identity return false and are exempt from cooldowns.
	Identity() (string, bool)
	// Kind returns the caller's kind tag.
	Kind() CallerKind
	// Notify delivers a message to the caller.
	Notify(message string)
}

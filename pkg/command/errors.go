package command

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"aurora/pkg/auroratypes"
)

// Sentinel errors. Every concrete error below unwraps to one of these so callers
// can classify outcomes with errors.Is.
var (
	ErrWrongCallerKind       = errors.New("wrong caller kind")
	ErrNotPermitted          = errors.New("not permitted")
	ErrOnCooldown            = errors.New("on cooldown")
	ErrArity                 = errors.New("not enough arguments")
	ErrArgumentParse         = errors.New("argument parse failed")
	ErrNoExecution           = errors.New("no execution defined")
	ErrSubcommandRequired    = errors.New("subcommand required")
	ErrHandler               = errors.New("handler failed")
	ErrUnknownCommand        = errors.New("unknown command")
	ErrRateLimited           = errors.New("rate limited")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrInvalidNode           = errors.New("invalid node")
	ErrBind                  = errors.New("host binding failed")
	ErrSealed                = errors.New("dispatcher sealed")
)

// WrongCallerKindError rejects a caller whose kind does not satisfy the node.
type WrongCallerKindError struct {
	Node     string
	Required auroratypes.CallerKind
}

func (e *WrongCallerKindError) Error() string {
	return fmt.Sprintf("This command is only for %s callers!", e.Required)
}

func (e *WrongCallerKindError) Unwrap() error { return ErrWrongCallerKind }

// NotPermittedError rejects a caller lacking the node's authorization token.
type NotPermittedError struct {
	Node       string
	Permission string
}

func (e *NotPermittedError) Error() string {
	return "You don't have permission!"
}

func (e *NotPermittedError) Unwrap() error { return ErrNotPermitted }

// CooldownError rejects an invocation made before the node's cooldown elapsed.
type CooldownError struct {
	Node      string
	Remaining time.Duration
}

// Seconds returns the remaining wait rounded up to whole seconds.
func (e *CooldownError) Seconds() int64 {
	if e.Remaining <= 0 {
		return 0
	}
	return int64((e.Remaining + time.Second - 1) / time.Second)
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("On cooldown! Wait %d seconds.", e.Seconds())
}

func (e *CooldownError) Unwrap() error { return ErrOnCooldown }

// ArityError reports that fewer tokens were supplied than the node declares.
type ArityError struct {
	Path  string
	Usage string
}

func (e *ArityError) Error() string {
	if e.Usage == "" {
		return "Usage: /" + e.Path
	}
	return "Usage: /" + e.Path + " " + e.Usage
}

func (e *ArityError) Unwrap() error { return ErrArity }

// ArgumentError carries the first argument parse failure of a resolution.
type ArgumentError struct {
	Argument string
	Token    string
	Message  string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func (e *ArgumentError) Unwrap() error { return ErrArgumentParse }

// NoExecutionError is returned for an inert node: no handler and no children.
type NoExecutionError struct {
	Node string
}

func (e *NoExecutionError) Error() string {
	return "No execution defined for this command."
}

func (e *NoExecutionError) Unwrap() error { return ErrNoExecution }

// SubcommandRequiredError is returned when a node without a handler is reached
// and only its children could run.
type SubcommandRequiredError struct {
	Node     string
	Children []string
}

func (e *SubcommandRequiredError) Error() string {
	return "Available subcommands: " + strings.Join(e.Children, ", ")
}

func (e *SubcommandRequiredError) Unwrap() error { return ErrSubcommandRequired }

// HandlerError wraps an error returned by a handler that did run.
type HandlerError struct {
	Node string
	Err  error
}

func (e *HandlerError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the sentinel and the handler's own error.
func (e *HandlerError) Unwrap() []error { return []error{ErrHandler, e.Err} }

// UnknownCommandError is returned by Dispatch for an unregistered root name.
// It is a host-level concern and is never sent to the caller.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %s", e.Name)
}

func (e *UnknownCommandError) Unwrap() error { return ErrUnknownCommand }

// RateLimitedError is returned when a caller exceeds the dispatcher flood guard.
type RateLimitedError struct {
	Identity string
}

func (e *RateLimitedError) Error() string {
	return "You are sending commands too fast!"
}

func (e *RateLimitedError) Unwrap() error { return ErrRateLimited }

// DuplicateRegistrationError is returned by a strict dispatcher when a root
// name or alias is already taken by another node.
type DuplicateRegistrationError struct {
	Key      string
	Existing string
	Incoming string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("command key %q of %s already registered by %s", e.Key, e.Incoming, e.Existing)
}

func (e *DuplicateRegistrationError) Unwrap() error { return ErrDuplicateRegistration }

// InvalidNodeError describes a configuration problem found by Validate.
type InvalidNodeError struct {
	Path   string
	Reason string
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("invalid command /%s: %s", e.Path, e.Reason)
}

func (e *InvalidNodeError) Unwrap() error { return ErrInvalidNode }

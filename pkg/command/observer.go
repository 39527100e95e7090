package command

import (
	"errors"
	"time"
)

// Outcome classifies how a dispatch ended.
type Outcome string

const (
	OutcomeExecuted           Outcome = "executed"
	OutcomeHandlerError       Outcome = "handler_error"
	OutcomeWrongCallerKind    Outcome = "wrong_caller_kind"
	OutcomeNotPermitted       Outcome = "not_permitted"
	OutcomeOnCooldown         Outcome = "on_cooldown"
	OutcomeArity              Outcome = "arity"
	OutcomeArgumentParse      Outcome = "argument_parse"
	OutcomeNoExecution        Outcome = "no_execution"
	OutcomeSubcommandRequired Outcome = "subcommand_required"
	OutcomeRateLimited        Outcome = "rate_limited"
	OutcomeUnknownCommand     Outcome = "unknown_command"
	OutcomeOther              Outcome = "other"
)

// Classify maps a dispatch error to its Outcome. A nil error is OutcomeExecuted.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeExecuted
	case errors.Is(err, ErrHandler):
		return OutcomeHandlerError
	case errors.Is(err, ErrWrongCallerKind):
		return OutcomeWrongCallerKind
	case errors.Is(err, ErrNotPermitted):
		return OutcomeNotPermitted
	case errors.Is(err, ErrOnCooldown):
		return OutcomeOnCooldown
	case errors.Is(err, ErrArity):
		return OutcomeArity
	case errors.Is(err, ErrArgumentParse):
		return OutcomeArgumentParse
	case errors.Is(err, ErrNoExecution):
		return OutcomeNoExecution
	case errors.Is(err, ErrSubcommandRequired):
		return OutcomeSubcommandRequired
	case errors.Is(err, ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, ErrUnknownCommand):
		return OutcomeUnknownCommand
	default:
		return OutcomeOther
	}
}

// Observer receives one event per Dispatch call. root is the primary name of
// the matched root node, or "" when the name was not registered.
// ObservePrune is called after every cooldown prune, manual or swept.
type Observer interface {
	ObserveDispatch(root string, outcome Outcome, elapsed time.Duration)
	ObservePrune(removed int)
}

// Binder is the host platform's registration surface. Bind makes a root name
// and its aliases reachable from the host and reports whether that worked.
type Binder interface {
	Bind(name string, aliases []string) bool
}

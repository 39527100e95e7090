package command

import (
	"time"

	"aurora/pkg/auroratypes"
)

// Clock supplies the current time for cooldown arithmetic.
type Clock func() time.Time

// Execute resolves tokens against n as if n were a root that has already
// passed its own gate, notifies caller of any rejection, and returns it.
func (n *Node) Execute(caller auroratypes.Caller, tokens []string) error {
	_, err := n.resolve(caller, tokens, n.name, time.Now)
	if err != nil {
		caller.Notify(err.Error())
	}
	return err
}

// Resolve walks tokens down the tree starting at n and runs the selected
// handler. It reports whether a handler ran; err is nil only on a clean run.
// Rejections are returned, not notified.
func (n *Node) Resolve(caller auroratypes.Caller, tokens []string, now Clock) (bool, error) {
	if now == nil {
		now = time.Now
	}
	return n.resolve(caller, tokens, n.name, now)
}

// resolve is the dispatch state machine:
// SenderTypeCheck -> ChildMatch -> ArityCheck -> ArgumentBinding -> Invoke.
func (n *Node) resolve(caller auroratypes.Caller, tokens []string, path string, now Clock) (bool, error) {
	if !caller.Kind().Satisfies(n.allowedKind) {
		return false, &WrongCallerKindError{Node: n.name, Required: n.allowedKind}
	}

	if len(tokens) > 0 {
		if child := n.matchChild(tokens[0]); child != nil {
			if err := child.gate(caller, now()); err != nil {
				return false, err
			}
			ran, err := child.resolve(caller, tokens[1:], path+" "+child.name, now)
			if ran {
				child.applyCooldown(caller, now())
			}
			return ran, err
		}
	}

	if len(tokens) < len(n.arguments) {
		return false, &ArityError{Path: path, Usage: n.Usage()}
	}

	ctx, err := n.bind(caller, tokens)
	if err != nil {
		return false, err
	}

	switch {
	case n.handler != nil:
		if err := n.handler(caller, ctx); err != nil {
			return true, &HandlerError{Node: n.name, Err: err}
		}
		return true, nil
	case len(n.children) > 0:
		return false, &SubcommandRequiredError{Node: n.name, Children: n.childNames()}
	default:
		return false, &NoExecutionError{Node: n.name}
	}
}

// gate applies the permission and cooldown checks that a parent (or the
// Dispatcher, for roots) performs before entering n. Permission wins over
// cooldown.
func (n *Node) gate(caller auroratypes.Caller, now time.Time) error {
	if !n.Permitted(caller) {
		return &NotPermittedError{Node: n.name, Permission: n.permission}
	}
	if remaining := n.cooldownRemaining(caller, now); remaining > 0 {
		return &CooldownError{Node: n.name, Remaining: remaining}
	}
	return nil
}

// bind parses one token per declared argument. The first failure aborts and
// the partial context is dropped. Surplus tokens are ignored.
func (n *Node) bind(caller auroratypes.Caller, tokens []string) (*Context, error) {
	ctx := newContext(len(n.arguments))
	for i, arg := range n.arguments {
		value, err := arg.Type.Parse(caller, tokens[i])
		if err != nil {
			return nil, &ArgumentError{Argument: arg.Name, Token: tokens[i], Message: err.Error()}
		}
		ctx.set(arg.Name, value)
	}
	return ctx, nil
}

// Package command implements the Aurora command tree: named and aliased nodes,
// per-node authorization and cooldowns, typed positional arguments, handler
// invocation, tab completion, and the Dispatcher that owns the root nodes.
//
// A tree is configured once with the fluent Node methods, registered with a
// Dispatcher, and only then exposed to callers. Mutating a tree while it is
// being dispatched is not supported.
package command

import (
	"fmt"
	"strings"
	"time"

	"aurora/pkg/auroratypes"
)

// Handler runs a resolved command. A handler that returns an error still
// counts as an execution for cooldown purposes.
type Handler func(caller auroratypes.Caller, ctx *Context) error

// Argument is one declared positional argument of a node.
type Argument struct {
	Name string
	Type auroratypes.ArgumentType
}

// Node is one command or subcommand of the tree.
type Node struct {
	name        string
	aliases     []string
	description string
	permission  string
	cooldown    time.Duration
	cooldowns   cooldownStore
	arguments   []Argument
	handler     Handler
	children    []*Node
	allowedKind auroratypes.CallerKind
}

// New creates a node with the given name. The node accepts any caller kind,
// requires no authorization and has no cooldown until configured otherwise.
func New(name string) *Node {
	return &Node{
		name:        name,
		cooldowns:   newMapCooldowns(),
		allowedKind: auroratypes.KindAny,
	}
}

// WithAliases appends alternative names.
func (n *Node) WithAliases(aliases ...string) *Node {
	n.aliases = append(n.aliases, aliases...)
	return n
}

// WithDescription sets the help text shown in command listings.
func (n *Node) WithDescription(description string) *Node {
	n.description = description
	return n
}

// WithPermission sets the capability token required to use the node.
// An empty token means the node is always permitted.
func (n *Node) WithPermission(token string) *Node {
	n.permission = token
	return n
}

// WithCooldown sets the per-caller minimum interval between successful
// executions. Zero disables the cooldown.
func (n *Node) WithCooldown(d time.Duration) *Node {
	n.cooldown = d
	return n
}

// WithArgument appends a positional argument. name is the key under which the
// parsed value is stored in the Context.
func (n *Node) WithArgument(name string, t auroratypes.ArgumentType) *Node {
	n.arguments = append(n.arguments, Argument{Name: name, Type: t})
	return n
}

// WithHandler binds the function run when resolution ends at this node.
func (n *Node) WithHandler(h Handler) *Node {
	n.handler = h
	return n
}

// RestrictTo limits the node to callers of the given kind.
func (n *Node) RestrictTo(kind auroratypes.CallerKind) *Node {
	n.allowedKind = kind
	return n
}

// WithChild appends subcommands. Children are matched in the order added.
func (n *Node) WithChild(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// Name returns the node's primary name.
func (n *Node) Name() string { return n.name }

// Aliases returns a copy of the node's aliases.
func (n *Node) Aliases() []string {
	out := make([]string, len(n.aliases))
	copy(out, n.aliases)
	return out
}

// Description returns the help text.
func (n *Node) Description() string { return n.description }

// Permission returns the required capability token, or "".
func (n *Node) Permission() string { return n.permission }

// Cooldown returns the configured cooldown duration.
func (n *Node) Cooldown() time.Duration { return n.cooldown }

// AllowedKind returns the caller kind restriction.
func (n *Node) AllowedKind() auroratypes.CallerKind { return n.allowedKind }

// Arguments returns a copy of the declared arguments.
func (n *Node) Arguments() []Argument {
	out := make([]Argument, len(n.arguments))
	copy(out, n.arguments)
	return out
}

// Children returns a copy of the subcommand list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// HasHandler reports whether a handler is bound.
func (n *Node) HasHandler() bool { return n.handler != nil }

// Permitted reports whether caller holds the node's authorization.
func (n *Node) Permitted(caller auroratypes.Caller) bool {
	return n.permission == "" || caller.HasAuthorization(n.permission)
}

// Matches reports whether token names this node, ignoring case.
func (n *Node) Matches(token string) bool {
	if strings.EqualFold(n.name, token) {
		return true
	}
	for _, alias := range n.aliases {
		if strings.EqualFold(alias, token) {
			return true
		}
	}
	return false
}

// matchChild returns the first child matching token in declaration order.
func (n *Node) matchChild(token string) *Node {
	for _, child := range n.children {
		if child.Matches(token) {
			return child
		}
	}
	return nil
}

// childNames lists the primary names of the children in order.
func (n *Node) childNames() []string {
	names := make([]string, 0, len(n.children))
	for _, child := range n.children {
		names = append(names, child.name)
	}
	return names
}

// Usage renders the arguments expected after this node's name. With children
// the form is "[child1, child2 | <arg1><arg2>]", otherwise "<arg1> <arg2>".
func (n *Node) Usage() string {
	var sb strings.Builder
	if len(n.children) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(n.childNames(), ", "))
		if len(n.arguments) > 0 {
			sb.WriteString(" | ")
			for _, arg := range n.arguments {
				sb.WriteString("<" + arg.Name + ">")
			}
		}
		sb.WriteString("]")
		return sb.String()
	}
	parts := make([]string, 0, len(n.arguments))
	for _, arg := range n.arguments {
		parts = append(parts, "<"+arg.Name+">")
	}
	return strings.Join(parts, " ")
}

// Validate checks the subtree for configuration mistakes: empty names, nil
// argument types, duplicate argument names and sibling name or alias collisions.
func (n *Node) Validate() error {
	return n.validate(n.name)
}

func (n *Node) validate(path string) error {
	if strings.TrimSpace(n.name) == "" {
		return &InvalidNodeError{Path: path, Reason: "name cannot be empty"}
	}
	if strings.ContainsAny(n.name, " \t\n") {
		return &InvalidNodeError{Path: path, Reason: "name cannot contain whitespace"}
	}
	if n.cooldown < 0 {
		return &InvalidNodeError{Path: path, Reason: "cooldown cannot be negative"}
	}

	seenArgs := make(map[string]bool, len(n.arguments))
	for i, arg := range n.arguments {
		if arg.Name == "" {
			return &InvalidNodeError{Path: path, Reason: fmt.Sprintf("argument %d has no name", i)}
		}
		if arg.Type == nil {
			return &InvalidNodeError{Path: path, Reason: fmt.Sprintf("argument %q has no type", arg.Name)}
		}
		if seenArgs[arg.Name] {
			return &InvalidNodeError{Path: path, Reason: fmt.Sprintf("argument %q declared twice", arg.Name)}
		}
		seenArgs[arg.Name] = true
	}

	owners := make(map[string]string)
	for _, child := range n.children {
		if child == nil {
			return &InvalidNodeError{Path: path, Reason: "nil subcommand"}
		}
		for _, key := range append([]string{child.name}, child.aliases...) {
			lower := strings.ToLower(key)
			if owner, taken := owners[lower]; taken {
				return &InvalidNodeError{
					Path:   path,
					Reason: fmt.Sprintf("subcommand key %q used by both %s and %s", key, owner, child.name),
				}
			}
			owners[lower] = child.name
		}
		if err := child.validate(path + " " + child.name); err != nil {
			return err
		}
	}
	return nil
}

package command

import (
	"strings"

	"aurora/pkg/auroratypes"
)

// Completions predicts what resolution would accept at the last token. It
// never runs handlers and never touches cooldown state.
//
// With one token the candidates are the names and aliases of every permitted
// child plus the first argument's completions. With more tokens the first is
// matched against the children (permission-gated) and the walk recurses;
// otherwise the argument at the last token's position is completed.
func (n *Node) Completions(caller auroratypes.Caller, tokens []string) []string {
	if len(tokens) == 0 || !caller.Kind().Satisfies(n.allowedKind) {
		return []string{}
	}

	if len(tokens) == 1 {
		var candidates []string
		for _, child := range n.children {
			if child.Permitted(caller) {
				candidates = append(candidates, child.name)
				candidates = append(candidates, child.aliases...)
			}
		}
		if len(n.arguments) > 0 {
			candidates = append(candidates, n.arguments[0].Type.Completions(caller)...)
		}
		return filterPrefix(candidates, tokens[0])
	}

	if child := n.matchChild(tokens[0]); child != nil {
		if !child.Permitted(caller) {
			return []string{}
		}
		return child.Completions(caller, tokens[1:])
	}

	index := len(tokens) - 1
	if index < len(n.arguments) {
		return filterPrefix(n.arguments[index].Type.Completions(caller), tokens[index])
	}
	return []string{}
}

// filterPrefix keeps candidates starting with prefix, ignoring case, preserving
// order and original spelling, and dropping duplicates.
func filterPrefix(candidates []string, prefix string) []string {
	lowerPrefix := strings.ToLower(prefix)
	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if seen[c] || !strings.HasPrefix(strings.ToLower(c), lowerPrefix) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

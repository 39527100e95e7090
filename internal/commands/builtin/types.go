package builtin

import (
	"aurora/pkg/argtypes"
	"aurora/pkg/auroratypes"
)

// PlayerType resolves a token to the canonical name of an online player.
// Completions list everyone online.
func PlayerType(w *World) auroratypes.ArgumentType {
	return argtypes.Lookup("player",
		func(_ auroratypes.Caller, token string) (string, bool) {
			return w.Find(token)
		},
		func(_ auroratypes.Caller) []string {
			return w.Online()
		},
		"Player '%s' not found",
	)
}

// RegisterTypes adds the world's argument types to r.
func RegisterTypes(r *argtypes.Registry, w *World) error {
	return r.Register("player", PlayerType(w))
}

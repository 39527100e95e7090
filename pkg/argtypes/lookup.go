package argtypes

import (
	"aurora/pkg/auroratypes"
)

// LookupType resolves a token to a live domain object through a directory the
// application supplies, for example an online player by name.
type LookupType[T any] struct {
	name     string
	find     func(caller auroratypes.Caller, token string) (T, bool)
	list     func(caller auroratypes.Caller) []string
	notFound string
}

// Lookup builds an identifier-lookup type. notFound is a format string with a
// single %s for the rejected token, e.g. "Player '%s' not found".
func Lookup[T any](
	name string,
	find func(caller auroratypes.Caller, token string) (T, bool),
	list func(caller auroratypes.Caller) []string,
	notFound string,
) *LookupType[T] {
	if notFound == "" {
		notFound = name + " '%s' not found"
	}
	return &LookupType[T]{name: name, find: find, list: list, notFound: notFound}
}

func (t *LookupType[T]) Name() string { return t.name }

func (t *LookupType[T]) Parse(caller auroratypes.Caller, token string) (any, error) {
	if token == "" {
		return nil, auroratypes.Errorf("%s cannot be empty!", t.name)
	}
	v, ok := t.find(caller, token)
	if !ok {
		return nil, auroratypes.Errorf(t.notFound, token)
	}
	return v, nil
}

func (t *LookupType[T]) Completions(caller auroratypes.Caller) []string {
	if t.list == nil {
		return []string{}
	}
	return t.list(caller)
}

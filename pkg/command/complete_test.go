package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"aurora/internal/testutils"
	"aurora/pkg/argtypes"
	"aurora/pkg/auroratypes"
)

func giveTree() *Node {
	noop := func(auroratypes.Caller, *Context) error { return nil }
	return New("give").
		WithArgument("target", playerType("alex", "Alice", "bob")).
		WithArgument("amount", argtypes.Integer()).
		WithHandler(noop).
		WithChild(
			New("item").WithAliases("i").WithPermission("give.item").
				WithArgument("target", playerType("alex", "bob")).
				WithArgument("kind", argtypes.Enum("item", "diamond", "dirt", "stone")).
				WithHandler(noop),
			New("xp").
				WithArgument("amount", argtypes.Integer()).
				WithHandler(noop),
		)
}

func TestCompletions(t *testing.T) {
	tests := []struct {
		name   string
		perms  []string
		tokens []string
		want   []string
	}{
		{
			name:   "no tokens",
			tokens: nil,
			want:   []string{},
		},
		{
			name:   "empty first token lists permitted children then argument candidates",
			tokens: []string{""},
			want:   []string{"xp", "alex", "Alice", "bob"},
		},
		{
			name:   "with permission children include aliases",
			perms:  []string{"give.item"},
			tokens: []string{""},
			want:   []string{"item", "i", "xp", "alex", "Alice", "bob"},
		},
		{
			name:   "prefix filter ignores case",
			tokens: []string{"A"},
			want:   []string{"alex", "Alice"},
		},
		{
			name:   "recurse into permitted child",
			perms:  []string{"give.item"},
			tokens: []string{"item", "alex", "d"},
			want:   []string{"diamond", "dirt"},
		},
		{
			name:   "child without permission completes nothing",
			tokens: []string{"i", "b"},
			want:   []string{},
		},
		{
			name:   "second argument position",
			tokens: []string{"bob", ""},
			want:   []string{},
		},
		{
			name:   "beyond declared arguments",
			tokens: []string{"bob", "3", ""},
			want:   []string{},
		},
		{
			name:   "child alias in recursion",
			perms:  []string{"give.item"},
			tokens: []string{"I", "b"},
			want:   []string{"bob"},
		},
	}

	root := giveTree()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := testutils.NewMockCaller("c", tt.perms...)
			assert.Equal(t, tt.want, root.Completions(caller, tt.tokens))
		})
	}
}

func TestCompletions_WrongKindIsEmpty(t *testing.T) {
	root := New("home").RestrictTo(auroratypes.KindSession).WithChild(New("set"))
	assert.Empty(t, root.Completions(testutils.NewConsoleCaller(), []string{""}))
	assert.Equal(t, []string{"set"}, root.Completions(testutils.NewMockCaller("p"), []string{"s"}))
}

func TestCompletions_DeduplicatesCandidates(t *testing.T) {
	root := New("mode").
		WithArgument("value", argtypes.Enum("mode", "on", "off")).
		WithChild(New("on"))
	assert.Equal(t, []string{"on", "off"}, root.Completions(testutils.NewMockCaller("p"), []string{"o"}))
}

// Every completion for a single token must be accepted by resolution for that
// token, short of arity and permission failures.
func TestCompletions_AgreeWithResolve(t *testing.T) {
	root := giveTree()
	caller := testutils.NewMockCaller("c", "give.item")

	for _, candidate := range root.Completions(caller, []string{""}) {
		if child := root.matchChild(candidate); child != nil {
			continue
		}
		_, err := root.arguments[0].Type.Parse(caller, candidate)
		assert.NoError(t, err, "candidate %q", candidate)
	}

	for _, candidate := range root.Completions(caller, []string{"item", "alex", ""}) {
		ran, err := root.Resolve(caller, []string{"item", "alex", candidate}, nil)
		assert.NoError(t, err, "candidate %q", candidate)
		assert.True(t, ran)
	}
}

func TestCompletions_DoNotTouchCooldowns(t *testing.T) {
	clock := testutils.NewClock()
	root := New("warp").WithCooldown(time.Minute).
		WithChild(New("list").WithCooldown(time.Minute).WithHandler(func(auroratypes.Caller, *Context) error { return nil }))
	caller := testutils.NewMockCaller("p")

	root.Completions(caller, []string{"list", ""})
	assert.Zero(t, root.cooldownRemaining(caller, clock.Now()))
	assert.Zero(t, root.children[0].cooldowns.size())
}

func TestFilterPrefix(t *testing.T) {
	assert.Equal(t, []string{"Stone", "stick"}, filterPrefix([]string{"Stone", "dirt", "stick", "Stone"}, "st"))
	assert.Equal(t, []string{}, filterPrefix(nil, "x"))
}

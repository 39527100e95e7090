package command

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora/internal/testutils"
	"aurora/pkg/argtypes"
	"aurora/pkg/auroratypes"
)

// playerType resolves names against a fixed roster, ignoring case.
func playerType(online ...string) auroratypes.ArgumentType {
	return argtypes.Lookup("player",
		func(_ auroratypes.Caller, token string) (string, bool) {
			for _, name := range online {
				if strings.EqualFold(name, token) {
					return name, true
				}
			}
			return "", false
		},
		func(_ auroratypes.Caller) []string { return online },
		"Player '%s' not found",
	)
}

// recorder counts handler runs and keeps the last context.
type recorder struct {
	calls int
	ctx   *Context
}

func (r *recorder) handler() Handler {
	return func(_ auroratypes.Caller, ctx *Context) error {
		r.calls++
		r.ctx = ctx
		return nil
	}
}

func TestResolve_ChildTakesPriorityOverArgument(t *testing.T) {
	var listRun, rootRun recorder
	root := New("team").
		WithArgument("name", argtypes.String()).
		WithHandler(rootRun.handler()).
		WithChild(New("list").WithHandler(listRun.handler()))

	caller := testutils.NewMockCaller("alice")

	for _, token := range []string{"list", "LIST", "List"} {
		ran, err := root.Resolve(caller, []string{token}, nil)
		require.NoError(t, err)
		assert.True(t, ran)
	}
	assert.Equal(t, 3, listRun.calls)
	assert.Equal(t, 0, rootRun.calls)

	ran, err := root.Resolve(caller, []string{"blue"}, nil)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, rootRun.calls)
	assert.Equal(t, "blue", rootRun.ctx.String("name"))
}

func TestResolve_Arity(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []string
		wantArity bool
	}{
		{name: "no tokens", tokens: nil, wantArity: true},
		{name: "one of three", tokens: []string{"1"}, wantArity: true},
		{name: "two of three", tokens: []string{"1", "2"}, wantArity: true},
		{name: "exact", tokens: []string{"1", "2", "3"}, wantArity: false},
		{name: "surplus ignored", tokens: []string{"1", "2", "3", "4"}, wantArity: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			node := New("sum").
				WithArgument("a", argtypes.Integer()).
				WithArgument("b", argtypes.Integer()).
				WithArgument("c", argtypes.Integer()).
				WithHandler(rec.handler())

			ran, err := node.Resolve(testutils.NewMockCaller("bob"), tt.tokens, nil)
			if tt.wantArity {
				assert.False(t, ran)
				assert.ErrorIs(t, err, ErrArity)
				assert.Equal(t, 0, rec.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, rec.calls)
			assert.Equal(t, []string{"a", "b", "c"}, rec.ctx.Names())
			assert.Equal(t, 3, rec.ctx.Int("c"))
		})
	}
}

func TestResolve_ScenarioA_Give(t *testing.T) {
	var itemRun recorder
	give := New("give").
		WithArgument("target", playerType("alex")).
		WithArgument("amount", argtypes.Integer()).
		WithChild(New("item").
			WithAliases("i").
			WithPermission("give.item").
			WithArgument("target", playerType("alex")).
			WithArgument("amount", argtypes.Integer()).
			WithHandler(itemRun.handler()))

	t.Run("without permission", func(t *testing.T) {
		caller := testutils.NewMockCaller("u1")
		_, err := give.Resolve(caller, []string{"item", "steve", "5"}, nil)
		var notPermitted *NotPermittedError
		require.ErrorAs(t, err, &notPermitted)
		assert.Equal(t, "give.item", notPermitted.Permission)
		assert.Equal(t, "You don't have permission!", err.Error())
	})

	t.Run("with permission and unknown player", func(t *testing.T) {
		caller := testutils.NewMockCaller("u2", "give.item")
		_, err := give.Resolve(caller, []string{"i", "steve", "5"}, nil)
		var argErr *ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "target", argErr.Argument)
		assert.Equal(t, "Player 'steve' not found", argErr.Message)
		assert.Equal(t, 0, itemRun.calls)
	})

	t.Run("root without handler lists subcommands", func(t *testing.T) {
		caller := testutils.NewMockCaller("u3")
		_, err := give.Resolve(caller, []string{"alex", "5"}, nil)
		var sub *SubcommandRequiredError
		require.ErrorAs(t, err, &sub)
		assert.Equal(t, "Available subcommands: item", err.Error())
	})

	t.Run("root arity usage mentions children", func(t *testing.T) {
		_, err := give.Resolve(testutils.NewMockCaller("u4"), []string{"alex"}, nil)
		var arity *ArityError
		require.ErrorAs(t, err, &arity)
		assert.Equal(t, "[item | <target><amount>]", arity.Usage)
	})
}

func TestResolve_ScenarioC_Usage(t *testing.T) {
	msg := New("msg").
		WithArgument("target", playerType("bob")).
		WithArgument("text", argtypes.String()).
		WithHandler(func(auroratypes.Caller, *Context) error { return nil })

	_, err := msg.Resolve(testutils.NewMockCaller("x"), []string{"bob"}, nil)
	var arity *ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, "<target> <text>", arity.Usage)
	assert.Equal(t, "Usage: /msg <target> <text>", err.Error())
}

func TestResolve_ArgumentFailureStopsBinding(t *testing.T) {
	parsed := 0
	counting := argtypes.Lookup("counter",
		func(_ auroratypes.Caller, token string) (string, bool) {
			parsed++
			return token, true
		}, nil, "")

	var rec recorder
	node := New("pay").
		WithArgument("amount", argtypes.Integer()).
		WithArgument("memo", counting).
		WithHandler(rec.handler())

	_, err := node.Resolve(testutils.NewMockCaller("x"), []string{"ten", "rent"}, nil)
	assert.ErrorIs(t, err, ErrArgumentParse)
	assert.Equal(t, "'ten' is not a whole number!", err.Error())
	assert.Equal(t, 0, parsed)
	assert.Equal(t, 0, rec.calls)
}

func TestResolve_WrongCallerKind(t *testing.T) {
	var rec recorder
	node := New("fly").RestrictTo(auroratypes.KindSession).WithHandler(rec.handler())

	_, err := node.Resolve(testutils.NewConsoleCaller(), nil, nil)
	assert.ErrorIs(t, err, ErrWrongCallerKind)
	assert.Equal(t, "This command is only for session callers!", err.Error())
	assert.Equal(t, 0, rec.calls)

	ran, err := node.Resolve(testutils.NewMockCaller("p"), nil, nil)
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestResolve_InertNode(t *testing.T) {
	_, err := New("nothing").Resolve(testutils.NewMockCaller("p"), nil, nil)
	assert.ErrorIs(t, err, ErrNoExecution)
	assert.Equal(t, "No execution defined for this command.", err.Error())
}

func TestResolve_EmptyRemainderListsChildren(t *testing.T) {
	root := New("admin").WithChild(New("reload"), New("stop"))
	_, err := root.Resolve(testutils.NewMockCaller("p"), nil, nil)
	assert.ErrorIs(t, err, ErrSubcommandRequired)
	assert.Equal(t, "Available subcommands: reload, stop", err.Error())
}

func TestResolve_FirstMatchWins(t *testing.T) {
	var first, second recorder
	root := New("tp").WithChild(
		New("here").WithAliases("h").WithHandler(first.handler()),
		New("home").WithAliases("H").WithHandler(second.handler()),
	)
	_, err := root.Resolve(testutils.NewMockCaller("p"), []string{"h"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestResolve_ChildRejectionDoesNotFallThrough(t *testing.T) {
	var rootRun recorder
	root := New("warp").
		WithArgument("place", argtypes.String()).
		WithHandler(rootRun.handler()).
		WithChild(New("set").WithPermission("warp.set").WithHandler(func(auroratypes.Caller, *Context) error { return nil }))

	_, err := root.Resolve(testutils.NewMockCaller("p"), []string{"set"}, nil)
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Equal(t, 0, rootRun.calls)
}

func TestResolve_HandlerErrorCountsAsExecution(t *testing.T) {
	clock := testutils.NewClock()
	boom := errors.New("the world is read-only")
	root := New("build").WithChild(
		New("wall").WithCooldown(time.Minute).WithHandler(func(auroratypes.Caller, *Context) error { return boom }),
	)
	caller := testutils.NewMockCaller("p")

	ran, err := root.Resolve(caller, []string{"wall"}, clock.Now)
	assert.True(t, ran)
	assert.ErrorIs(t, err, ErrHandler)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "the world is read-only", err.Error())

	_, err = root.Resolve(caller, []string{"wall"}, clock.Now)
	assert.ErrorIs(t, err, ErrOnCooldown)
}

func TestExecute_NotifiesCaller(t *testing.T) {
	node := New("msg").
		WithArgument("target", argtypes.String()).
		WithArgument("text", argtypes.String())
	caller := testutils.NewMockCaller("p")

	err := node.Execute(caller, []string{"bob"})
	assert.ErrorIs(t, err, ErrArity)
	assert.Equal(t, []string{"Usage: /msg <target> <text>"}, caller.Messages())
}

func TestResolve_NestedUsagePath(t *testing.T) {
	root := New("give").WithChild(
		New("item").WithArgument("target", argtypes.String()).WithArgument("amount", argtypes.Integer()),
	)
	_, err := root.Resolve(testutils.NewMockCaller("p"), []string{"item"}, nil)
	assert.Equal(t, "Usage: /give item <target> <amount>", err.Error())
}

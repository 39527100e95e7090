package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora/internal/testutils"
	"aurora/pkg/argtypes"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

const sample = `
requires: ">= 0.1"
commands:
  - name: warp
    aliases: [w]
    description: Travel between warps
    permission: warp.use
    cooldown: 30s
    caller: session
    arguments:
      - {name: place, type: string}
    handler: warp.go
    children:
      - name: set
        handler: warp.set
        arguments:
          - {name: place, type: string}
          - {name: at, type: location}
      - name: level
        handler: warp.level
        arguments:
          - {name: value, type: integer, min: 1, max: 10}
          - {name: mode, type: enum, values: [fast, safe]}
`

func noopHandlers(keys ...string) Handlers {
	h := make(Handlers, len(keys))
	for _, key := range keys {
		h[key] = func(auroratypes.Caller, *command.Context) error { return nil }
	}
	return h
}

func TestBuild(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	roots, err := m.Build(argtypes.NewDefaultRegistry(), noopHandlers("warp.go", "warp.set", "warp.level"))
	require.NoError(t, err)
	require.Len(t, roots, 1)

	warp := roots[0]
	assert.Equal(t, "warp", warp.Name())
	assert.Equal(t, []string{"w"}, warp.Aliases())
	assert.Equal(t, "Travel between warps", warp.Description())
	assert.Equal(t, "warp.use", warp.Permission())
	assert.Equal(t, 30*time.Second, warp.Cooldown())
	assert.Equal(t, auroratypes.KindSession, warp.AllowedKind())
	assert.True(t, warp.HasHandler())
	assert.Equal(t, "[set, level | <place>]", warp.Usage())

	children := warp.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "location", children[0].Arguments()[1].Type.Name())

	caller := testutils.NewMockCaller("p")
	_, err = warp.Resolve(caller, []string{"level", "11", "fast"}, nil)
	assert.EqualError(t, err, "11 must be between 1 and 10!")
	_, err = warp.Resolve(caller, []string{"level", "3", "FAST"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"fast", "safe"}, warp.Completions(caller, []string{"level", "1", ""}))
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name:     "unknown type",
			manifest: "commands:\n  - name: a\n    arguments: [{name: x, type: player}]",
			wantErr:  `/a: argument "x": unknown type "player"`,
		},
		{
			name:     "unknown handler",
			manifest: "commands:\n  - name: a\n    children:\n      - name: b\n        handler: nope",
			wantErr:  `/a b: unknown handler "nope"`,
		},
		{
			name:     "unknown caller kind",
			manifest: "commands:\n  - name: a\n    caller: robot",
			wantErr:  `/a: unknown caller kind "robot"`,
		},
		{
			name:     "empty enum",
			manifest: "commands:\n  - name: a\n    arguments: [{name: x, type: enum}]",
			wantErr:  `/a: argument "x": enum needs at least one value`,
		},
		{
			name:     "inverted range",
			manifest: "commands:\n  - name: a\n    arguments: [{name: x, type: integer, min: 5, max: 1}]",
			wantErr:  `/a: argument "x": min 5 is greater than max 1`,
		},
		{
			name:     "sibling collision",
			manifest: "commands:\n  - name: a\n    children:\n      - name: b\n      - name: c\n        aliases: [B]",
			wantErr:  `invalid command /a: subcommand key "B" used by both b and c`,
		},
		{
			name:     "incompatible engine",
			manifest: "requires: \">= 99.0\"\ncommands: []",
			wantErr:  "does not satisfy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.manifest))
			require.NoError(t, err)
			_, err = m.Build(argtypes.NewDefaultRegistry(), Handlers{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("commands:\n  - name: a\n    colour: red"))
	assert.ErrorContains(t, err, "failed to parse manifest")

	_, err = Parse([]byte("commands:\n  - name: a\n    cooldown: soon"))
	assert.ErrorContains(t, err, `invalid duration "soon"`)

	m, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Commands)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	m, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, m.Commands, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open manifest")
}

func TestEmbedded(t *testing.T) {
	m, err := Embedded("host")
	require.NoError(t, err)
	roots, err := m.Build(argtypes.NewDefaultRegistry(), noopHandlers("help", "cooldowns.prune"))
	require.NoError(t, err)
	assert.Len(t, roots, 2)

	_, err = Embedded("missing")
	assert.Error(t, err)
}

func TestHandlersMerge(t *testing.T) {
	a := noopHandlers("x", "y")
	b := noopHandlers("y", "z")
	merged := a.Merge(b)
	assert.Len(t, merged, 3)
	assert.Len(t, a, 2)
}

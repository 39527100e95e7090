package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora/internal/config"
	"aurora/internal/shell"
	"aurora/pkg/argtypes"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

func TestPrintTree(t *testing.T) {
	give := command.New("give").
		WithDescription("Give things").
		WithChild(
			command.New("item").WithAliases("i").WithPermission("give.item").
				WithArgument("target", argtypes.String()).WithArgument("amount", argtypes.Integer()),
			command.New("kit").WithCooldown(time.Minute).WithArgument("kit", argtypes.Enum("kit", "starter")),
		)
	home := command.New("home").RestrictTo(auroratypes.KindSession).WithCooldown(10 * time.Second)

	var out bytes.Buffer
	printTree(&out, []*command.Node{give, home}, 0)

	want := "give [item, kit]: Give things\n" +
		"  item <target> <amount> (aliases: i; permission: give.item)\n" +
		"  kit <kit> (cooldown: 1m0s)\n" +
		"home (cooldown: 10s; session only)\n"
	assert.Equal(t, want, out.String())
}

func TestPrintHandlers(t *testing.T) {
	h, err := shell.New(&config.Config{
		TestMode: true,
		Session:  config.SessionConfig{Name: "alex"},
		World:    config.WorldConfig{Players: []string{"alex"}},
	})
	require.NoError(t, err)

	var out bytes.Buffer
	printHandlers(&out, h.Handlers())

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "cooldowns.prune  Drop expired cooldown entries", lines[0])
	assert.Contains(t, lines, "msg              Leave a message for a player")
	assert.Contains(t, lines, "help             Show the commands available to you")
}

func TestValidateScriptFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "demo.aurora")
	bad := filepath.Join(dir, "demo.txt")
	require.NoError(t, os.WriteFile(good, []byte("list\n"), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte("list\n"), 0o600))

	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{name: "valid", path: good},
		{name: "wrong extension", path: bad, errMsg: "script file must have .aurora extension, got: .txt"},
		{name: "missing", path: filepath.Join(dir, "nope.aurora"), errMsg: "script file does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScriptFile(tt.path)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

package shell

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runes(words ...string) [][]rune {
	out := make([][]rune, 0, len(words))
	for _, w := range words {
		out = append(out, []rune(w))
	}
	return out
}

func TestCompleter_Do(t *testing.T) {
	h, _ := newHost(t, testConfig())
	caller := NewSessionCaller("alex", []string{"give.item"}, true, io.Discard)
	completer := NewCompleter(h.Dispatcher(), caller)

	tests := []struct {
		name           string
		line           string
		expectedNew    [][]rune
		expectedOffset int
	}{
		{name: "root prefix", line: "gi", expectedNew: runes("ve"), expectedOffset: 2},
		{name: "slash root prefix", line: "/he", expectedNew: runes("lp"), expectedOffset: 2},
		{name: "children and players", line: "give ", expectedNew: runes("item", "i", "alex", "bob"), expectedOffset: 0},
		{name: "argument prefix", line: "give item b", expectedNew: runes("ob"), expectedOffset: 1},
		{name: "case insensitive", line: "GIVE IT", expectedNew: runes("em"), expectedOffset: 2},
		{name: "player after alias", line: "tell a", expectedNew: runes("lex"), expectedOffset: 1},
		{name: "quote is literal", line: `tell "a`, expectedNew: nil, expectedOffset: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := []rune(tt.line)
			newLine, offset := completer.Do(line, len(line))
			assert.Equal(t, tt.expectedNew, newLine)
			assert.Equal(t, tt.expectedOffset, offset)
		})
	}
}

func TestCompleter_NoCandidates(t *testing.T) {
	h, _ := newHost(t, testConfig())
	caller := NewSessionCaller("alex", nil, true, io.Discard)
	completer := NewCompleter(h.Dispatcher(), caller)

	tests := []string{
		"kick ",          // not permitted
		"cooldowns ",     // console only
		"nosuch ",        // unknown root
		"list extra ",    // no arguments
		"give kit bob s", // kit needs give.kit
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			l := []rune(line)
			newLine, _ := completer.Do(l, len(l))
			assert.Empty(t, newLine)
		})
	}
}

func TestCompleter_CursorInsideLine(t *testing.T) {
	h, _ := newHost(t, testConfig())
	completer := NewCompleter(h.Dispatcher(), NewSessionCaller("alex", nil, true, io.Discard))

	line := []rune("li bob")
	newLine, offset := completer.Do(line, 2)
	assert.Equal(t, runes("st"), newLine)
	assert.Equal(t, 2, offset)

	newLine, offset = completer.Do(line, 100)
	assert.Empty(t, newLine)
	assert.Equal(t, 3, offset)
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedName string
		expectedArgs []string
		wantErr      error
		errMsg       string
	}{
		{
			name:         "single word",
			input:        "list",
			expectedName: "list",
			expectedArgs: []string{},
		},
		{
			name:         "slash prefix",
			input:        "/give item steve 5",
			expectedName: "give",
			expectedArgs: []string{"item", "steve", "5"},
		},
		{
			name:         "extra whitespace",
			input:        "  msg \t bob   hi  ",
			expectedName: "msg",
			expectedArgs: []string{"bob", "hi"},
		},
		{
			name:         "apostrophe is literal",
			input:        "msg bob don't",
			expectedName: "msg",
			expectedArgs: []string{"bob", "don't"},
		},
		{
			name:         "quotes do not group",
			input:        `msg bob "a b"`,
			expectedName: "msg",
			expectedArgs: []string{"bob", `"a`, `b"`},
		},
		{
			name:         "lone quote",
			input:        `msg bob "a`,
			expectedName: "msg",
			expectedArgs: []string{"bob", `"a`},
		},
		{name: "blank", input: "   ", wantErr: ErrEmpty},
		{name: "empty", input: "", wantErr: ErrEmpty},
		{name: "comment", input: "# walkthrough", wantErr: ErrEmpty},
		{name: "indented comment", input: "   #give item bob", wantErr: ErrEmpty},
		{name: "bare slash", input: "/ give", errMsg: "missing command name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := Parse(tt.input)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				return
			case tt.errMsg != "":
				assert.EqualError(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, line.Name)
			assert.Equal(t, tt.expectedArgs, line.Args)
		})
	}
}

func TestSplit(t *testing.T) {
	assert.Empty(t, Split(" \t "))
	assert.Equal(t, []string{"give", "it"}, Split("give it"))
	assert.Equal(t, []string{"tell", `'a`}, Split(`tell 'a`))
}

// Package parser splits a typed command line into the root name and the
// tokens handed to the dispatcher.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

// CommentPrefix starts a line that is ignored.
const CommentPrefix = "#"

// ErrEmpty is returned for blank and comment lines.
var ErrEmpty = errors.New("empty command line")

// Line is one parsed command line.
type Line struct {
	Name string
	Args []string
}

// Parse splits input on whitespace. A leading "/" on the command name is
// dropped. Every other character, quotes included, is literal.
func Parse(input string) (*Line, error) {
	tokens := Split(input)
	if len(tokens) == 0 || strings.HasPrefix(tokens[0], CommentPrefix) {
		return nil, ErrEmpty
	}

	name := strings.TrimPrefix(tokens[0], "/")
	if name == "" {
		return nil, fmt.Errorf("missing command name")
	}
	return &Line{Name: name, Args: tokens[1:]}, nil
}

// Split returns the whitespace-delimited tokens of s.
func Split(s string) []string {
	return strings.Fields(s)
}

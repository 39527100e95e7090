package shell

import (
	"strings"

	"aurora/internal/parser"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// Completer provides tab completion for one caller.
// It implements the readline.AutoCompleter interface.
type Completer struct {
	dispatcher *command.Dispatcher
	caller     auroratypes.Caller
}

// NewCompleter creates a completer that asks d on behalf of caller.
func NewCompleter(d *command.Dispatcher, caller auroratypes.Caller) *Completer {
	return &Completer{dispatcher: d, caller: caller}
}

// Do implements the readline.AutoCompleter interface. The first word completes
// against root names and aliases; later words follow the command tree.
func (c *Completer) Do(line []rune, pos int) (newLine [][]rune, offset int) {
	if pos > len(line) {
		pos = len(line)
	}
	text := string(line[:pos])

	tokens := parser.Split(text)

	currentWord := ""
	if len(tokens) > 0 && !strings.HasSuffix(text, " ") && !strings.HasSuffix(text, "\t") {
		currentWord = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	var completions []string
	if len(tokens) == 0 {
		currentWord = strings.TrimPrefix(currentWord, "/")
		completions = c.dispatcher.CompleteRoot(c.caller, currentWord)
	} else {
		root := strings.TrimPrefix(tokens[0], "/")
		args := append(tokens[1:len(tokens):len(tokens)], currentWord)
		completions = c.dispatcher.Complete(c.caller, root, args)
	}

	word := []rune(currentWord)
	var suggestions [][]rune
	for _, completion := range completions {
		candidate := []rune(completion)
		if len(candidate) < len(word) || !strings.EqualFold(string(candidate[:len(word)]), currentWord) {
			continue
		}
		// Return the part that should be added to complete the word
		suggestions = append(suggestions, candidate[len(word):])
	}

	return suggestions, len(word)
}

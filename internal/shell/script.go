package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"aurora/internal/data/embedded"
	"aurora/pkg/auroratypes"
)

// ScriptResult summarizes a batch run.
type ScriptResult struct {
	// Lines is the number of lines read, including blanks and comments.
	Lines int
	// Commands is the number of lines dispatched.
	Commands int
	// Failed counts dispatched lines that returned an error.
	Failed int
}

// RunScript executes every line of r as caller. Failed lines are counted and
// the run continues unless failFast is set, in which case the first failure
// is returned with its line number.
func (h *Host) RunScript(ctx context.Context, caller auroratypes.Caller, name string, r io.Reader, failFast bool) (*ScriptResult, error) {
	h.logger.Debug("Starting script execution", "script", name)

	result := &ScriptResult{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Lines++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result.Commands++

		if err := h.ProcessLine(caller, line); err != nil {
			result.Failed++
			if failFast {
				return result, fmt.Errorf("%s:%d: %w", name, result.Lines, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("failed to read script %s: %w", name, err)
	}

	h.logger.Debug("Script finished", "script", name, "commands", result.Commands, "failed", result.Failed)
	return result, nil
}

// RunScriptFile executes the script at path, or the embedded demo script
// when path is empty.
func (h *Host) RunScriptFile(ctx context.Context, caller auroratypes.Caller, path string, failFast bool) (*ScriptResult, error) {
	if path == "" {
		content, err := embedded.LoadScript("demo")
		if err != nil {
			return nil, err
		}
		return h.RunScript(ctx, caller, embedded.ScriptPath("demo"), strings.NewReader(content), failFast)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = f.Close() }()
	return h.RunScript(ctx, caller, path, f, failFast)
}

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"aurora/internal/config"
	"aurora/internal/version"
)

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// IsExit reports whether line ends the interactive session.
func IsExit(line string) bool {
	word := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	return reservedWords[word]
}

// RunInteractive reads lines from the terminal until exit, EOF, ^C on an
// empty line, or ctx is done. The session player joins the world for
// the duration.
func (h *Host) RunInteractive(ctx context.Context) error {
	rlConfig := &readline.Config{
		Prompt:            promptStyle.Render(h.cfg.Session.Name + "> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	}
	if !h.cfg.TestMode {
		if dir, err := config.UserConfigDir(); err == nil {
			rlConfig.HistoryFile = filepath.Join(dir, "history")
		}
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return fmt.Errorf("failed to start line editor: %w", err)
	}
	defer func() { _ = rl.Close() }()

	caller := NewSessionCaller(h.cfg.Session.Name, h.cfg.Session.Permissions, h.cfg.TestMode, rl.Stdout())
	rl.Config.AutoComplete = NewCompleter(h.dispatcher, caller)

	h.world.Join(caller.Name())
	defer h.world.Leave(caller.Name())

	go func() {
		<-ctx.Done()
		_ = rl.Close()
	}()

	caller.Notify(version.GetFormattedVersion())
	caller.Notify("Type /help for commands, /exit to quit.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if IsExit(line) {
			return nil
		}
		_ = h.ProcessLine(caller, line)
	}
}

package shell

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"aurora/internal/config"
	"aurora/internal/testutils"
	"aurora/pkg/auroratypes"
)

var (
	sessionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	consoleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// printer serializes notifications to one writer.
type printer struct {
	mu    sync.Mutex
	out   io.Writer
	style lipgloss.Style
}

func (p *printer) notify(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, p.style.Render(message))
}

// SessionCaller is the interactive user. It appears in the world under its
// name and keeps one identity for the whole session.
type SessionCaller struct {
	printer
	name        string
	identity    string
	allowAll    bool
	permissions map[string]bool
}

// NewSessionCaller creates a session caller writing to out. The permission
// "*" grants every capability token.
func NewSessionCaller(name string, permissions []string, testMode bool, out io.Writer) *SessionCaller {
	c := &SessionCaller{
		printer:     printer{out: out, style: sessionStyle},
		name:        name,
		identity:    testutils.GenerateIdentity(testMode),
		permissions: make(map[string]bool, len(permissions)),
	}
	for _, p := range permissions {
		if p == config.AllPermissions {
			c.allowAll = true
			continue
		}
		c.permissions[p] = true
	}
	return c
}

// Name returns the player name.
func (c *SessionCaller) Name() string { return c.name }

// HasAuthorization implements auroratypes.Caller.
func (c *SessionCaller) HasAuthorization(token string) bool {
	return c.allowAll || c.permissions[token]
}

// Identity implements auroratypes.Caller.
func (c *SessionCaller) Identity() (string, bool) { return c.identity, true }

// Kind implements auroratypes.Caller.
func (c *SessionCaller) Kind() auroratypes.CallerKind { return auroratypes.KindSession }

// Notify implements auroratypes.Caller.
func (c *SessionCaller) Notify(message string) { c.notify(message) }

// ConsoleCaller runs batch scripts and one-shot lines. It holds every
// permission and has no identity, so cooldowns and the flood guard skip it.
type ConsoleCaller struct {
	printer
}

// NewConsoleCaller creates a console caller writing to out.
func NewConsoleCaller(out io.Writer) *ConsoleCaller {
	return &ConsoleCaller{printer: printer{out: out, style: consoleStyle}}
}

func (c *ConsoleCaller) HasAuthorization(string) bool { return true }

func (c *ConsoleCaller) Identity() (string, bool) { return "", false }

func (c *ConsoleCaller) Kind() auroratypes.CallerKind { return auroratypes.KindConsole }

func (c *ConsoleCaller) Notify(message string) { c.notify(message) }

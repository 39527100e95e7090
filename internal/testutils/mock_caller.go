package testutils

import (
	"sync"

	"aurora/pkg/auroratypes"
)

// MockCaller implements auroratypes.Caller and records every notification.
type MockCaller struct {
	mu          sync.Mutex
	identity    string
	hasIdentity bool
	kind        auroratypes.CallerKind
	permissions map[string]bool
	allowAll    bool
	messages    []string
}

// NewMockCaller creates an interactive caller with the given identity and
// capability tokens.
func NewMockCaller(identity string, permissions ...string) *MockCaller {
	c := &MockCaller{
		identity:    identity,
		hasIdentity: identity != "",
		kind:        auroratypes.KindSession,
		permissions: make(map[string]bool),
	}
	for _, p := range permissions {
		c.permissions[p] = true
	}
	return c
}

// NewConsoleCaller creates a console caller: no identity, every permission.
func NewConsoleCaller() *MockCaller {
	return &MockCaller{
		kind:        auroratypes.KindConsole,
		permissions: make(map[string]bool),
		allowAll:    true,
	}
}

// WithKind overrides the caller kind.
func (c *MockCaller) WithKind(kind auroratypes.CallerKind) *MockCaller {
	c.kind = kind
	return c
}

// Grant adds capability tokens.
func (c *MockCaller) Grant(permissions ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range permissions {
		c.permissions[p] = true
	}
}

func (c *MockCaller) HasAuthorization(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allowAll || c.permissions[token]
}

func (c *MockCaller) Identity() (string, bool) {
	return c.identity, c.hasIdentity
}

func (c *MockCaller) Kind() auroratypes.CallerKind {
	return c.kind
}

func (c *MockCaller) Notify(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

// Messages returns a copy of all notifications received so far.
func (c *MockCaller) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

// LastMessage returns the most recent notification, or "".
func (c *MockCaller) LastMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1]
}

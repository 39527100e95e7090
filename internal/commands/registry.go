// Package commands provides the handler registry for Aurora.
// Manifests refer to handlers by key; the registry maps those keys to the
// command implementations that run once the engine has resolved a node.
package commands

import (
	"fmt"
	"sort"
	"sync"

	"aurora/internal/manifest"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// Command is one handler implementation. Name is the key manifests use in
// their "handler" field.
type Command interface {
	Name() string
	Description() string
	Execute(caller auroratypes.Caller, ctx *command.Context) error
}

// Registry manages handler registration and lookup.
// It provides thread-safe registration and retrieval of commands by key.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates a new registry with an empty command map.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command to the registry. Returns an error if the command
// name is empty or if a command with the same name is already registered.
func (r *Registry) Register(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cmd.Name() == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	if _, exists := r.commands[cmd.Name()]; exists {
		return fmt.Errorf("command %s already registered", cmd.Name())
	}

	r.commands[cmd.Name()] = cmd
	return nil
}

// RegisterAll registers each command in order and stops at the first error.
func (r *Registry) RegisterAll(cmds ...Command) error {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a command by name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetAll returns all registered commands sorted by name.
// The returned slice is a copy and can be safely modified.
func (r *Registry) GetAll() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		commands = append(commands, cmd)
	}
	sort.Slice(commands, func(i, j int) bool { return commands[i].Name() < commands[j].Name() })
	return commands
}

// Handlers returns a manifest binding for every registered command.
func (r *Registry) Handlers() manifest.Handlers {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := make(manifest.Handlers, len(r.commands))
	for name, cmd := range r.commands {
		handlers[name] = cmd.Execute
	}
	return handlers
}

package builtin

import (
	"sort"
	"strings"
	"sync"

	"aurora/pkg/argtypes"
)

// Mail is one message waiting in a player's inbox.
type Mail struct {
	From string
	Text string
}

// player is the mutable record kept by World. It never leaves the package.
type player struct {
	name      string
	position  argtypes.Location
	home      *argtypes.Location
	inventory map[string]int
	mail      []Mail
}

// World is an in-memory game world: who is online, where they stand, their
// homes, inventories and mail. All methods are safe for concurrent use.
// Player names are matched case-insensitively and reported in the spelling
// they joined with.
type World struct {
	mu      sync.RWMutex
	players map[string]*player
}

// NewWorld creates a world with the given players online at the origin.
func NewWorld(online ...string) *World {
	w := &World{players: make(map[string]*player)}
	for _, name := range online {
		w.Join(name)
	}
	return w
}

func key(name string) string { return strings.ToLower(name) }

// Join brings a player online. Joining twice is a no-op.
func (w *World) Join(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.players[key(name)]; ok {
		return
	}
	w.players[key(name)] = &player{name: name, inventory: make(map[string]int)}
}

// Leave takes a player offline and forgets them.
func (w *World) Leave(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.players[key(name)]; !ok {
		return false
	}
	delete(w.players, key(name))
	return true
}

// Find returns the canonical spelling of an online player's name.
func (w *World) Find(name string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[key(name)]
	if !ok {
		return "", false
	}
	return p.name, true
}

// Online returns the names of all online players, sorted.
func (w *World) Online() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.players))
	for _, p := range w.players {
		names = append(names, p.name)
	}
	sort.Strings(names)
	return names
}

// Give adds amount of item to a player's inventory.
func (w *World) Give(name, item string, amount int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[key(name)]
	if !ok {
		return false
	}
	p.inventory[item] += amount
	return true
}

// Inventory returns a copy of a player's inventory.
func (w *World) Inventory(name string) map[string]int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[string]int)
	if p, ok := w.players[key(name)]; ok {
		for item, n := range p.inventory {
			out[item] = n
		}
	}
	return out
}

// SetHome records a player's home location.
func (w *World) SetHome(name string, at argtypes.Location) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[key(name)]
	if !ok {
		return false
	}
	home := at
	p.home = &home
	return true
}

// TeleportHome moves a player to their home and returns it. ok is false when
// the player is offline or has no home.
func (w *World) TeleportHome(name string) (argtypes.Location, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[key(name)]
	if !ok || p.home == nil {
		return argtypes.Location{}, false
	}
	p.position = *p.home
	return p.position, true
}

// Position returns where a player currently stands.
func (w *World) Position(name string) (argtypes.Location, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[key(name)]
	if !ok {
		return argtypes.Location{}, false
	}
	return p.position, true
}

// Send appends a message to a player's inbox.
func (w *World) Send(from, to, text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[key(to)]
	if !ok {
		return false
	}
	p.mail = append(p.mail, Mail{From: from, Text: text})
	return true
}

// Inbox returns a copy of a player's messages, oldest first.
func (w *World) Inbox(name string) []Mail {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[key(name)]
	if !ok {
		return nil
	}
	out := make([]Mail, len(p.mail))
	copy(out, p.mail)
	return out
}

// ClearInbox deletes a player's messages and returns how many there were.
func (w *World) ClearInbox(name string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.players[key(name)]
	if !ok {
		return 0
	}
	n := len(p.mail)
	p.mail = nil
	return n
}

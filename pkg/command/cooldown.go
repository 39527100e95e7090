package command

import (
	"sync"
	"time"

	"aurora/pkg/auroratypes"
)

// cooldownStore maps caller identities to the instant of their last successful
// execution of one node. Implementations must be safe for concurrent use.
type cooldownStore interface {
	last(identity string) (time.Time, bool)
	stamp(identity string, at time.Time)
	prune(expired func(time.Time) bool) int
	size() int
}

// mapCooldowns is the default store. Entries are never evicted on their own.
type mapCooldowns struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newMapCooldowns() *mapCooldowns {
	return &mapCooldowns{entries: make(map[string]time.Time)}
}

func (m *mapCooldowns) last(identity string) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.entries[identity]
	return t, ok
}

func (m *mapCooldowns) stamp(identity string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[identity] = at
}

func (m *mapCooldowns) prune(expired func(time.Time) bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, at := range m.entries {
		if expired(at) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

func (m *mapCooldowns) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// cooldownRemaining returns how long caller must still wait before n may run
// again. Zero means the node is usable now.
func (n *Node) cooldownRemaining(caller auroratypes.Caller, now time.Time) time.Duration {
	if n.cooldown <= 0 {
		return 0
	}
	id, ok := caller.Identity()
	if !ok {
		return 0
	}
	last, ok := n.cooldowns.last(id)
	if !ok {
		return 0
	}
	until := last.Add(n.cooldown)
	if now.Before(until) {
		return until.Sub(now)
	}
	return 0
}

// applyCooldown records a successful execution of n by caller.
func (n *Node) applyCooldown(caller auroratypes.Caller, now time.Time) {
	if n.cooldown <= 0 {
		return
	}
	id, ok := caller.Identity()
	if !ok {
		return
	}
	n.cooldowns.stamp(id, now)
}

// pruneCooldowns drops expired entries from n and its descendants.
func (n *Node) pruneCooldowns(now time.Time) int {
	removed := 0
	if n.cooldown > 0 {
		removed += n.cooldowns.prune(func(at time.Time) bool {
			return !now.Before(at.Add(n.cooldown))
		})
	}
	for _, child := range n.children {
		removed += child.pruneCooldowns(now)
	}
	return removed
}

// useBoundedCooldowns swaps every store in the subtree for an LRU store of the
// given capacity. It must run before the tree is exposed to dispatch.
func (n *Node) useBoundedCooldowns(capacity int) {
	n.cooldowns = newLRUCooldowns(capacity)
	for _, child := range n.children {
		child.useBoundedCooldowns(capacity)
	}
}

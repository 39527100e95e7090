package command

import (
	"sync"
	"time"
)

const defaultCooldownCapacity = 10000

// lruCooldowns bounds the number of remembered callers per node. When full,
// the least recently stamped or consulted caller is forgotten, which only ever
// makes a node usable earlier for that caller.
type lruCooldowns struct {
	maxSize int
	entries map[string]*cooldownNode
	head    *cooldownNode
	tail    *cooldownNode
	mutex   sync.Mutex
}

type cooldownNode struct {
	identity string
	at       time.Time
	prev     *cooldownNode
	next     *cooldownNode
}

func newLRUCooldowns(maxSize int) *lruCooldowns {
	if maxSize <= 0 {
		maxSize = defaultCooldownCapacity
	}

	// Sentinel nodes keep insertion and removal branch-free.
	head := &cooldownNode{}
	tail := &cooldownNode{}
	head.next = tail
	tail.prev = head

	return &lruCooldowns{
		maxSize: maxSize,
		entries: make(map[string]*cooldownNode),
		head:    head,
		tail:    tail,
	}
}

func (c *lruCooldowns) last(identity string) (time.Time, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	node, exists := c.entries[identity]
	if !exists {
		return time.Time{}, false
	}
	c.moveToHead(node)
	return node.at, true
}

func (c *lruCooldowns) stamp(identity string, at time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if node, exists := c.entries[identity]; exists {
		node.at = at
		c.moveToHead(node)
		return
	}

	node := &cooldownNode{identity: identity, at: at}
	c.entries[identity] = node
	c.addToHead(node)

	if len(c.entries) > c.maxSize {
		c.evictLRU()
	}
}

func (c *lruCooldowns) prune(expired func(time.Time) bool) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for id, node := range c.entries {
		if expired(node.at) {
			c.removeNode(node)
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

func (c *lruCooldowns) size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

// moveToHead must be called with mutex locked.
func (c *lruCooldowns) moveToHead(node *cooldownNode) {
	c.removeNode(node)
	c.addToHead(node)
}

// addToHead must be called with mutex locked.
func (c *lruCooldowns) addToHead(node *cooldownNode) {
	node.prev = c.head
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
}

// removeNode must be called with mutex locked.
func (c *lruCooldowns) removeNode(node *cooldownNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}

// evictLRU must be called with mutex locked.
func (c *lruCooldowns) evictLRU() {
	victim := c.tail.prev
	if victim == c.head {
		return
	}
	c.removeNode(victim)
	delete(c.entries, victim.identity)
}

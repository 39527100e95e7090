package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"aurora/internal/logger"
	"aurora/pkg/auroratypes"
)

// Dispatcher owns the root nodes and the name/alias lookup table. It is the
// single entry point a host calls with (caller, rootName, tokens).
// Construct one at startup, register every tree, then Seal it.
type Dispatcher struct {
	mu     sync.RWMutex
	roots  map[string]*Node
	sealed bool

	strict           bool
	cooldownCapacity int
	binder           Binder
	observer         Observer
	limiter          *callerLimiter
	now              Clock
	logger           *log.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		roots:  make(map[string]*Node),
		now:    time.Now,
		logger: logger.NewStyledLogger("Dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register validates node and maps its lowercased name and aliases to it.
// Without strict registration a colliding key is taken over by node and a
// warning is logged; with it, a DuplicateRegistrationError is returned and
// nothing changes. When a Binder is configured and refuses the name, the
// registration is rolled back and ErrBind is returned.
func (d *Dispatcher) Register(node *Node) error {
	if node == nil {
		return &InvalidNodeError{Path: "", Reason: "nil command"}
	}
	if err := node.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sealed {
		return fmt.Errorf("%w: cannot register %s", ErrSealed, node.name)
	}

	keys := registrationKeys(node)
	reregistered := true
	for _, key := range keys {
		existing, taken := d.roots[key]
		if taken && existing == node {
			continue
		}
		reregistered = false
		if !taken {
			continue
		}
		if d.strict {
			return &DuplicateRegistrationError{Key: key, Existing: existing.name, Incoming: node.name}
		}
		d.logger.Warn("Command key shadowed", "key", key, "previous", existing.name, "command", node.name)
	}

	previous := make(map[string]*Node, len(keys))
	for _, key := range keys {
		if existing, taken := d.roots[key]; taken {
			previous[key] = existing
		}
		d.roots[key] = node
	}

	if d.binder != nil && !d.binder.Bind(node.name, node.Aliases()) {
		for _, key := range keys {
			if existing, ok := previous[key]; ok {
				d.roots[key] = existing
			} else {
				delete(d.roots, key)
			}
		}
		d.logger.Error("Host refused command binding", "command", node.name)
		return fmt.Errorf("%w: %s", ErrBind, node.name)
	}

	// Re-registering the same node keeps its stamps.
	if d.cooldownCapacity > 0 && !reregistered {
		node.useBoundedCooldowns(d.cooldownCapacity)
	}

	d.logger.Debug("Registered command", "command", node.name, "aliases", node.aliases)
	return nil
}

// MustRegister is Register for static configuration; it panics on error.
func (d *Dispatcher) MustRegister(nodes ...*Node) {
	for _, node := range nodes {
		if err := d.Register(node); err != nil {
			panic(err)
		}
	}
}

func registrationKeys(node *Node) []string {
	keys := make([]string, 0, 1+len(node.aliases))
	keys = append(keys, strings.ToLower(node.name))
	for _, alias := range node.aliases {
		keys = append(keys, strings.ToLower(alias))
	}
	return keys
}

// Unregister removes every key that resolves to the node registered under name.
func (d *Dispatcher) Unregister(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	node, ok := d.roots[strings.ToLower(name)]
	if !ok {
		return false
	}
	for key, n := range d.roots {
		if n == node {
			delete(d.roots, key)
		}
	}
	return true
}

// Seal forbids further registration. Dispatch does not require it.
func (d *Dispatcher) Seal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sealed = true
}

// Lookup returns the root registered under name or alias, ignoring case.
func (d *Dispatcher) Lookup(name string) (*Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	node, ok := d.roots[strings.ToLower(name)]
	return node, ok
}

// Roots returns each registered root once, sorted by name.
func (d *Dispatcher) Roots() []*Node {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[*Node]bool, len(d.roots))
	out := make([]*Node, 0, len(d.roots))
	for _, node := range d.roots {
		if seen[node] {
			continue
		}
		seen[node] = true
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Dispatch runs one command invocation. handled is false only when rootName is
// not registered; that case is returned as an UnknownCommandError and is not
// sent to the caller. Every other rejection is both notified and returned.
func (d *Dispatcher) Dispatch(caller auroratypes.Caller, rootName string, tokens []string) (bool, error) {
	start := d.now()

	root, ok := d.Lookup(rootName)
	if !ok {
		err := &UnknownCommandError{Name: rootName}
		d.finish("", err, start)
		return false, err
	}

	err := d.run(caller, root, tokens)
	if err != nil {
		caller.Notify(err.Error())
	}
	d.finish(root.name, err, start)
	return true, err
}

func (d *Dispatcher) run(caller auroratypes.Caller, root *Node, tokens []string) error {
	if d.limiter != nil {
		if id, ok := caller.Identity(); ok && !d.limiter.allow(id, d.now()) {
			return &RateLimitedError{Identity: id}
		}
	}

	if err := root.gate(caller, d.now()); err != nil {
		return err
	}

	ran, err := root.resolve(caller, tokens, root.name, d.now)
	if ran {
		root.applyCooldown(caller, d.now())
	}
	return err
}

func (d *Dispatcher) finish(root string, err error, start time.Time) {
	outcome := Classify(err)
	elapsed := d.now().Sub(start)
	logger.CommandDispatch(d.logger, root, string(outcome), elapsed)
	if d.observer != nil {
		d.observer.ObserveDispatch(root, outcome, elapsed)
	}
}

// Complete returns completion candidates for tokens typed after rootName.
func (d *Dispatcher) Complete(caller auroratypes.Caller, rootName string, tokens []string) []string {
	root, ok := d.Lookup(rootName)
	if !ok || !root.Permitted(caller) {
		return []string{}
	}
	return root.Completions(caller, tokens)
}

// CompleteRoot returns the root names and aliases caller may use that start
// with prefix, ignoring case, sorted.
func (d *Dispatcher) CompleteRoot(caller auroratypes.Caller, prefix string) []string {
	var candidates []string
	for _, root := range d.Roots() {
		if !root.Permitted(caller) || !caller.Kind().Satisfies(root.allowedKind) {
			continue
		}
		candidates = append(candidates, root.name)
		candidates = append(candidates, root.aliases...)
	}
	out := filterPrefix(candidates, prefix)
	sort.Strings(out)
	return out
}

// PruneCooldowns drops cooldown entries that have already expired and returns
// how many were removed.
func (d *Dispatcher) PruneCooldowns() int {
	now := d.now()
	removed := 0
	for _, root := range d.Roots() {
		removed += root.pruneCooldowns(now)
	}
	if d.observer != nil {
		d.observer.ObservePrune(removed)
	}
	return removed
}

// RunCooldownSweeper prunes expired cooldown entries every interval until ctx
// is done. Call it in its own goroutine.
func (d *Dispatcher) RunCooldownSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := d.PruneCooldowns(); removed > 0 {
				d.logger.Debug("Pruned expired cooldowns", "removed", removed)
			}
		}
	}
}

package command

import (
	"fmt"
	"strings"
)

// Context holds the arguments bound during one resolution, keyed by the
// declared argument name and kept in declaration order. A Context is built
// fresh for every invocation and is read-only once handed to a handler.
type Context struct {
	names  []string
	values map[string]any
}

func newContext(capacity int) *Context {
	return &Context{
		names:  make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

// set is only called while binding, before the handler sees the context.
func (c *Context) set(name string, value any) {
	if _, exists := c.values[name]; !exists {
		c.names = append(c.names, name)
	}
	c.values[name] = value
}

// Get returns the value bound to name.
func (c *Context) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Has reports whether an argument called name was bound.
func (c *Context) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Names returns the bound argument names in declaration order.
// The returned slice is a copy.
func (c *Context) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of bound arguments.
func (c *Context) Len() int {
	return len(c.names)
}

// String returns the named argument as a string, or "" if absent or of another type.
func (c *Context) String(name string) string {
	v, _ := Value[string](c, name)
	return v
}

// Int returns the named argument as an int, or 0 if absent or of another type.
func (c *Context) Int(name string) int {
	v, _ := Value[int](c, name)
	return v
}

// Float returns the named argument as a float64, or 0 if absent or of another type.
func (c *Context) Float(name string) float64 {
	v, _ := Value[float64](c, name)
	return v
}

// Bool returns the named argument as a bool, or false if absent or of another type.
func (c *Context) Bool(name string) bool {
	v, _ := Value[bool](c, name)
	return v
}

// Value returns the named argument converted to T. The second result is false
// when the argument is missing or holds a value of a different type.
func Value[T any](c *Context, name string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	raw, ok := c.values[name]
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// GoString renders the context for debug logging.
func (c *Context) GoString() string {
	parts := make([]string, 0, len(c.names))
	for _, name := range c.names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, c.values[name]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

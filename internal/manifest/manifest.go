// Package manifest builds command trees from declarative YAML.
//
// A manifest lists root commands with their aliases, description, permission,
// cooldown, caller restriction, arguments and children. Argument types are
// looked up by name in an argtypes.Registry and handlers by key in a Handlers
// map, so the same manifest can be bound to different implementations.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"aurora/internal/data/embedded"
	"aurora/internal/version"
	"aurora/pkg/argtypes"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// Manifest is the top-level document.
type Manifest struct {
	// Requires is an optional semantic version constraint on the engine.
	Requires string        `yaml:"requires"`
	Commands []CommandSpec `yaml:"commands"`
}

// CommandSpec declares one node.
type CommandSpec struct {
	Name        string         `yaml:"name"`
	Aliases     []string       `yaml:"aliases"`
	Description string         `yaml:"description"`
	Permission  string         `yaml:"permission"`
	Cooldown    Duration       `yaml:"cooldown"`
	Caller      string         `yaml:"caller"`
	Handler     string         `yaml:"handler"`
	Arguments   []ArgumentSpec `yaml:"arguments"`
	Children    []CommandSpec  `yaml:"children"`
}

// ArgumentSpec declares one positional argument. Values applies to the enum
// type; Min and Max bound the integer type.
type ArgumentSpec struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	Values []string `yaml:"values"`
	Min    *int     `yaml:"min"`
	Max    *int     `yaml:"max"`
}

// Duration accepts Go duration strings such as "10s" or "1m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", value.Line, raw)
	}
	*d = Duration(parsed)
	return nil
}

// Handlers maps manifest handler keys to implementations.
type Handlers map[string]command.Handler

// Merge returns a new map holding the entries of h and others. Later maps win.
func (h Handlers) Merge(others ...Handlers) Handlers {
	out := make(Handlers, len(h))
	for k, v := range h {
		out[k] = v
	}
	for _, other := range others {
		for k, v := range other {
			out[k] = v
		}
	}
	return out
}

// Parse decodes a manifest. Unknown fields are rejected.
func Parse(data []byte) (*Manifest, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a manifest from r. Unknown fields are rejected.
func Decode(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var m Manifest
	if err := decoder.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// LoadFile parses the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Embedded parses a manifest shipped inside the binary.
func Embedded(name string) (*Manifest, error) {
	data, err := embedded.LoadManifest(name)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Build assembles the root nodes the manifest declares. It fails on the first
// unknown type, unknown handler key, invalid caller kind, or tree that does
// not pass command.Node.Validate.
func (m *Manifest) Build(types *argtypes.Registry, handlers Handlers) ([]*command.Node, error) {
	if err := version.CheckCompatibility(m.Requires); err != nil {
		return nil, err
	}

	roots := make([]*command.Node, 0, len(m.Commands))
	for i := range m.Commands {
		node, err := buildNode(&m.Commands[i], m.Commands[i].Name, types, handlers)
		if err != nil {
			return nil, err
		}
		if err := node.Validate(); err != nil {
			return nil, err
		}
		roots = append(roots, node)
	}
	return roots, nil
}

func buildNode(spec *CommandSpec, path string, types *argtypes.Registry, handlers Handlers) (*command.Node, error) {
	kind, ok := auroratypes.ParseCallerKind(strings.ToLower(spec.Caller))
	if !ok {
		return nil, fmt.Errorf("/%s: unknown caller kind %q", path, spec.Caller)
	}

	node := command.New(spec.Name).
		WithAliases(spec.Aliases...).
		WithDescription(spec.Description).
		WithPermission(spec.Permission).
		WithCooldown(time.Duration(spec.Cooldown)).
		RestrictTo(kind)

	for _, arg := range spec.Arguments {
		t, err := argumentType(arg, types)
		if err != nil {
			return nil, fmt.Errorf("/%s: argument %q: %w", path, arg.Name, err)
		}
		node.WithArgument(arg.Name, t)
	}

	if spec.Handler != "" {
		h, ok := handlers[spec.Handler]
		if !ok || h == nil {
			return nil, fmt.Errorf("/%s: unknown handler %q", path, spec.Handler)
		}
		node.WithHandler(h)
	}

	for i := range spec.Children {
		child := &spec.Children[i]
		built, err := buildNode(child, path+" "+child.Name, types, handlers)
		if err != nil {
			return nil, err
		}
		node.WithChild(built)
	}
	return node, nil
}

func argumentType(arg ArgumentSpec, types *argtypes.Registry) (auroratypes.ArgumentType, error) {
	switch strings.ToLower(arg.Type) {
	case "enum":
		if len(arg.Values) == 0 {
			return nil, fmt.Errorf("enum needs at least one value")
		}
		return argtypes.Enum(arg.Name, arg.Values...), nil
	case "integer":
		if arg.Min != nil || arg.Max != nil {
			lo, hi := math.MinInt, math.MaxInt
			if arg.Min != nil {
				lo = *arg.Min
			}
			if arg.Max != nil {
				hi = *arg.Max
			}
			if lo > hi {
				return nil, fmt.Errorf("min %d is greater than max %d", lo, hi)
			}
			return argtypes.IntegerRange(lo, hi), nil
		}
	}

	t, ok := types.Get(arg.Type)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", arg.Type)
	}
	return t, nil
}

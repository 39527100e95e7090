// Package shell hosts the Aurora command engine: it builds the dispatcher
// from the configured manifests, turns typed lines into dispatches, runs batch
// scripts and drives the interactive readline session.
package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/prometheus/client_golang/prometheus"

	"aurora/internal/commands"
	"aurora/internal/commands/builtin"
	"aurora/internal/config"
	"aurora/internal/logger"
	"aurora/internal/manifest"
	"aurora/internal/metrics"
	"aurora/internal/parser"
	"aurora/pkg/argtypes"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// reservedWords are handled by the interactive loop and cannot be bound.
var reservedWords = map[string]bool{"exit": true, "quit": true}

// maxSuggestions caps the "did you mean" list.
const maxSuggestions = 3

// Host owns one dispatcher and everything its commands act on.
type Host struct {
	cfg        *config.Config
	world      *builtin.World
	handlers   *commands.Registry
	dispatcher *command.Dispatcher
	metrics    *metrics.Metrics
	registry   *prometheus.Registry
	renderer   *glamour.TermRenderer
	logger     *log.Logger
}

// New builds a host from cfg. Extra dispatcher options are applied after the
// ones derived from cfg.
func New(cfg *config.Config, opts ...command.Option) (*Host, error) {
	h := &Host{
		cfg:      cfg,
		world:    builtin.NewWorld(cfg.World.Players...),
		handlers: commands.NewRegistry(),
		registry: prometheus.NewRegistry(),
		logger:   logger.NewStyledLogger("Shell"),
	}
	h.metrics = metrics.New(h.registry)

	types := argtypes.NewDefaultRegistry()
	if err := builtin.RegisterTypes(types, h.world); err != nil {
		return nil, err
	}
	if err := builtin.Register(h.handlers, h.world); err != nil {
		return nil, err
	}
	if err := h.handlers.RegisterAll(&helpCommand{host: h}, &pruneCommand{host: h}); err != nil {
		return nil, fmt.Errorf("failed to register host commands: %w", err)
	}

	renderer, err := newRenderer(cfg.TestMode)
	if err != nil {
		h.logger.Warn("Markdown rendering disabled", "error", err)
	} else {
		h.renderer = renderer
	}

	options := []command.Option{
		command.WithLogger(logger.NewStyledLogger("Dispatcher")),
		command.WithObserver(h.metrics),
		command.WithBinder(h),
		command.WithRateLimit(cfg.Dispatch.Rate, cfg.Dispatch.Burst),
		command.WithCooldownCapacity(cfg.Cooldown.Capacity),
	}
	if cfg.Dispatch.Strict {
		options = append(options, command.WithStrictRegistration())
	}
	h.dispatcher = command.NewDispatcher(append(options, opts...)...)

	roots, err := h.buildRoots(types)
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if err := h.dispatcher.Register(root); err != nil {
			return nil, err
		}
	}
	h.dispatcher.Seal()

	h.logger.Debug("Host ready", "roots", len(roots), "players", len(cfg.World.Players))
	return h, nil
}

func (h *Host) buildRoots(types *argtypes.Registry) ([]*command.Node, error) {
	world, err := h.worldManifest()
	if err != nil {
		return nil, err
	}
	host, err := manifest.Embedded("host")
	if err != nil {
		return nil, err
	}

	var roots []*command.Node
	for _, m := range []*manifest.Manifest{world, host} {
		built, err := m.Build(types, h.handlers.Handlers())
		if err != nil {
			return nil, err
		}
		roots = append(roots, built...)
	}
	return roots, nil
}

func (h *Host) worldManifest() (*manifest.Manifest, error) {
	if h.cfg.Manifest != "" {
		return manifest.LoadFile(h.cfg.Manifest)
	}
	return manifest.Embedded("world")
}

func newRenderer(testMode bool) (*glamour.TermRenderer, error) {
	style := glamour.WithAutoStyle()
	if testMode {
		// Deterministic output for scripted runs
		style = glamour.WithStandardStyle("notty")
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer, nil
}

// Dispatcher returns the host's dispatcher.
func (h *Host) Dispatcher() *command.Dispatcher { return h.dispatcher }

// World returns the world the commands act on.
func (h *Host) World() *builtin.World { return h.world }

// Handlers returns the bound handler implementations sorted by key.
func (h *Host) Handlers() []commands.Command { return h.handlers.GetAll() }

// Metrics returns the dispatch metrics.
func (h *Host) Metrics() *metrics.Metrics { return h.metrics }

// Bind implements command.Binder. It refuses the words the interactive loop
// keeps for itself.
func (h *Host) Bind(name string, aliases []string) bool {
	for _, key := range append([]string{name}, aliases...) {
		if reservedWords[strings.ToLower(key)] {
			h.logger.Warn("Refusing reserved command name", "command", key)
			return false
		}
	}
	return true
}

// ProcessLine parses and dispatches one typed line. Blank lines and comments
// are ignored. Every rejection has already been sent to caller when the error
// is returned.
func (h *Host) ProcessLine(caller auroratypes.Caller, input string) error {
	line, err := parser.Parse(input)
	if errors.Is(err, parser.ErrEmpty) {
		return nil
	}
	if err != nil {
		caller.Notify(err.Error())
		return err
	}

	handled, err := h.dispatcher.Dispatch(caller, line.Name, line.Args)
	if !handled {
		msg := fmt.Sprintf("Unknown command: /%s", line.Name)
		if suggestions := h.Suggest(caller, line.Name); len(suggestions) > 0 {
			msg += fmt.Sprintf(". Did you mean /%s?", strings.Join(suggestions, ", /"))
		}
		caller.Notify(msg)
	}
	if err != nil {
		h.logger.Debug("Command failed", "command", line.Name, "error", err)
	}
	return err
}

// Suggest returns up to three root names or aliases caller may use that look
// like name: subsequence matches first, then near misses by edit distance.
func (h *Host) Suggest(caller auroratypes.Caller, name string) []string {
	candidates := h.dispatcher.CompleteRoot(caller, "")
	lower := strings.ToLower(name)

	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Stable(ranks)

	seen := make(map[string]bool)
	var out []string
	for _, rank := range ranks {
		seen[rank.Target] = true
		out = append(out, rank.Target)
	}

	type near struct {
		target   string
		distance int
	}
	var misses []near
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c)); d <= 2 {
			misses = append(misses, near{target: c, distance: d})
		}
	}
	sort.SliceStable(misses, func(i, j int) bool { return misses[i].distance < misses[j].distance })
	for _, m := range misses {
		out = append(out, m.target)
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

// Start runs the background services cfg enables until ctx is done: the
// cooldown sweeper and the /metrics endpoint.
func (h *Host) Start(ctx context.Context) {
	if h.cfg.Cooldown.Sweep > 0 {
		go h.dispatcher.RunCooldownSweeper(ctx, h.cfg.Cooldown.Sweep)
	}
	if h.cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, h.cfg.Metrics.Addr, h.registry); err != nil {
				h.logger.Error("Metrics endpoint failed", "addr", h.cfg.Metrics.Addr, "error", err)
			}
		}()
	}
}

// render turns markdown into terminal output, falling back to the source.
func (h *Host) render(markdown string) string {
	if h.renderer == nil {
		return markdown
	}
	out, err := h.renderer.Render(markdown)
	if err != nil {
		h.logger.Debug("Failed to render markdown", "error", err)
		return markdown
	}
	return strings.TrimRight(out, "\n")
}

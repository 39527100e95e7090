package shell

import (
	"fmt"
	"strings"

	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// helpCommand lists the root commands the caller may run.
type helpCommand struct {
	host *Host
}

func (c *helpCommand) Name() string { return "help" }

func (c *helpCommand) Description() string { return "Show the commands available to you" }

func (c *helpCommand) Execute(caller auroratypes.Caller, _ *command.Context) error {
	caller.Notify(c.host.render(helpMarkdown(c.host.dispatcher.Roots(), caller)))
	return nil
}

func helpMarkdown(roots []*command.Node, caller auroratypes.Caller) string {
	var sb strings.Builder
	sb.WriteString("# Commands\n\n")

	listed := 0
	for _, root := range roots {
		if !root.Permitted(caller) || !caller.Kind().Satisfies(root.AllowedKind()) {
			continue
		}
		listed++

		usage := "/" + root.Name()
		if u := root.Usage(); u != "" {
			usage += " " + u
		}
		fmt.Fprintf(&sb, "- `%s`", usage)
		if root.Description() != "" {
			fmt.Fprintf(&sb, " %s", root.Description())
		}
		if aliases := root.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(&sb, " (also /%s)", strings.Join(aliases, ", /"))
		}
		sb.WriteString("\n")
	}

	if listed == 0 {
		sb.WriteString("No commands available.\n")
	}
	return sb.String()
}

// pruneCommand drops expired cooldown entries on demand.
type pruneCommand struct {
	host *Host
}

func (c *pruneCommand) Name() string { return "cooldowns.prune" }

func (c *pruneCommand) Description() string { return "Drop expired cooldown entries" }

func (c *pruneCommand) Execute(caller auroratypes.Caller, _ *command.Context) error {
	removed := c.host.dispatcher.PruneCooldowns()
	caller.Notify(fmt.Sprintf("Pruned %d expired cooldown entries.", removed))
	return nil
}

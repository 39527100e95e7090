package builtin

import (
	"fmt"
	"strings"

	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// ListCommand implements /list.
type ListCommand struct {
	world *World
}

func (c *ListCommand) Name() string { return "list" }

func (c *ListCommand) Description() string { return "List online players" }

func (c *ListCommand) Execute(caller auroratypes.Caller, _ *command.Context) error {
	online := c.world.Online()
	if len(online) == 0 {
		caller.Notify("Nobody is online.")
		return nil
	}
	caller.Notify(fmt.Sprintf("Online (%d): %s", len(online), strings.Join(online, ", ")))
	return nil
}

package builtin

import (
	"fmt"

	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// KickCommand implements /kick <target>.
type KickCommand struct {
	world *World
}

func (c *KickCommand) Name() string { return "kick" }

func (c *KickCommand) Description() string { return "Disconnect a player" }

func (c *KickCommand) Execute(caller auroratypes.Caller, ctx *command.Context) error {
	target := ctx.String("target")
	if !c.world.Leave(target) {
		return Replyf("%s already left.", target)
	}
	caller.Notify(fmt.Sprintf("Kicked %s.", target))
	return nil
}

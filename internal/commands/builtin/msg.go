package builtin

import (
	"fmt"

	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// MsgCommand implements /msg <target> <text>. The message waits in the
// target's inbox until read.
type MsgCommand struct {
	world *World
}

func (c *MsgCommand) Name() string { return "msg" }

func (c *MsgCommand) Description() string { return "Leave a message for a player" }

func (c *MsgCommand) Execute(caller auroratypes.Caller, ctx *command.Context) error {
	target := ctx.String("target")
	if !c.world.Send(senderName(caller), target, ctx.String("text")) {
		return Replyf("%s left the world.", target)
	}
	caller.Notify(fmt.Sprintf("Message sent to %s.", target))
	return nil
}

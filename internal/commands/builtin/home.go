package builtin

import (
	"fmt"

	"aurora/pkg/argtypes"
	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// HomeCommand implements /home: teleport the caller to their home.
type HomeCommand struct {
	world *World
}

func (c *HomeCommand) Name() string { return "home" }

func (c *HomeCommand) Description() string { return "Teleport to your home" }

func (c *HomeCommand) Execute(caller auroratypes.Caller, _ *command.Context) error {
	name, err := self(c.world, caller)
	if err != nil {
		return err
	}
	at, ok := c.world.TeleportHome(name)
	if !ok {
		return Reply("You have no home! Set one with /sethome <x,y,z>.")
	}
	caller.Notify(fmt.Sprintf("Welcome home (%s).", formatLocation(at)))
	return nil
}

// SetHomeCommand implements /sethome <at>.
type SetHomeCommand struct {
	world *World
}

func (c *SetHomeCommand) Name() string { return "sethome" }

func (c *SetHomeCommand) Description() string { return "Set your home to a location" }

func (c *SetHomeCommand) Execute(caller auroratypes.Caller, ctx *command.Context) error {
	name, err := self(c.world, caller)
	if err != nil {
		return err
	}
	at, ok := command.Value[argtypes.Location](ctx, "at")
	if !ok {
		return Reply("No location given.")
	}
	c.world.SetHome(name, at)
	caller.Notify(fmt.Sprintf("Home set to %s.", formatLocation(at)))
	return nil
}

func formatLocation(at argtypes.Location) string {
	return fmt.Sprintf("%g,%g,%g", at.X, at.Y, at.Z)
}

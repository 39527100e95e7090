package builtin

import (
	"fmt"

	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// InboxReadCommand implements /inbox: list the caller's messages.
type InboxReadCommand struct {
	world *World
}

func (c *InboxReadCommand) Name() string { return "inbox.read" }

func (c *InboxReadCommand) Description() string { return "Read your messages" }

func (c *InboxReadCommand) Execute(caller auroratypes.Caller, _ *command.Context) error {
	name, err := self(c.world, caller)
	if err != nil {
		return err
	}
	mail := c.world.Inbox(name)
	if len(mail) == 0 {
		caller.Notify("Your inbox is empty.")
		return nil
	}
	caller.Notify(fmt.Sprintf("You have %d message(s):", len(mail)))
	for _, m := range mail {
		caller.Notify(fmt.Sprintf("[%s] %s", m.From, m.Text))
	}
	return nil
}

// InboxClearCommand implements /inbox clear.
type InboxClearCommand struct {
	world *World
}

func (c *InboxClearCommand) Name() string { return "inbox.clear" }

func (c *InboxClearCommand) Description() string { return "Delete all your messages" }

func (c *InboxClearCommand) Execute(caller auroratypes.Caller, _ *command.Context) error {
	name, err := self(c.world, caller)
	if err != nil {
		return err
	}
	caller.Notify(fmt.Sprintf("Deleted %d message(s).", c.world.ClearInbox(name)))
	return nil
}

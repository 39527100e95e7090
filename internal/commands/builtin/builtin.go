// Package builtin implements the demo world commands: giving items and kits,
// homes, messaging, the player list and kicking. Each command is a handler
// bound by key from the embedded world manifest.
package builtin

import (
	"fmt"

	"aurora/internal/commands"
	"aurora/pkg/auroratypes"
)

// Named is implemented by callers that appear in the world as a player.
type Named interface {
	Name() string
}

// Reply is a handler failure worded for the caller. Its text is shown as is.
type Reply string

func (r Reply) Error() string { return string(r) }

// Replyf formats a Reply.
func Replyf(format string, args ...any) error {
	return Reply(fmt.Sprintf(format, args...))
}

// consoleName is the sender shown for callers without a player name.
const consoleName = "Console"

// Register adds every world command to r.
func Register(r *commands.Registry, w *World) error {
	if err := r.RegisterAll(
		&GiveItemCommand{world: w},
		&GiveKitCommand{world: w},
		&HomeCommand{world: w},
		&SetHomeCommand{world: w},
		&MsgCommand{world: w},
		&InboxReadCommand{world: w},
		&InboxClearCommand{world: w},
		&ListCommand{world: w},
		&KickCommand{world: w},
	); err != nil {
		return fmt.Errorf("failed to register world commands: %w", err)
	}
	return nil
}

func senderName(caller auroratypes.Caller) string {
	if named, ok := caller.(Named); ok {
		return named.Name()
	}
	return consoleName
}

// self returns the caller's online player name.
func self(w *World, caller auroratypes.Caller) (string, error) {
	named, ok := caller.(Named)
	if !ok {
		return "", Reply("Only players can do that!")
	}
	name, online := w.Find(named.Name())
	if !online {
		return "", Reply("You are not in the world!")
	}
	return name, nil
}

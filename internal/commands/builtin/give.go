package builtin

import (
	"fmt"
	"sort"
	"strings"

	"aurora/pkg/auroratypes"
	"aurora/pkg/command"
)

// giftItem is what /give item hands out.
const giftItem = "diamond"

// kits lists the contents of each kit the manifest's enum allows.
var kits = map[string]map[string]int{
	"starter":  {"wooden_sword": 1, "bread": 8},
	"builder":  {"stone": 64, "oak_planks": 64, "torch": 16},
	"explorer": {"map": 1, "compass": 1, "torch": 32},
}

// GiveItemCommand implements /give item <target> <amount>.
type GiveItemCommand struct {
	world *World
}

// Name returns the handler key "give.item".
func (c *GiveItemCommand) Name() string { return "give.item" }

// Description returns a brief description of what the command does.
func (c *GiveItemCommand) Description() string {
	return "Give a number of diamonds to an online player"
}

// Execute adds the items and reports back to the caller.
func (c *GiveItemCommand) Execute(caller auroratypes.Caller, ctx *command.Context) error {
	target := ctx.String("target")
	amount := ctx.Int("amount")
	if !c.world.Give(target, giftItem, amount) {
		return Replyf("%s left the world.", target)
	}
	caller.Notify(fmt.Sprintf("Gave %d %s to %s.", amount, giftItem, target))
	return nil
}

// GiveKitCommand implements /give kit <target> <kit>.
type GiveKitCommand struct {
	world *World
}

// Name returns the handler key "give.kit".
func (c *GiveKitCommand) Name() string { return "give.kit" }

// Description returns a brief description of what the command does.
func (c *GiveKitCommand) Description() string {
	return "Give a predefined kit to an online player"
}

// Execute adds every item of the kit.
func (c *GiveKitCommand) Execute(caller auroratypes.Caller, ctx *command.Context) error {
	target := ctx.String("target")
	name := ctx.String("kit")
	contents, ok := kits[name]
	if !ok {
		return Replyf("Unknown kit %s.", name)
	}

	items := make([]string, 0, len(contents))
	for item := range contents {
		items = append(items, item)
	}
	sort.Strings(items)

	parts := make([]string, 0, len(items))
	for _, item := range items {
		if !c.world.Give(target, item, contents[item]) {
			return Replyf("%s left the world.", target)
		}
		parts = append(parts, fmt.Sprintf("%d %s", contents[item], item))
	}
	caller.Notify(fmt.Sprintf("Gave the %s kit to %s: %s.", name, target, strings.Join(parts, ", ")))
	return nil
}

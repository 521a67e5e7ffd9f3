package console

import (
	"strings"

	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/session"
)

// ParseResult holds the parsed command word and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// RawArgs is the text after the command with inner spacing preserved,
	// so item names like "Health Potion" survive.
	RawArgs string
}

// Parse splits a line into a command word and the rest.
//
// Postcondition: If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}
	cmd, rest, _ := strings.Cut(line, " ")
	return ParseResult{
		Command: strings.ToLower(cmd),
		RawArgs: strings.TrimSpace(rest),
	}
}

var menuWords = map[string]session.Command{
	"1": session.CommandExplore, "explore": session.CommandExplore, "e": session.CommandExplore,
	"2": session.CommandInventory, "inventory": session.CommandInventory, "inv": session.CommandInventory, "i": session.CommandInventory,
	"3": session.CommandSave, "save": session.CommandSave,
	"4": session.CommandLoad, "load": session.CommandLoad,
	"5": session.CommandQuit, "quit": session.CommandQuit, "q": session.CommandQuit, "exit": session.CommandQuit,
}

// ParseMenu maps a main menu line to a command. Numbers follow the menu order.
//
// Postcondition: Unrecognized input yields session.CommandUnknown.
func ParseMenu(line string) session.Command {
	return menuWords[Parse(line).Command]
}

var combatWords = map[string]combat.ActionType{
	"1": combat.ActionAttack, "attack": combat.ActionAttack, "a": combat.ActionAttack,
	"2": combat.ActionUseItem, "use": combat.ActionUseItem, "u": combat.ActionUseItem,
	"3": combat.ActionFlee, "flee": combat.ActionFlee, "f": combat.ActionFlee, "run": combat.ActionFlee,
}

// ParseCombat maps a combat menu line to an action. "use <item name>"
// carries the item name; a bare "use" or "2" leaves ItemName empty for the
// caller to ask for.
//
// Postcondition: Unrecognized input yields an ActionUnknown action.
func ParseCombat(line string) combat.Action {
	p := Parse(line)
	switch combatWords[p.Command] {
	case combat.ActionAttack:
		return combat.Attack()
	case combat.ActionUseItem:
		return combat.UseItem(p.RawArgs)
	case combat.ActionFlee:
		return combat.Flee()
	default:
		return combat.Action{}
	}
}

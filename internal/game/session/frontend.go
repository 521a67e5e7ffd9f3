// Package session runs one single-player game: the main menu loop,
// exploration, battles, item use, and save-slot persistence.
package session

import (
	"context"

	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

//go:generate mockgen -destination=mocks/mock_frontend.go -package=sessionmocks -source=frontend.go

// Command is a main menu selection.
type Command int

const (
	CommandUnknown Command = iota
	CommandExplore
	CommandInventory
	CommandSave
	CommandLoad
	CommandQuit
)

// String returns the menu label of the command.
func (c Command) String() string {
	switch c {
	case CommandExplore:
		return "Explore"
	case CommandInventory:
		return "Inventory"
	case CommandSave:
		return "Save"
	case CommandLoad:
		return "Load"
	case CommandQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// MenuCommands lists the main menu entries in display order.
var MenuCommands = []Command{CommandExplore, CommandInventory, CommandSave, CommandLoad, CommandQuit}

// Frontend is the player's side of the game. Each method blocks until the
// player answers; an error (including ctx cancellation) ends the game loop.
type Frontend interface {
	// MainMenu asks for the next main menu command. Unrecognized input is
	// returned as CommandUnknown, not as an error.
	MainMenu(ctx context.Context) (Command, error)
	// CombatAction asks what to do this round. Unrecognized input is
	// returned as an ActionUnknown action, not as an error.
	CombatAction(ctx context.Context, status combat.Status) (combat.Action, error)
	// ChooseItem asks which carried item to use. ok is false when the player declines.
	ChooseItem(ctx context.Context, items []inventory.Item) (name string, ok bool, err error)
	// Display shows one message.
	Display(message string)
}

// EventLogger records human-readable game events. Implementations must not fail the game.
type EventLogger interface {
	Log(message string)
}

// Narrator supplies optional extra narration for a hook such as "on_encounter".
// An empty result adds nothing.
type Narrator interface {
	Narrate(hook, player, monster string) string
}

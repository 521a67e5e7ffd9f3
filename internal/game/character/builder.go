package character

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/entity"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// New returns a level 1 character at full health with an empty inventory.
//
// Precondition: maxHealth >= 1.
func New(name string, maxHealth, attack, defense int) *Character {
	return &Character{
		Vitals:      entity.NewVitals(name, maxHealth, attack, defense),
		BaseAttack:  attack,
		BaseDefense: defense,
		Level:       1,
		Inventory:   inventory.New(),
	}
}

// Build constructs a new character from configured starting stats and hands
// it the starter kit in order.
//
// Precondition: name must be non-empty and single-line.
// Postcondition: Returns a Character that passes Validate, or a non-nil error.
func Build(name string, stats config.PlayerConfig, starter []inventory.Item) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if stats.MaxHealth < 1 {
		return nil, fmt.Errorf("max health must be >= 1, got %d", stats.MaxHealth)
	}
	c := New(name, stats.MaxHealth, stats.Attack, stats.Defense)
	for _, it := range starter {
		c.AddItem(it)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

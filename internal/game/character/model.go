// Package character defines the player character: vitals, leveling, and item use.
package character

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/delve/internal/game/entity"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// Level-up deltas.
const (
	LevelHealthGain  = 20
	LevelAttackGain  = 5
	LevelDefenseGain = 3
)

// Character is the player-controlled entity.
//
// Invariants: 0 <= Health <= MaxHealth; Level >= 1; Experience >= 0;
// Inventory is never nil.
type Character struct {
	entity.Vitals
	BaseAttack  int
	BaseDefense int
	Level       int
	Experience  int
	Inventory   *inventory.Inventory
}

// UseResult describes the effect of a successful UseItem.
type UseResult struct {
	Item inventory.Item
	// Healed is the health actually restored by a potion.
	Healed int
	// Equipped is true when a weapon was equipped.
	Equipped bool
}

// String renders the effect for display.
func (u UseResult) String() string {
	if u.Equipped {
		return fmt.Sprintf("Equipped %s (+%d attack)", u.Item.Name, u.Item.AttackBonus)
	}
	return fmt.Sprintf("Drank %s (heals %d HP)", u.Item.Name, u.Item.HealAmount)
}

// ExperienceToNext returns the experience needed for the next level: Level*100.
func (c *Character) ExperienceToNext() int { return c.Level * 100 }

// GainExperience adds exp and performs at most one level-up.
//
// Precondition: exp >= 0.
// Postcondition: when Experience reached Level*100, Level is incremented,
// MaxHealth grows by LevelHealthGain, Health is restored to MaxHealth, base
// stats grow, effective Attack and Defense reset to the new bases (dropping
// any equipped weapon bonus), and the new level's threshold is consumed from
// Experience, floored at 0. Returns true iff a level-up happened.
func (c *Character) GainExperience(exp int) bool {
	c.Experience += exp
	if c.Experience < c.ExperienceToNext() {
		return false
	}
	c.Level++
	c.Experience -= c.ExperienceToNext()
	if c.Experience < 0 {
		c.Experience = 0
	}
	c.MaxHealth += LevelHealthGain
	c.Health = c.MaxHealth
	c.BaseAttack += LevelAttackGain
	c.Attack = c.BaseAttack
	c.BaseDefense += LevelDefenseGain
	c.Defense = c.BaseDefense
	return true
}

// AddItem appends item to the inventory.
func (c *Character) AddItem(item inventory.Item) {
	c.Inventory.Add(item)
}

// UseItem applies the first carried item named name.
//
// Postcondition: a potion heals and is removed; a weapon sets
// Attack = BaseAttack + bonus and stays carried. Returns an error wrapping
// inventory.ErrItemNotFound when nothing matches; the character is unchanged then.
func (c *Character) UseItem(name string) (UseResult, error) {
	item, ok := c.Inventory.FindByName(name)
	if !ok {
		return UseResult{}, fmt.Errorf("%w: %s", inventory.ErrItemNotFound, name)
	}
	switch item.Kind {
	case inventory.KindPotion:
		healed := c.Heal(item.HealAmount)
		if err := c.Inventory.Remove(name); err != nil {
			return UseResult{}, err
		}
		return UseResult{Item: item, Healed: healed}, nil
	case inventory.KindWeapon:
		c.Attack = c.BaseAttack + item.AttackBonus
		return UseResult{Item: item, Equipped: true}, nil
	default:
		return UseResult{}, fmt.Errorf("item %q has unknown kind %d", item.Name, int(item.Kind))
	}
}

// Validate checks the character invariants.
func (c *Character) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if strings.ContainsAny(c.Name, "\r\n") {
		errs = append(errs, errors.New("name must be single-line"))
	}
	if c.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("max health must be >= 1, got %d", c.MaxHealth))
	}
	if c.Health < 0 || c.Health > c.MaxHealth {
		errs = append(errs, fmt.Errorf("health %d outside [0, %d]", c.Health, c.MaxHealth))
	}
	if c.Level < 1 {
		errs = append(errs, fmt.Errorf("level must be >= 1, got %d", c.Level))
	}
	if c.Experience < 0 {
		errs = append(errs, fmt.Errorf("experience must be >= 0, got %d", c.Experience))
	}
	if c.Inventory == nil {
		errs = append(errs, errors.New("inventory must not be nil"))
	} else {
		for _, it := range c.Inventory.Items() {
			if err := it.Validate(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("character %q: %w", c.Name, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy; the copy shares no inventory storage with c.
func (c *Character) Clone() *Character {
	cp := *c
	cp.Inventory = inventory.New(c.Inventory.Items()...)
	return &cp
}

// ReplaceWith overwrites c in place with other's state.
func (c *Character) ReplaceWith(other *Character) {
	*c = *other.Clone()
}

// Sheet renders the character information block.
func (c *Character) Sheet() string {
	var b strings.Builder
	b.WriteString("=== Character Info ===\n")
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "HP: %d/%d\n", c.Health, c.MaxHealth)
	fmt.Fprintf(&b, "Attack: %d | Defense: %d\n", c.Attack, c.Defense)
	fmt.Fprintf(&b, "Level: %d | EXP: %d/%d", c.Level, c.Experience, c.ExperienceToNext())
	return b.String()
}

// InventoryListing renders the carried items with their indices.
func (c *Character) InventoryListing() string {
	var b strings.Builder
	b.WriteString("=== Inventory ===")
	items := c.Inventory.Items()
	if len(items) == 0 {
		b.WriteString("\n(empty)")
	}
	for i, it := range items {
		fmt.Fprintf(&b, "\n%d: %s", i, it)
	}
	return b.String()
}

// Package inventory defines the item variants and the ordered inventory a
// character carries, plus the loot catalog items are drawn from.
package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the closed set of item variants.
// The zero value (KindUnknown) is intentionally invalid.
type Kind int

const (
	KindUnknown Kind = iota
	KindWeapon
	KindPotion
)

// String returns the tag used in save files: "Weapon" or "Potion".
func (k Kind) String() string {
	switch k {
	case KindWeapon:
		return "Weapon"
	case KindPotion:
		return "Potion"
	default:
		return "Unknown"
	}
}

// ParseKind maps a save-file tag back to a Kind.
//
// Postcondition: ok is true iff tag is exactly "Weapon" or "Potion".
func ParseKind(tag string) (Kind, bool) {
	switch tag {
	case "Weapon":
		return KindWeapon, true
	case "Potion":
		return KindPotion, true
	default:
		return KindUnknown, false
	}
}

// Item is a weapon or a potion. Only the payload field matching Kind is
// meaningful: AttackBonus for weapons, HealAmount for potions.
// Items are plain values; copying one never aliases another.
type Item struct {
	Kind        Kind
	Name        string
	Description string
	AttackBonus int
	HealAmount  int
}

// NewWeapon returns a weapon item.
func NewWeapon(name, description string, attackBonus int) Item {
	return Item{Kind: KindWeapon, Name: name, Description: description, AttackBonus: attackBonus}
}

// NewPotion returns a potion item.
func NewPotion(name, description string, healAmount int) Item {
	return Item{Kind: KindPotion, Name: name, Description: description, HealAmount: healAmount}
}

// Value returns the kind-specific payload: the attack bonus or heal amount.
func (i Item) Value() int {
	switch i.Kind {
	case KindWeapon:
		return i.AttackBonus
	case KindPotion:
		return i.HealAmount
	default:
		return 0
	}
}

// Validate checks that the item can be carried and persisted.
//
// Postcondition: returns nil iff Kind is known, Name is non-empty, neither
// Name nor Description contains a line break, and the payload is >= 0.
func (i Item) Validate() error {
	var errs []error
	if i.Kind != KindWeapon && i.Kind != KindPotion {
		errs = append(errs, fmt.Errorf("unknown kind %d", int(i.Kind)))
	}
	if i.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if strings.ContainsAny(i.Name, "\r\n") || strings.ContainsAny(i.Description, "\r\n") {
		errs = append(errs, errors.New("name and description must be single-line"))
	}
	if i.Value() < 0 {
		errs = append(errs, fmt.Errorf("%s value must be >= 0, got %d", i.Kind, i.Value()))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q: %w", i.Name, errors.Join(errs...))
	}
	return nil
}

// String renders the item the way the inventory listing shows it.
func (i Item) String() string {
	switch i.Kind {
	case KindWeapon:
		return fmt.Sprintf("%s [Weapon +%d attack] %s", i.Name, i.AttackBonus, i.Description)
	case KindPotion:
		return fmt.Sprintf("%s [Potion heals %d HP] %s", i.Name, i.HealAmount, i.Description)
	default:
		return i.Name
	}
}

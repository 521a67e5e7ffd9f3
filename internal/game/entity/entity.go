// Package entity holds the vitals shared by every combatant and the defeat signal.
package entity

import (
	"errors"
	"fmt"
)

// ErrDefeated is returned when damage brings an entity to 0 health.
var ErrDefeated = errors.New("entity defeated")

// Vitals is the health and combat stat block common to players and monsters.
//
// Invariant: 0 <= Health <= MaxHealth.
type Vitals struct {
	Name      string
	MaxHealth int
	Health    int
	Attack    int
	Defense   int
}

// NewVitals returns a block at full health.
//
// Precondition: maxHealth >= 1.
func NewVitals(name string, maxHealth, attack, defense int) Vitals {
	return Vitals{
		Name:      name,
		MaxHealth: maxHealth,
		Health:    maxHealth,
		Attack:    attack,
		Defense:   defense,
	}
}

// Alive reports whether Health > 0.
func (v *Vitals) Alive() bool { return v.Health > 0 }

// TakeDamage reduces Health by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: Health >= 0. Returns an error wrapping ErrDefeated iff Health == 0
// after the hit.
func (v *Vitals) TakeDamage(amount int) error {
	v.Health -= amount
	if v.Health < 0 {
		v.Health = 0
	}
	if v.Health == 0 {
		return fmt.Errorf("%s: %w", v.Name, ErrDefeated)
	}
	return nil
}

// Heal raises Health by amount, clamped to MaxHealth, and returns the amount
// actually restored.
//
// Precondition: amount >= 0.
// Postcondition: Health <= MaxHealth.
func (v *Vitals) Heal(amount int) int {
	before := v.Health
	v.Health += amount
	if v.Health > v.MaxHealth {
		v.Health = v.MaxHealth
	}
	return v.Health - before
}

// Valid reports whether the Health invariant holds.
func (v *Vitals) Valid() bool {
	return v.MaxHealth >= 1 && v.Health >= 0 && v.Health <= v.MaxHealth
}

package npc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/delve/internal/game/entity"
)

// Instance is a live monster for the duration of one encounter.
type Instance struct {
	entity.Vitals
	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source template's ID.
	TemplateID  string
	Kind        Kind
	Description string
	// Template is retained for the victory reward parameters.
	Template *Template
}

// NewInstance creates a fresh, full-health monster from tmpl.
//
// Precondition: tmpl must be non-nil and validated.
// Postcondition: Health equals tmpl.MaxHealth and ID is a new UUID.
func NewInstance(tmpl *Template) *Instance {
	return &Instance{
		Vitals:      entity.NewVitals(tmpl.Name, tmpl.MaxHealth, tmpl.Attack, tmpl.Defense),
		ID:          uuid.NewString(),
		TemplateID:  tmpl.ID,
		Kind:        tmpl.Kind,
		Description: tmpl.Description,
		Template:    tmpl,
	}
}

// Info renders the monster information block.
func (i *Instance) Info() string {
	return fmt.Sprintf("=== Monster Info ===\nName: %s\nHP: %d\nAttack: %d | Defense: %d",
		i.Name, i.Health, i.Attack, i.Defense)
}

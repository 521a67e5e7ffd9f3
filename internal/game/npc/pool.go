package npc

import (
	"errors"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// Pool is the set of templates random encounters are drawn from.
type Pool struct {
	templates []*Template
}

// NewPool builds a pool over templates.
//
// Precondition: templates must be validated.
// Postcondition: Returns an error if templates is empty.
func NewPool(templates []*Template) (*Pool, error) {
	if len(templates) == 0 {
		return nil, errors.New("npc pool: at least one template is required")
	}
	cp := make([]*Template, len(templates))
	copy(cp, templates)
	return &Pool{templates: cp}, nil
}

// DefaultPool returns a pool over DefaultTemplates.
func DefaultPool() *Pool {
	p, _ := NewPool(DefaultTemplates())
	return p
}

// Templates returns the pooled templates in order.
func (p *Pool) Templates() []*Template {
	cp := make([]*Template, len(p.templates))
	copy(cp, p.templates)
	return cp
}

// Spawn picks a template uniformly with one src.Intn(len) draw and returns a
// fresh instance of it.
func (p *Pool) Spawn(src dice.Source) *Instance {
	return NewInstance(p.templates[src.Intn(len(p.templates))])
}

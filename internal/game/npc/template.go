// Package npc provides monster templates, per-encounter instances, and the
// spawn pool encounters draw from.
package npc

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

//go:embed content/monsters/*.yaml
var defaultContent embed.FS

// Template defaults applied when the YAML omits them.
const (
	DefaultExperience = "1d20+29"
	DefaultLootOneIn  = 2
)

// Kind is the closed set of monster attack behaviors.
// The zero value (KindUnknown) is intentionally invalid.
type Kind int

const (
	KindUnknown Kind = iota
	KindGoblin
	KindDragon
	KindSkeleton
)

// String returns the display label of the kind.
func (k Kind) String() string {
	switch k {
	case KindGoblin:
		return "Goblin"
	case KindDragon:
		return "Dragon"
	case KindSkeleton:
		return "Skeleton"
	default:
		return "Unknown"
	}
}

// ParseKind maps a YAML kind string ("goblin", "dragon", "skeleton") to a Kind.
// Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "goblin":
		return KindGoblin, nil
	case "dragon":
		return KindDragon, nil
	case "skeleton":
		return KindSkeleton, nil
	default:
		return KindUnknown, fmt.Errorf("unknown monster kind %q", s)
	}
}

// Template defines a monster archetype loaded from YAML.
type Template struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	KindName    string `yaml:"kind"`
	Description string `yaml:"description"`
	MaxHealth   int    `yaml:"max_health"`
	Attack      int    `yaml:"attack"`
	Defense     int    `yaml:"defense"`
	// Experience is the dice expression rolled for the victory reward.
	Experience string `yaml:"experience"`
	// LootOneIn is n in the 1-in-n chance of a loot roll on victory.
	LootOneIn int `yaml:"loot_one_in"`

	Kind           Kind            `yaml:"-"`
	ExperienceRoll dice.Expression `yaml:"-"`
}

// Validate checks the template invariants, resolves Kind, and parses the
// experience expression. Empty Experience and zero LootOneIn take defaults.
//
// Postcondition: Returns nil iff ID and Name are non-empty, the kind is known,
// MaxHealth >= 1, Attack and Defense >= 0, LootOneIn >= 1 and the experience
// expression parses with a non-negative minimum.
func (t *Template) Validate() error {
	if t.ID == "" {
		return errors.New("npc template: id must not be empty")
	}
	var errs []error
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	kind, err := ParseKind(t.KindName)
	if err != nil {
		errs = append(errs, err)
	}
	t.Kind = kind
	if t.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("max_health must be >= 1, got %d", t.MaxHealth))
	}
	if t.Attack < 0 || t.Defense < 0 {
		errs = append(errs, fmt.Errorf("attack and defense must be >= 0, got %d/%d", t.Attack, t.Defense))
	}
	if t.Experience == "" {
		t.Experience = DefaultExperience
	}
	expr, err := dice.Parse(t.Experience)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("experience: %w", err))
	case expr.Min() < 0:
		errs = append(errs, fmt.Errorf("experience %q can roll below zero", t.Experience))
	default:
		t.ExperienceRoll = expr
	}
	if t.LootOneIn == 0 {
		t.LootOneIn = DefaultLootOneIn
	}
	if t.LootOneIn < 1 {
		errs = append(errs, fmt.Errorf("loot_one_in must be >= 1, got %d", t.LootOneIn))
	}
	if len(errs) > 0 {
		return fmt.Errorf("npc template %q: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// LoadTemplateFromBytes parses a single monster template from raw YAML bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplatesFS reads every *.yaml file in dir of fsys, in lexical order.
//
// Postcondition: Returns all templates or an error on the first read, parse,
// or validate failure; duplicate IDs are an error.
func LoadTemplatesFS(fsys fs.FS, dir string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading npc dir %q: %w", dir, err)
	}

	seen := make(map[string]bool)
	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", p, err)
		}
		if seen[tmpl.ID] {
			return nil, fmt.Errorf("loading %q: duplicate template id %q", p, tmpl.ID)
		}
		seen[tmpl.ID] = true
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// LoadTemplates reads all *.yaml files in the directory dir on disk.
func LoadTemplates(dir string) ([]*Template, error) {
	return LoadTemplatesFS(os.DirFS(dir), ".")
}

// DefaultTemplates returns the built-in Goblin, Dragon, and Skeleton templates.
// Panics if the embedded content is invalid, which tests guard against.
func DefaultTemplates() []*Template {
	templates, err := LoadTemplatesFS(defaultContent, "content/monsters")
	if err != nil {
		panic("npc: embedded monster content is invalid: " + err.Error())
	}
	return templates
}

package inventory

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

//go:embed content/loot.yaml
var defaultCatalogYAML []byte

// CatalogEntry is one named item the catalog can produce.
type CatalogEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Heal is the potion heal amount; unused for weapons.
	Heal int `yaml:"heal"`
}

// StarterEntry is an item every new character begins with.
type StarterEntry struct {
	Kind        string `yaml:"kind"` // "weapon" or "potion"
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Value       int    `yaml:"value"`
}

// Item converts the entry to an Item.
func (s StarterEntry) Item() (Item, error) {
	var it Item
	switch s.Kind {
	case "weapon":
		it = NewWeapon(s.Name, s.Description, s.Value)
	case "potion":
		it = NewPotion(s.Name, s.Description, s.Value)
	default:
		return Item{}, fmt.Errorf("starter item %q: kind must be weapon or potion, got %q", s.Name, s.Kind)
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Catalog is the loot table for exploration finds and monster drops.
type Catalog struct {
	Weapons struct {
		// Bonus is a dice expression for the attack bonus of found weapons.
		Bonus string         `yaml:"bonus"`
		Items []CatalogEntry `yaml:"items"`
	} `yaml:"weapons"`
	Potions struct {
		Items []CatalogEntry `yaml:"items"`
	} `yaml:"potions"`
	Starter []StarterEntry `yaml:"starter"`

	bonus dice.Expression
}

// Validate checks the catalog invariants and caches the parsed bonus expression.
//
// Postcondition: returns nil iff both categories are non-empty, every entry is
// a valid item, and the bonus expression parses with a minimum >= 0.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.Weapons.Items) == 0 {
		errs = append(errs, errors.New("weapons.items must not be empty"))
	}
	if len(c.Potions.Items) == 0 {
		errs = append(errs, errors.New("potions.items must not be empty"))
	}
	expr, err := dice.Parse(c.Weapons.Bonus)
	if err != nil {
		errs = append(errs, fmt.Errorf("weapons.bonus: %w", err))
	} else if expr.Min() < 0 {
		errs = append(errs, fmt.Errorf("weapons.bonus %q can roll below zero", c.Weapons.Bonus))
	} else {
		c.bonus = expr
	}
	for _, e := range c.Weapons.Items {
		if err := NewWeapon(e.Name, e.Description, 0).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, e := range c.Potions.Items {
		if err := NewPotion(e.Name, e.Description, e.Heal).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range c.Starter {
		if _, err := s.Item(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("loot catalog: %w", errors.Join(errs...))
	}
	return nil
}

// Roll draws one item. The draw order is fixed: category (Intn(2), 0 is a
// weapon), entry index (Intn(len)), then the weapon bonus dice.
//
// Precondition: c has passed Validate; src must be non-nil.
func (c *Catalog) Roll(src dice.Source) Item {
	if src.Intn(2) == 0 {
		e := c.Weapons.Items[src.Intn(len(c.Weapons.Items))]
		bonus := dice.Roll(c.bonus, src).Total()
		return NewWeapon(e.Name, e.Description, bonus)
	}
	e := c.Potions.Items[src.Intn(len(c.Potions.Items))]
	return NewPotion(e.Name, e.Description, e.Heal)
}

// StarterItems returns the starting kit in declaration order.
//
// Precondition: c has passed Validate.
func (c *Catalog) StarterItems() []Item {
	out := make([]Item, 0, len(c.Starter))
	for _, s := range c.Starter {
		it, _ := s.Item()
		out = append(out, it)
	}
	return out
}

// LoadCatalogFromBytes parses and validates a catalog from YAML.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing loot catalog YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog reads a catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading loot catalog %q: %w", path, err)
	}
	c, err := LoadCatalogFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return c, nil
}

// DefaultCatalog returns the built-in catalog.
// Panics if the embedded YAML is invalid, which tests guard against.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalogFromBytes(defaultCatalogYAML)
	if err != nil {
		panic("inventory: embedded loot catalog is invalid: " + err.Error())
	}
	return c
}

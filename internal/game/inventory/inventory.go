package inventory

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when no carried item has the requested name.
var ErrItemNotFound = errors.New("item not found")

// ErrInvalidIndex is returned when a positional removal is out of range.
var ErrInvalidIndex = errors.New("invalid inventory index")

// Inventory is an ordered, unbounded sequence of items.
// Names need not be unique; name lookups resolve to the first match.
type Inventory struct {
	items []Item
}

// New returns an inventory holding items in order.
func New(items ...Item) *Inventory {
	inv := &Inventory{}
	for _, it := range items {
		inv.Add(it)
	}
	return inv
}

// Add appends item.
//
// Postcondition: Len() grows by one and the last element equals item.
func (inv *Inventory) Add(item Item) {
	inv.items = append(inv.items, item)
}

// IndexOf returns the position of the first item named name, or -1.
func (inv *Inventory) IndexOf(name string) int {
	for i, it := range inv.items {
		if it.Name == name {
			return i
		}
	}
	return -1
}

// FindByName returns a copy of the first item named name.
//
// Postcondition: ok is false iff no item matches.
func (inv *Inventory) FindByName(name string) (Item, bool) {
	i := inv.IndexOf(name)
	if i < 0 {
		return Item{}, false
	}
	return inv.items[i], true
}

// Remove deletes the first item named name.
//
// Postcondition: on success, Len() shrinks by one and the order of the
// remaining items is preserved; otherwise returns an error wrapping ErrItemNotFound.
func (inv *Inventory) Remove(name string) error {
	i := inv.IndexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}
	_, err := inv.RemoveAt(i)
	return err
}

// RemoveAt deletes and returns the item at index.
//
// Postcondition: returns an error wrapping ErrInvalidIndex when index is
// outside [0, Len()); the inventory is unchanged in that case.
func (inv *Inventory) RemoveAt(index int) (Item, error) {
	if index < 0 || index >= len(inv.items) {
		return Item{}, fmt.Errorf("%w: %d (size %d)", ErrInvalidIndex, index, len(inv.items))
	}
	it := inv.items[index]
	inv.items = append(inv.items[:index], inv.items[index+1:]...)
	return it, nil
}

// Items returns a copy of the carried items in order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int { return len(inv.items) }

// IsEmpty reports whether nothing is carried.
func (inv *Inventory) IsEmpty() bool { return len(inv.items) == 0 }

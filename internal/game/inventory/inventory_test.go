package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/inventory"
)

func sword() inventory.Item  { return inventory.NewWeapon("Rusty Sword", "Basic sword", 3) }
func potion() inventory.Item { return inventory.NewPotion("Health Potion", "Restores 20 HP", 20) }

func TestInventory_AddPreservesOrder(t *testing.T) {
	inv := inventory.New()
	assert.True(t, inv.IsEmpty())
	inv.Add(sword())
	inv.Add(potion())
	inv.Add(sword())

	items := inv.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "Rusty Sword", items[0].Name)
	assert.Equal(t, "Health Potion", items[1].Name)
	assert.Equal(t, "Rusty Sword", items[2].Name)
	assert.False(t, inv.IsEmpty())
}

func TestInventory_FindByNameReturnsFirstMatch(t *testing.T) {
	inv := inventory.New(
		inventory.NewPotion("Health Potion", "first", 20),
		inventory.NewPotion("Health Potion", "second", 25),
	)
	it, ok := inv.FindByName("Health Potion")
	require.True(t, ok)
	assert.Equal(t, "first", it.Description)

	_, ok = inv.FindByName("Elixir")
	assert.False(t, ok)
}

func TestInventory_FindByNameReturnsCopy(t *testing.T) {
	inv := inventory.New(sword())
	it, _ := inv.FindByName("Rusty Sword")
	it.AttackBonus = 99
	again, _ := inv.FindByName("Rusty Sword")
	assert.Equal(t, 3, again.AttackBonus)

	items := inv.Items()
	items[0].Name = "Changed"
	assert.Equal(t, 0, inv.IndexOf("Rusty Sword"))
}

func TestInventory_RemoveFirstMatchOnly(t *testing.T) {
	inv := inventory.New(potion(), sword(), potion())
	require.NoError(t, inv.Remove("Health Potion"))
	items := inv.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Rusty Sword", items[0].Name)
	assert.Equal(t, "Health Potion", items[1].Name)
}

func TestInventory_RemoveMissing(t *testing.T) {
	inv := inventory.New(sword())
	err := inv.Remove("Elixir")
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
	assert.Equal(t, 1, inv.Len())
}

func TestInventory_RemoveAt(t *testing.T) {
	inv := inventory.New(sword(), potion())
	it, err := inv.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, "Health Potion", it.Name)
	assert.Equal(t, 1, inv.Len())

	for _, idx := range []int{-1, 1, 5} {
		_, err := inv.RemoveAt(idx)
		assert.ErrorIs(t, err, inventory.ErrInvalidIndex, "index %d", idx)
	}
	assert.Equal(t, 1, inv.Len())
}

func TestInventory_RemovePreservesRelativeOrder_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		names := rapid.SliceOfN(rapid.SampledFrom([]string{"A", "B", "C"}), 1, 20).Draw(rt, "names")
		inv := inventory.New()
		for _, n := range names {
			inv.Add(inventory.NewPotion(n, "", 1))
		}
		target := rapid.SampledFrom(names).Draw(rt, "target")

		var want []string
		removed := false
		for _, n := range names {
			if n == target && !removed {
				removed = true
				continue
			}
			want = append(want, n)
		}

		require.NoError(rt, inv.Remove(target))
		var got []string
		for _, it := range inv.Items() {
			got = append(got, it.Name)
		}
		assert.Equal(rt, want, got)
	})
}

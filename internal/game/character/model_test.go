package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

func TestNew_Defaults(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	assert.Equal(t, 100, c.Health)
	assert.Equal(t, 100, c.MaxHealth)
	assert.Equal(t, 10, c.Attack)
	assert.Equal(t, 10, c.BaseAttack)
	assert.Equal(t, 5, c.Defense)
	assert.Equal(t, 5, c.BaseDefense)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 0, c.Experience)
	assert.True(t, c.Inventory.IsEmpty())
	assert.NoError(t, c.Validate())
}

func TestBuild_StarterKit(t *testing.T) {
	starter := inventory.DefaultCatalog().StarterItems()
	c, err := character.Build("  Ayla ", config.PlayerConfig{MaxHealth: 100, Attack: 10, Defense: 5}, starter)
	require.NoError(t, err)
	assert.Equal(t, "Ayla", c.Name)
	require.Equal(t, 2, c.Inventory.Len())
	assert.Equal(t, "Rusty Sword", c.Inventory.Items()[0].Name)
}

func TestBuild_Rejects(t *testing.T) {
	_, err := character.Build("   ", config.PlayerConfig{MaxHealth: 100}, nil)
	assert.Error(t, err)
	_, err = character.Build("A\nB", config.PlayerConfig{MaxHealth: 100}, nil)
	assert.Error(t, err)
	_, err = character.Build("A", config.PlayerConfig{MaxHealth: 0}, nil)
	assert.Error(t, err)
}

func TestGainExperience_BelowThreshold(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	assert.False(t, c.GainExperience(99))
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 99, c.Experience)
}

func TestGainExperience_ExactThresholdLevelsOnce(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	c.Health = 40
	require.True(t, c.GainExperience(100))

	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 120, c.MaxHealth)
	assert.Equal(t, 120, c.Health)
	assert.Equal(t, 15, c.BaseAttack)
	assert.Equal(t, 15, c.Attack)
	assert.Equal(t, 8, c.BaseDefense)
	assert.Equal(t, 8, c.Defense)
	assert.Equal(t, 0, c.Experience)
}

func TestGainExperience_NoFastForward(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	require.True(t, c.GainExperience(1000))
	assert.Equal(t, 2, c.Level, "only one level per call")
	// 1000 - 200 consumed by the new level's threshold
	assert.Equal(t, 800, c.Experience)

	require.True(t, c.GainExperience(0), "the next call performs the next pending level-up")
	assert.Equal(t, 3, c.Level)
	assert.Equal(t, 500, c.Experience)
}

func TestGainExperience_Invariants_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := character.New("x", 100, 10, 5)
		gains := rapid.SliceOfN(rapid.IntRange(0, 500), 1, 40).Draw(rt, "gains")
		for _, g := range gains {
			before := c.Level
			leveled := c.GainExperience(g)
			if leveled {
				assert.Equal(rt, before+1, c.Level)
				assert.Equal(rt, c.MaxHealth, c.Health)
			} else {
				assert.Equal(rt, before, c.Level)
			}
			assert.GreaterOrEqual(rt, c.Experience, 0)
			require.NoError(rt, c.Validate())
		}
	})
}

func TestUseItem_PotionHealsAndIsConsumed(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	c.Health = 50
	c.AddItem(inventory.NewPotion("Health Potion", "Restores 20 HP", 20))

	res, err := c.UseItem("Health Potion")
	require.NoError(t, err)
	assert.Equal(t, 70, c.Health)
	assert.Equal(t, 20, res.Healed)
	assert.False(t, res.Equipped)
	assert.Equal(t, "Drank Health Potion (heals 20 HP)", res.String())
	assert.True(t, c.Inventory.IsEmpty())

	_, err = c.UseItem("Health Potion")
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
	assert.Equal(t, 70, c.Health)
}

func TestUseItem_PotionOverhealClamps(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	c.Health = 90
	c.AddItem(inventory.NewPotion("Elixir", "Fully restores HP", 75))
	res, err := c.UseItem("Elixir")
	require.NoError(t, err)
	assert.Equal(t, 100, c.Health)
	assert.Equal(t, 10, res.Healed)
}

func TestUseItem_WeaponEquipsWithoutStacking(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	c.AddItem(inventory.NewWeapon("Iron Sword", "Sharp iron blade", 5))
	c.AddItem(inventory.NewWeapon("Steel Axe", "Heavy steel axe", 9))

	res, err := c.UseItem("Iron Sword")
	require.NoError(t, err)
	assert.True(t, res.Equipped)
	assert.Equal(t, 15, c.Attack)
	assert.Equal(t, 2, c.Inventory.Len(), "weapons stay carried")

	_, err = c.UseItem("Steel Axe")
	require.NoError(t, err)
	assert.Equal(t, 19, c.Attack, "bonus overwrites, never stacks")

	_, err = c.UseItem("Iron Sword")
	require.NoError(t, err)
	assert.Equal(t, 15, c.Attack, "re-equippable")
}

func TestUseItem_WeaponBonusLostOnLevelUp(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	c.AddItem(inventory.NewWeapon("Iron Sword", "Sharp iron blade", 5))
	_, err := c.UseItem("Iron Sword")
	require.NoError(t, err)
	require.Equal(t, 15, c.Attack)

	require.True(t, c.GainExperience(100))
	assert.Equal(t, 15, c.BaseAttack)
	assert.Equal(t, 15, c.Attack, "attack resets to the new base; the weapon bonus is dropped")
}

func TestClone_IsIndependent(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	c.AddItem(inventory.NewPotion("Health Potion", "", 20))
	cp := c.Clone()
	require.NoError(t, cp.Inventory.Remove("Health Potion"))
	cp.Health = 1
	assert.Equal(t, 1, c.Inventory.Len())
	assert.Equal(t, 100, c.Health)

	c.ReplaceWith(cp)
	assert.Equal(t, 1, c.Health)
	assert.True(t, c.Inventory.IsEmpty())
}

func TestValidate_Violations(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	c.Health = 101
	assert.Error(t, c.Validate())

	c = character.New("Ayla", 100, 10, 5)
	c.Level = 0
	assert.Error(t, c.Validate())

	c = character.New("Ayla", 100, 10, 5)
	c.Experience = -1
	assert.Error(t, c.Validate())

	c = character.New("Ayla", 100, 10, 5)
	c.Inventory = nil
	assert.Error(t, c.Validate())
}

func TestSheetAndListing(t *testing.T) {
	c := character.New("Ayla", 100, 10, 5)
	c.Experience = 30
	assert.Equal(t, "=== Character Info ===\nName: Ayla\nHP: 100/100\nAttack: 10 | Defense: 5\nLevel: 1 | EXP: 30/100", c.Sheet())

	assert.Equal(t, "=== Inventory ===\n(empty)", c.InventoryListing())
	c.AddItem(inventory.NewWeapon("Rusty Sword", "Basic sword", 3))
	assert.Equal(t, "=== Inventory ===\n0: Rusty Sword [Weapon +3 attack] Basic sword", c.InventoryListing())
}

package npc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/npc"
)

type fixedSource struct {
	vals []int
	idx  int
}

func (f *fixedSource) Intn(n int) int {
	if f.idx >= len(f.vals) {
		return 0
	}
	v := f.vals[f.idx] % n
	f.idx++
	return v
}

func templateByID(t *testing.T, templates []*npc.Template, id string) *npc.Template {
	t.Helper()
	for _, tmpl := range templates {
		if tmpl.ID == id {
			return tmpl
		}
	}
	t.Fatalf("template %q not found", id)
	return nil
}

func TestDefaultTemplates_Stats(t *testing.T) {
	templates := npc.DefaultTemplates()
	require.Len(t, templates, 3)

	cases := []struct {
		id                      string
		kind                    npc.Kind
		health, attack, defense int
	}{
		{"goblin", npc.KindGoblin, 30, 8, 2},
		{"dragon", npc.KindDragon, 100, 20, 10},
		{"skeleton", npc.KindSkeleton, 40, 10, 5},
	}
	for _, tc := range cases {
		tmpl := templateByID(t, templates, tc.id)
		assert.Equal(t, tc.kind, tmpl.Kind, tc.id)
		assert.Equal(t, tc.health, tmpl.MaxHealth, tc.id)
		assert.Equal(t, tc.attack, tmpl.Attack, tc.id)
		assert.Equal(t, tc.defense, tmpl.Defense, tc.id)
		assert.Equal(t, npc.DefaultExperience, tmpl.Experience, tc.id)
		assert.Equal(t, npc.DefaultLootOneIn, tmpl.LootOneIn, tc.id)
	}
}

func TestParseKind(t *testing.T) {
	k, err := npc.ParseKind(" Dragon ")
	require.NoError(t, err)
	assert.Equal(t, npc.KindDragon, k)
	assert.Equal(t, "Dragon", k.String())

	_, err = npc.ParseKind("orc")
	assert.Error(t, err)
	assert.Equal(t, "Unknown", npc.KindUnknown.String())
}

func TestLoadTemplateFromBytes_CustomMonster(t *testing.T) {
	tmpl, err := npc.LoadTemplateFromBytes([]byte(`
id: orc
name: Orc
kind: skeleton
max_health: 55
attack: 12
defense: 4
experience: 2d10+20
loot_one_in: 1
`))
	require.NoError(t, err)
	assert.Equal(t, npc.KindSkeleton, tmpl.Kind)
	assert.Equal(t, 22, tmpl.ExperienceRoll.Min())
	assert.Equal(t, 2, tmpl.ExperienceRoll.Count)
	assert.Equal(t, 10, tmpl.ExperienceRoll.Sides)
	assert.Equal(t, 1, tmpl.LootOneIn)
}

func TestLoadTemplateFromBytes_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":    "id: [",
		"no id":       "name: X\nkind: goblin\nmax_health: 1",
		"no name":     "id: x\nkind: goblin\nmax_health: 1",
		"bad kind":    "id: x\nname: X\nkind: orc\nmax_health: 1",
		"zero health": "id: x\nname: X\nkind: goblin\nmax_health: 0",
		"neg attack":  "id: x\nname: X\nkind: goblin\nmax_health: 1\nattack: -1",
		"bad exp":     "id: x\nname: X\nkind: goblin\nmax_health: 1\nexperience: lots",
		"neg exp":     "id: x\nname: X\nkind: goblin\nmax_health: 1\nexperience: 1d4-10",
		"neg loot":    "id: x\nname: X\nkind: goblin\nmax_health: 1\nloot_one_in: -2",
	}
	for name, data := range cases {
		_, err := npc.LoadTemplateFromBytes([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestLoadTemplates_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("id: a\nname: A\nkind: goblin\nmax_health: 5"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	templates, err := npc.LoadTemplates(dir)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "A", templates[0].Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("id: a\nname: B\nkind: dragon\nmax_health: 5"), 0644))
	_, err = npc.LoadTemplates(dir)
	assert.Error(t, err, "duplicate ids are rejected")

	_, err = npc.LoadTemplates(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestNewInstance_FreshAndIndependent(t *testing.T) {
	tmpl := templateByID(t, npc.DefaultTemplates(), "goblin")
	a := npc.NewInstance(tmpl)
	b := npc.NewInstance(tmpl)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 30, a.Health)
	require.NoError(t, a.TakeDamage(10))
	assert.Equal(t, 20, a.Health)
	assert.Equal(t, 30, b.Health, "instances never share vitals")
	assert.Equal(t, "=== Monster Info ===\nName: Goblin\nHP: 20\nAttack: 8 | Defense: 2", a.Info())
}

func TestNewPool_Empty(t *testing.T) {
	_, err := npc.NewPool(nil)
	assert.Error(t, err)
}

func TestPool_SpawnUsesOneDraw(t *testing.T) {
	pool := npc.DefaultPool()
	templates := pool.Templates()
	for i, tmpl := range templates {
		src := &fixedSource{vals: []int{i}}
		inst := pool.Spawn(src)
		assert.Equal(t, tmpl.ID, inst.TemplateID)
		assert.Equal(t, 1, src.idx)
	}
}

func TestPool_SpawnCoversAllKinds_Property(t *testing.T) {
	pool := npc.DefaultPool()
	rapid.Check(t, func(rt *rapid.T) {
		src := dice.NewSeededSource(rapid.Uint64Min(1).Draw(rt, "seed"))
		seen := map[npc.Kind]bool{}
		for i := 0; i < 200; i++ {
			inst := pool.Spawn(src)
			assert.Equal(rt, inst.MaxHealth, inst.Health)
			seen[inst.Kind] = true
		}
		assert.Len(rt, seen, 3)
	})
}

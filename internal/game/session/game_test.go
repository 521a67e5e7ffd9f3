package session_test

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/npc"
	"github.com/cory-johannsen/delve/internal/game/save"
	"github.com/cory-johannsen/delve/internal/game/session"
	sessionmocks "github.com/cory-johannsen/delve/internal/game/session/mocks"
	"github.com/cory-johannsen/delve/internal/scripting"
	"github.com/cory-johannsen/delve/internal/testutil"
)

// Spawn indices into the default pool, which is ordered by template file name.
const (
	spawnDragon   = 0
	spawnGoblin   = 1
	spawnSkeleton = 2
)

type recorder struct{ lines []string }

func (r *recorder) Log(message string) { r.lines = append(r.lines, message) }

type harness struct {
	fe     *sessionmocks.MockFrontend
	events *recorder
	shown  []string
	game   *session.Game
}

type option func(*session.Deps, *config.PlayerConfig)

func withStore(s save.Store) option {
	return func(d *session.Deps, _ *config.PlayerConfig) { d.Store = s }
}

func withNarrator(n session.Narrator) option {
	return func(d *session.Deps, _ *config.PlayerConfig) { d.Narrator = n }
}

func withMaxHealth(hp int) option {
	return func(_ *session.Deps, p *config.PlayerConfig) { p.MaxHealth = hp }
}

func newHarness(t *testing.T, src dice.Source, opts ...option) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{fe: sessionmocks.NewMockFrontend(ctrl), events: &recorder{}}
	h.fe.EXPECT().Display(gomock.Any()).Do(func(msg string) {
		h.shown = append(h.shown, msg)
	}).AnyTimes()

	deps := session.Deps{
		Logger:   zaptest.NewLogger(t),
		Events:   h.events,
		Source:   src,
		Monsters: npc.DefaultPool(),
		Loot:     inventory.DefaultCatalog(),
		Slot:     "default",
	}
	stats := config.Default().Game.Player
	for _, o := range opts {
		o(&deps, &stats)
	}
	g, err := session.New("Aria", stats, deps)
	require.NoError(t, err)
	h.game = g
	return h
}

func (h *harness) actions(actions ...combat.Action) {
	calls := make([]any, len(actions))
	for i, a := range actions {
		calls[i] = h.fe.EXPECT().CombatAction(gomock.Any(), gomock.Any()).Return(a, nil)
	}
	gomock.InOrder(calls...)
}

func (h *harness) menu(cmds ...session.Command) {
	calls := make([]any, len(cmds))
	for i, c := range cmds {
		calls[i] = h.fe.EXPECT().MainMenu(gomock.Any()).Return(c, nil)
	}
	gomock.InOrder(calls...)
}

func repeat(a combat.Action, n int) []combat.Action {
	out := make([]combat.Action, n)
	for i := range out {
		out[i] = a
	}
	return out
}

func TestNew_StarterKitAndStartEvent(t *testing.T) {
	h := newHarness(t, testutil.NewSequenceSource(t))
	p := h.game.Player()

	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 10, p.Attack)
	assert.Equal(t, 5, p.Defense)
	assert.Equal(t, []inventory.Item{
		inventory.NewWeapon("Rusty Sword", "Basic sword", 3),
		inventory.NewPotion("Health Potion", "Restores 20 HP", 20),
	}, p.Inventory.Items())
	assert.Equal(t, []string{"Game started for player: Aria"}, h.events.lines)
}

func TestNew_RejectsBlankName(t *testing.T) {
	_, err := session.New("   ", config.Default().Game.Player, session.Deps{Loot: inventory.DefaultCatalog()})
	assert.Error(t, err)
}

func TestExplore_NothingFound(t *testing.T) {
	h := newHarness(t, testutil.NewSequenceSource(t, 60, 30))

	res, err := h.game.Explore(context.Background(), h.fe)
	require.NoError(t, err)
	assert.Equal(t, session.FoundNothing, res.Outcome)
	assert.Contains(t, h.shown, "Nothing interesting found.")
	assert.Equal(t, []string{
		"Game started for player: Aria",
		"Aria explores the area",
		"Aria found nothing",
	}, h.events.lines)
}

func TestExplore_FindsItem(t *testing.T) {
	// no battle, find roll, potion category, third potion
	h := newHarness(t, testutil.NewSequenceSource(t, 99, 29, 1, 2))

	res, err := h.game.Explore(context.Background(), h.fe)
	require.NoError(t, err)
	require.Equal(t, session.FoundItem, res.Outcome)
	assert.Equal(t, inventory.NewPotion("Elixir", "Fully restores HP", 75), *res.Item)
	assert.Equal(t, 3, h.game.Player().Inventory.Len())
	assert.Contains(t, h.shown, "Found: Elixir!")
	assert.Contains(t, h.events.lines, "Aria found Elixir")
}

func TestFindItem_WeaponBonusFromDice(t *testing.T) {
	for k := 0; k < 10; k++ {
		h := newHarness(t, testutil.NewSequenceSource(t, 0, 1, k))
		item := h.game.FindItem(h.fe)
		assert.Equal(t, inventory.NewWeapon("Steel Axe", "Heavy steel axe", 5+k), item)
	}
}

func TestExplore_GoblinBattleVictory(t *testing.T) {
	// battle, goblin, experience draw 5 (35 XP), no loot
	h := newHarness(t, testutil.NewSequenceSource(t, 0, spawnGoblin, 5, 1))
	var first combat.Status
	h.fe.EXPECT().CombatAction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s combat.Status) (combat.Action, error) {
			first = s
			return combat.Attack(), nil
		})
	h.fe.EXPECT().CombatAction(gomock.Any(), gomock.Any()).Return(combat.Attack(), nil).Times(3)

	res, err := h.game.Explore(context.Background(), h.fe)
	require.NoError(t, err)
	require.Equal(t, session.FoundMonster, res.Outcome)

	assert.Equal(t, "Aria (HP: 100) vs Goblin (HP: 30)", first.Header())
	b := res.Battle
	assert.Equal(t, "Goblin", b.Monster)
	assert.Equal(t, combat.StateMonsterDefeated, b.State)
	assert.Equal(t, 4, b.Rounds)
	require.NotNil(t, b.Reward)
	assert.Equal(t, 35, b.Reward.Experience)
	assert.Nil(t, b.Reward.Loot)

	p := h.game.Player()
	assert.Equal(t, 100-3*7, p.Health)
	assert.Equal(t, 35, p.Experience)

	assert.Contains(t, h.shown, "\nA wild Goblin appears!")
	assert.Contains(t, h.shown, "Aria attacks Goblin for 9 damage!")
	assert.Contains(t, h.shown, "Goblin scratches Aria for 7 damage!")
	assert.Contains(t, h.shown, "Goblin defeated!")
	assert.Contains(t, h.shown, "Defeated Goblin! Gained 35 XP.")

	assert.Equal(t, []string{
		"Game started for player: Aria",
		"Aria explores the area",
		"Aria encounters Goblin",
		"Aria attacks Goblin", "Goblin attacks Aria",
		"Aria attacks Goblin", "Goblin attacks Aria",
		"Aria attacks Goblin", "Goblin attacks Aria",
		"Aria attacks Goblin", "Goblin defeated!",
		"Aria defeated Goblin and gained 35 XP",
	}, h.events.lines)
}

func TestBattle_LootDrop(t *testing.T) {
	// goblin, 35 XP, loot, weapon, Steel Axe, bonus 5+3
	h := newHarness(t, testutil.NewSequenceSource(t, spawnGoblin, 5, 0, 0, 1, 3))
	h.actions(repeat(combat.Attack(), 4)...)

	res, err := h.game.Battle(context.Background(), h.fe)
	require.NoError(t, err)
	require.NotNil(t, res.Reward.Loot)

	axe := inventory.NewWeapon("Steel Axe", "Heavy steel axe", 8)
	assert.Equal(t, axe, *res.Reward.Loot)
	items := h.game.Player().Inventory.Items()
	assert.Equal(t, axe, items[len(items)-1])
	assert.Contains(t, h.shown, "Found: Steel Axe!")
	assert.Contains(t, h.events.lines, "Aria found Steel Axe")
}

func TestBattle_RejectedActionsDoNotCostTurn(t *testing.T) {
	ctrl := gomock.NewController(t)
	narrator := sessionmocks.NewMockNarrator(ctrl)
	narrator.EXPECT().Narrate(scripting.HookEncounter, "Aria", "Goblin").Return("The goblin hisses.")
	narrator.EXPECT().Narrate(scripting.HookFlee, "Aria", "Goblin").Return("")

	h := newHarness(t, testutil.NewSequenceSource(t, spawnGoblin, 0), withNarrator(narrator))
	h.actions(combat.UseItem("Nope"), combat.Action{}, combat.Flee())

	res, err := h.game.Battle(context.Background(), h.fe)
	require.NoError(t, err)
	assert.Equal(t, combat.StateFled, res.State)
	assert.Equal(t, 100, h.game.Player().Health)

	assert.Contains(t, h.shown, "The goblin hisses.")
	assert.Contains(t, h.shown, "Error: using item: item not found: Nope")
	assert.Contains(t, h.shown, "Invalid choice!")
	assert.Contains(t, h.shown, "Successfully fled!")
	assert.Contains(t, h.events.lines, "Aria fled from battle")
	assert.NotContains(t, h.events.lines, "Goblin attacks Aria")
}

func TestBattle_FailedFleeThenDragonAttacks(t *testing.T) {
	// dragon, flee fails, no crit (18 damage), flee succeeds
	h := newHarness(t, testutil.NewSequenceSource(t, spawnDragon, 1, 1, 0))
	h.actions(combat.Flee(), combat.Flee())

	res, err := h.game.Battle(context.Background(), h.fe)
	require.NoError(t, err)
	assert.Equal(t, combat.StateFled, res.State)
	assert.Equal(t, 82, h.game.Player().Health)
	assert.Contains(t, h.shown, "Failed to flee!")
	assert.Contains(t, h.shown, "Dragon attacks Aria for 18 damage!")

	tail := h.events.lines[len(h.events.lines)-3:]
	assert.Equal(t, []string{"Aria failed to flee", "Dragon attacks Aria", "Aria fled from battle"}, tail)
}

func TestBattle_UsePotionMidFight(t *testing.T) {
	// skeleton; flee fails, hit 8, no follow-up; potion, hit 8, no follow-up; flee
	src := testutil.NewSequenceSource(t, spawnSkeleton, 1, 1, 1, 0)
	h := newHarness(t, src)
	h.actions(combat.Flee(), combat.UseItem("Health Potion"), combat.Flee())

	res, err := h.game.Battle(context.Background(), h.fe)
	require.NoError(t, err)
	assert.Equal(t, combat.StateFled, res.State)
	// 100 - 8, healed back to the 100 cap, - 8
	assert.Equal(t, 92, h.game.Player().Health)
	_, stillCarried := h.game.Player().Inventory.FindByName("Health Potion")
	assert.False(t, stillCarried)
	assert.Contains(t, h.shown, "Skeleton hits Aria for 8 damage!")
	assert.Contains(t, h.shown, "Drank Health Potion (heals 20 HP)")
	assert.Contains(t, h.events.lines, "Aria uses Health Potion")
	assert.Equal(t, 0, src.Remaining())
}

func TestRun_DefeatEndsGame(t *testing.T) {
	ctrl := gomock.NewController(t)
	narrator := sessionmocks.NewMockNarrator(ctrl)
	narrator.EXPECT().Narrate(gomock.Any(), "Aria", "Dragon").Return("").Times(2)

	// battle, dragon, crit for 38
	h := newHarness(t, testutil.NewSequenceSource(t, 0, spawnDragon, 0), withMaxHealth(10), withNarrator(narrator))
	h.menu(session.CommandExplore)
	h.actions(combat.Attack())

	require.NoError(t, h.game.Run(context.Background(), h.fe))
	assert.False(t, h.game.Player().Alive())
	assert.Equal(t, session.Banner, h.shown[0])
	assert.Contains(t, h.shown, "Dragon CRITS Aria for 38 damage!")
	assert.Contains(t, h.shown, "\nGame Over! Aria was defeated.")
	n := len(h.events.lines)
	assert.Equal(t, []string{"Aria has been defeated!", "Game Over - Player defeated"}, h.events.lines[n-2:])
}

func TestRun_SaveThenLoadRestores(t *testing.T) {
	store := save.NewFileStore(filepath.Join(t.TempDir(), "save.txt"), "default")
	h := newHarness(t, testutil.NewSequenceSource(t), withStore(store))
	h.menu(session.CommandSave, session.CommandInventory, session.CommandLoad, session.CommandQuit)
	h.fe.EXPECT().ChooseItem(gomock.Any(), gomock.Len(2)).Return("Health Potion", true, nil)

	require.NoError(t, h.game.Run(context.Background(), h.fe))

	assert.Equal(t, 2, h.game.Player().Inventory.Len(), "load restores the drunk potion")
	assert.Contains(t, h.shown, "Game saved successfully.")
	assert.Contains(t, h.shown, "Game loaded successfully.")
	assert.Contains(t, h.shown, "Drank Health Potion (heals 20 HP)")
	assert.Equal(t, []string{
		"Game started for player: Aria",
		"Game saved",
		"Aria uses Health Potion",
		"Game loaded",
	}, h.events.lines)
}

func TestLoad_FailureLeavesPlayerUntouched(t *testing.T) {
	store := save.NewFileStore(filepath.Join(t.TempDir(), "save.txt"), "default")
	h := newHarness(t, testutil.NewSequenceSource(t), withStore(store))
	p := h.game.Player()
	p.Health = 55
	before := p.Clone()

	err := h.game.Load(context.Background())
	assert.ErrorIs(t, err, save.ErrSlotEmpty)
	assert.Equal(t, before, h.game.Player())
}

func TestRun_LoadErrorIsReportedAndLoopContinues(t *testing.T) {
	store := save.NewFileStore(filepath.Join(t.TempDir(), "save.txt"), "default")
	h := newHarness(t, testutil.NewSequenceSource(t), withStore(store))
	h.menu(session.CommandLoad, session.CommandQuit)

	require.NoError(t, h.game.Run(context.Background(), h.fe))

	var reported bool
	for _, s := range h.shown {
		if strings.HasPrefix(s, "Error: loading game:") {
			reported = true
		}
	}
	assert.True(t, reported, "load failure is displayed")
	assert.True(t, strings.HasPrefix(h.events.lines[len(h.events.lines)-1], "Error: loading game:"))
}

func TestRun_InvalidMenuChoice(t *testing.T) {
	h := newHarness(t, testutil.NewSequenceSource(t))
	h.menu(session.CommandUnknown, session.CommandQuit)
	require.NoError(t, h.game.Run(context.Background(), h.fe))
	assert.Contains(t, h.shown, "Invalid choice!")
}

func TestRun_CancelledContext(t *testing.T) {
	h := newHarness(t, testutil.NewSequenceSource(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.game.Run(ctx, h.fe), context.Canceled)
}

func TestRun_FrontendErrorEndsLoop(t *testing.T) {
	h := newHarness(t, testutil.NewSequenceSource(t))
	h.fe.EXPECT().MainMenu(gomock.Any()).Return(session.CommandUnknown, io.EOF)
	assert.ErrorIs(t, h.game.Run(context.Background(), h.fe), io.EOF)
}

func TestSaveLoad_NoStore(t *testing.T) {
	h := newHarness(t, testutil.NewSequenceSource(t))
	assert.ErrorIs(t, h.game.Save(context.Background()), session.ErrNoStore)
	assert.ErrorIs(t, h.game.Load(context.Background()), session.ErrNoStore)
}

func TestShowInventory_DeclineAndMissingItem(t *testing.T) {
	h := newHarness(t, testutil.NewSequenceSource(t))
	gomock.InOrder(
		h.fe.EXPECT().ChooseItem(gomock.Any(), gomock.Any()).Return("", false, nil),
		h.fe.EXPECT().ChooseItem(gomock.Any(), gomock.Any()).Return("Ghost", true, nil),
	)
	ctx := context.Background()

	require.NoError(t, h.game.ShowInventory(ctx, h.fe))
	require.NoError(t, h.game.ShowInventory(ctx, h.fe))

	assert.Equal(t, 2, h.game.Player().Inventory.Len())
	assert.Contains(t, h.shown, "Error: item not found: Ghost")
	assert.Contains(t, h.shown[0], "=== Inventory ===")
}

func TestShowInventory_EmptySkipsPrompt(t *testing.T) {
	h := newHarness(t, testutil.NewSequenceSource(t))
	p := h.game.Player()
	for !p.Inventory.IsEmpty() {
		_, err := p.Inventory.RemoveAt(0)
		require.NoError(t, err)
	}
	require.NoError(t, h.game.ShowInventory(context.Background(), h.fe))
	assert.Equal(t, []string{"=== Inventory ===\n(empty)"}, h.shown)
}

func TestBattle_PlayerSharingMonsterNameLogsOnlyRealMonsterTurns(t *testing.T) {
	// goblin, 35 XP, no loot
	ctrl := gomock.NewController(t)
	fe := sessionmocks.NewMockFrontend(ctrl)
	var shown []string
	fe.EXPECT().Display(gomock.Any()).Do(func(msg string) { shown = append(shown, msg) }).AnyTimes()
	fe.EXPECT().CombatAction(gomock.Any(), gomock.Any()).Return(combat.Attack(), nil).Times(4)

	events := &recorder{}
	g, err := session.New("Goblin", config.Default().Game.Player, session.Deps{
		Logger:   zaptest.NewLogger(t),
		Events:   events,
		Source:   testutil.NewSequenceSource(t, spawnGoblin, 5, 1),
		Monsters: npc.DefaultPool(),
		Loot:     inventory.DefaultCatalog(),
	})
	require.NoError(t, err)

	res, err := g.Battle(context.Background(), fe)
	require.NoError(t, err)
	require.Equal(t, combat.StateMonsterDefeated, res.State)

	assert.Contains(t, shown, "=== Monster Info ===\nName: Goblin\nHP: 30\nAttack: 8 | Defense: 2")
	// Four player attacks and three monster replies; the killing blow gets no reply.
	assert.Equal(t, []string{
		"Game started for player: Goblin",
		"Goblin encounters Goblin",
		"Goblin attacks Goblin", "Goblin attacks Goblin",
		"Goblin attacks Goblin", "Goblin attacks Goblin",
		"Goblin attacks Goblin", "Goblin attacks Goblin",
		"Goblin attacks Goblin", "Goblin defeated!",
		"Goblin defeated Goblin and gained 35 XP",
	}, events.lines)
}

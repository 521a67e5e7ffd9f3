package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/npc"
	"github.com/cory-johannsen/delve/internal/game/save"
	"github.com/cory-johannsen/delve/internal/scripting"
)

// Explore thresholds, each compared against an independent Intn(100) draw.
const (
	EncounterPercent = 60
	FindItemPercent  = 30
)

// Banner is displayed when Run starts.
const Banner = "=== Simple RPG Game ==="

// Deps are the collaborators a Game draws on. Store and Narrator are optional.
type Deps struct {
	Logger   *zap.Logger
	Events   EventLogger
	Source   dice.Source
	Monsters *npc.Pool
	Loot     *inventory.Catalog
	Store    save.Store
	Slot     string
	Narrator Narrator
}

// Game owns the player character for one play session.
// Game is not safe for concurrent use.
type Game struct {
	player   *character.Character
	logger   *zap.Logger
	events   EventLogger
	src      dice.Source
	monsters *npc.Pool
	loot     *inventory.Catalog
	store    save.Store
	slot     string
	narrator Narrator
}

// New creates a game for a fresh character named name, carrying the
// catalog's starter kit.
//
// Precondition: deps.Logger, deps.Events, deps.Source, deps.Monsters and
// deps.Loot must be non-nil.
// Postcondition: "Game started for player: <name>" has been logged.
func New(name string, stats config.PlayerConfig, deps Deps) (*Game, error) {
	player, err := character.Build(name, stats, deps.Loot.StarterItems())
	if err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	return NewWithCharacter(player, deps), nil
}

// NewWithCharacter creates a game around an existing character.
//
// Precondition: as for New; player must pass Validate.
func NewWithCharacter(player *character.Character, deps Deps) *Game {
	g := &Game{
		player:   player,
		logger:   deps.Logger.With(zap.String("player", player.Name)),
		events:   deps.Events,
		src:      deps.Source,
		monsters: deps.Monsters,
		loot:     deps.Loot,
		store:    deps.Store,
		slot:     deps.Slot,
		narrator: deps.Narrator,
	}
	g.events.Log("Game started for player: " + player.Name)
	g.logger.Info("game started", zap.String("slot", g.slot))
	return g
}

// Player returns the live character. Callers must not retain it across Load.
func (g *Game) Player() *character.Character { return g.player }

// ExploreOutcome classifies what an exploration turned up.
type ExploreOutcome int

const (
	FoundNothing ExploreOutcome = iota
	FoundMonster
	FoundItem
)

// ExploreResult reports one exploration. Battle is set for FoundMonster and
// Item for FoundItem.
type ExploreResult struct {
	Outcome ExploreOutcome
	Battle  *BattleResult
	Item    *inventory.Item
}

// BattleResult reports how an encounter ended. Reward is set only when the
// monster was defeated.
type BattleResult struct {
	Monster string
	State   combat.State
	Rounds  int
	Reward  *combat.Reward
}

// Explore draws Intn(100); below EncounterPercent a battle starts. Otherwise a
// second, independent Intn(100) below FindItemPercent finds an item.
//
// Postcondition: the only error returned is a Frontend error from the battle.
func (g *Game) Explore(ctx context.Context, fe Frontend) (ExploreResult, error) {
	name := g.player.Name
	fe.Display(fmt.Sprintf("\n%s explores the area...", name))
	g.events.Log(name + " explores the area")

	if g.src.Intn(100) < EncounterPercent {
		res, err := g.Battle(ctx, fe)
		if err != nil {
			return ExploreResult{}, err
		}
		return ExploreResult{Outcome: FoundMonster, Battle: &res}, nil
	}
	if g.src.Intn(100) < FindItemPercent {
		item := g.FindItem(fe)
		return ExploreResult{Outcome: FoundItem, Item: &item}, nil
	}

	fe.Display("Nothing interesting found.")
	g.events.Log(name + " found nothing")
	return ExploreResult{Outcome: FoundNothing}, nil
}

// FindItem rolls one item from the loot catalog into the player's inventory.
func (g *Game) FindItem(fe Frontend) inventory.Item {
	item := g.loot.Roll(g.src)
	g.player.AddItem(item)
	fe.Display(fmt.Sprintf("Found: %s!", item.Name))
	g.events.Log(fmt.Sprintf("%s found %s", g.player.Name, item.Name))
	g.logger.Debug("item found", zap.String("item", item.Name), zap.Stringer("kind", item.Kind))
	return item
}

// Battle spawns a random monster and fights it until one side is defeated or
// the player flees. Rejected actions are reported and asked for again without
// costing the turn.
//
// Postcondition: on a nil error the encounter reached a terminal state; on
// victory the reward has been granted.
func (g *Game) Battle(ctx context.Context, fe Frontend) (BattleResult, error) {
	monster := g.monsters.Spawn(g.src)
	name := g.player.Name

	fe.Display(fmt.Sprintf("\nA wild %s appears!", monster.Name))
	fe.Display(monster.Info())
	g.events.Log(name + " encounters " + monster.Name)
	g.narrate(fe, scripting.HookEncounter, monster.Name)

	enc := combat.NewEncounter(g.player, monster, g.src, g.logger)
	for !enc.State().Terminal() {
		action, err := fe.CombatAction(ctx, enc.Status())
		if err != nil {
			return BattleResult{}, err
		}
		turn, err := enc.Step(action)
		if err != nil {
			g.reportRejected(fe, err)
			continue
		}
		g.logTurn(action, turn, monster.Name)
		for _, msg := range turn.Narratives() {
			fe.Display(msg)
		}
	}

	res := BattleResult{Monster: monster.Name, State: enc.State(), Rounds: enc.Round()}
	switch enc.State() {
	case combat.StateMonsterDefeated:
		reward, err := enc.Reward(g.loot)
		if err != nil {
			return res, fmt.Errorf("collecting reward: %w", err)
		}
		res.Reward = &reward
		for _, msg := range reward.Events {
			fe.Display(msg)
		}
		g.events.Log(fmt.Sprintf("%s defeated %s and gained %d XP", name, monster.Name, reward.Experience))
		if reward.LeveledUp {
			g.events.Log(fmt.Sprintf("%s leveled up to level %d", name, reward.NewLevel))
		}
		if reward.Loot != nil {
			g.events.Log(fmt.Sprintf("%s found %s", name, reward.Loot.Name))
		}
		g.narrate(fe, scripting.HookVictory, monster.Name)
	case combat.StateFled:
		g.narrate(fe, scripting.HookFlee, monster.Name)
	case combat.StatePlayerDefeated:
		g.narrate(fe, scripting.HookDefeat, monster.Name)
	}
	return res, nil
}

func (g *Game) reportRejected(fe Frontend, err error) {
	switch {
	case errors.Is(err, combat.ErrInvalidAction):
		fe.Display("Invalid choice!")
	default:
		fe.Display("Error: " + err.Error())
	}
	g.events.Log("Error: " + err.Error())
}

// logTurn writes the event log lines for one accepted action.
func (g *Game) logTurn(a combat.Action, turn combat.Turn, monster string) {
	name := g.player.Name
	switch a.Type {
	case combat.ActionAttack:
		g.events.Log(name + " attacks " + monster)
	case combat.ActionUseItem:
		g.events.Log(name + " uses " + a.ItemName)
	}

	monsterAttacked := false
	for _, ev := range turn.Events {
		switch ev.Kind {
		case combat.EventFled:
			g.events.Log(name + " fled from battle")
		case combat.EventFleeFailed:
			g.events.Log(name + " failed to flee")
		case combat.EventHit:
			if ev.Hit.FromMonster && !monsterAttacked {
				monsterAttacked = true
				g.events.Log(monster + " attacks " + name)
			}
		case combat.EventMonsterDefeated, combat.EventPlayerDefeated:
			g.events.Log(ev.Narrative)
		}
	}
}

func (g *Game) narrate(fe Frontend, hook, monster string) {
	if g.narrator == nil {
		return
	}
	if msg := g.narrator.Narrate(hook, g.player.Name, monster); msg != "" {
		fe.Display(msg)
	}
}

// ShowInventory displays the inventory and, unless it is empty, offers to use
// one item. A missing item is reported, not returned.
//
// Postcondition: the only error returned is a Frontend error.
func (g *Game) ShowInventory(ctx context.Context, fe Frontend) error {
	fe.Display(g.player.InventoryListing())
	if g.player.Inventory.IsEmpty() {
		return nil
	}
	name, ok, err := fe.ChooseItem(ctx, g.player.Inventory.Items())
	if err != nil || !ok {
		return err
	}
	used, err := g.player.UseItem(name)
	if err != nil {
		g.reportError(fe, err)
		return nil
	}
	fe.Display(used.String())
	g.events.Log(g.player.Name + " uses " + name)
	return nil
}

// ErrNoStore is returned by Save and Load when the game has no save store.
var ErrNoStore = errors.New("no save store configured")

// Save writes the character to the configured slot.
func (g *Game) Save(ctx context.Context) error {
	if g.store == nil {
		return ErrNoStore
	}
	if err := g.store.Save(ctx, g.slot, g.player); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	g.events.Log("Game saved")
	g.logger.Info("game saved", zap.String("slot", g.slot))
	return nil
}

// Load replaces the character with the one in the configured slot.
//
// Postcondition: on error the character is unchanged.
func (g *Game) Load(ctx context.Context) error {
	if g.store == nil {
		return ErrNoStore
	}
	loaded, err := g.store.Load(ctx, g.slot)
	if err != nil {
		return fmt.Errorf("loading game: %w", err)
	}
	g.player.ReplaceWith(loaded)
	g.events.Log("Game loaded")
	g.logger.Info("game loaded", zap.String("slot", g.slot))
	return nil
}

func (g *Game) reportError(fe Frontend, err error) {
	fe.Display("Error: " + err.Error())
	g.events.Log("Error: " + err.Error())
	g.logger.Warn("game error", zap.Error(err))
}

// Run shows the banner and character sheet, then serves main menu commands
// until the player quits, is defeated, or fe fails.
//
// Postcondition: returns nil on quit or defeat, otherwise the Frontend error
// (ctx.Err() when ctx was cancelled).
func (g *Game) Run(ctx context.Context, fe Frontend) error {
	fe.Display(Banner)
	fe.Display(g.player.Sheet())

	for g.player.Alive() {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, err := fe.MainMenu(ctx)
		if err != nil {
			return err
		}

		switch cmd {
		case CommandExplore:
			if _, err := g.Explore(ctx, fe); err != nil {
				return err
			}
		case CommandInventory:
			if err := g.ShowInventory(ctx, fe); err != nil {
				return err
			}
		case CommandSave:
			if err := g.Save(ctx); err != nil {
				g.reportError(fe, err)
				continue
			}
			fe.Display("Game saved successfully.")
		case CommandLoad:
			if err := g.Load(ctx); err != nil {
				g.reportError(fe, err)
				continue
			}
			fe.Display("Game loaded successfully.")
			fe.Display(g.player.Sheet())
		case CommandQuit:
			g.logger.Info("game quit")
			return nil
		default:
			fe.Display("Invalid choice!")
		}
	}

	fe.Display(fmt.Sprintf("\nGame Over! %s was defeated.", g.player.Name))
	g.events.Log("Game Over - Player defeated")
	g.logger.Info("game over")
	return nil
}

package combat

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/entity"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/npc"
)

var (
	// ErrEncounterOver is returned by Step once a terminal state is reached.
	ErrEncounterOver = errors.New("encounter is over")
	// ErrInvalidAction is returned for an action the encounter does not recognize.
	ErrInvalidAction = errors.New("invalid action")
	// ErrNoReward is returned by Reward when the monster was not defeated or
	// the reward was already collected.
	ErrNoReward = errors.New("no reward available")
)

// State is the encounter's position in its lifecycle.
type State int

const (
	StateAwaitingAction State = iota
	StatePlayerDefeated
	StateMonsterDefeated
	StateFled
)

// String returns a lowercase label for the state.
func (s State) String() string {
	switch s {
	case StateAwaitingAction:
		return "awaiting action"
	case StatePlayerDefeated:
		return "player defeated"
	case StateMonsterDefeated:
		return "monster defeated"
	case StateFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further actions are accepted.
func (s State) Terminal() bool { return s != StateAwaitingAction }

// Status is a read-only snapshot for frontends.
type Status struct {
	EncounterID string
	Round       int
	Player      entity.Vitals
	Monster     entity.Vitals
	Items       []inventory.Item
}

// Header renders "Ayla (HP: 90) vs Goblin (HP: 30)".
func (s Status) Header() string {
	return fmt.Sprintf("%s (HP: %d) vs %s (HP: %d)", s.Player.Name, s.Player.Health, s.Monster.Name, s.Monster.Health)
}

// LootTable produces one loot item per roll. *inventory.Catalog satisfies it.
type LootTable interface {
	Roll(src dice.Source) inventory.Item
}

// Reward is what the player collects after defeating the monster.
type Reward struct {
	Experience int
	LeveledUp  bool
	NewLevel   int
	// Loot is nil when the loot chance failed.
	Loot   *inventory.Item
	Events []string
}

// Encounter is one fight between the player and a single monster instance.
// Encounter is not safe for concurrent use.
type Encounter struct {
	ID      string
	Player  *character.Character
	Monster *npc.Instance

	src      dice.Source
	logger   *zap.Logger
	state    State
	round    int
	rewarded bool
}

// NewEncounter starts a fight awaiting the player's first action.
//
// Precondition: player, monster, src and logger must be non-nil; both sides alive.
func NewEncounter(player *character.Character, monster *npc.Instance, src dice.Source, logger *zap.Logger) *Encounter {
	e := &Encounter{
		ID:      uuid.NewString(),
		Player:  player,
		Monster: monster,
		src:     src,
		state:   StateAwaitingAction,
		round:   1,
	}
	e.logger = logger.With(zap.String("encounter_id", e.ID), zap.String("monster", monster.Name))
	e.logger.Debug("encounter started", zap.Int("monster_health", monster.Health))
	return e
}

// State returns the current state.
func (e *Encounter) State() State { return e.state }

// Round returns the 1-based round number awaiting an action.
func (e *Encounter) Round() int { return e.round }

// Status returns a snapshot for display.
func (e *Encounter) Status() Status {
	return Status{
		EncounterID: e.ID,
		Round:       e.round,
		Player:      e.Player.Vitals,
		Monster:     e.Monster.Vitals,
		Items:       e.Player.Inventory.Items(),
	}
}

// Step resolves one player action and, unless the fight ended, the monster's reply.
//
// Precondition: e.State() == StateAwaitingAction, otherwise ErrEncounterOver.
// Postcondition: a rejected action (ErrInvalidAction, or an item lookup
// failure wrapping inventory.ErrItemNotFound) changes nothing and does not
// pass the turn. Every accepted action that leaves the monster alive and the
// player still in the fight is followed by exactly one monster attack.
func (e *Encounter) Step(a Action) (Turn, error) {
	if e.state.Terminal() {
		return Turn{State: e.state}, ErrEncounterOver
	}

	var events []Event
	switch a.Type {
	case ActionAttack:
		res := ResolvePlayerAttack(&e.Player.Vitals, &e.Monster.Vitals)
		events = append(events, hitEvents(res)...)
		e.logger.Debug("player attack", zap.Int("damage", res.TotalDamage()), zap.Int("monster_health", e.Monster.Health))
		if res.Defeated {
			return e.finish(events, StateMonsterDefeated, Event{
				Kind:      EventMonsterDefeated,
				Narrative: fmt.Sprintf("%s defeated!", e.Monster.Name),
			}), nil
		}
	case ActionUseItem:
		used, err := e.Player.UseItem(a.ItemName)
		if err != nil {
			e.logger.Debug("item use rejected", zap.String("item", a.ItemName), zap.Error(err))
			return Turn{State: e.state}, fmt.Errorf("using item: %w", err)
		}
		events = append(events, Event{Kind: EventItemUsed, Narrative: used.String()})
	case ActionFlee:
		if dice.Chance(e.src, FleeOneIn) {
			return e.finish(events, StateFled, Event{Kind: EventFled, Narrative: "Successfully fled!"}), nil
		}
		events = append(events, Event{Kind: EventFleeFailed, Narrative: "Failed to flee!"})
	default:
		return Turn{State: e.state}, fmt.Errorf("%w: %s", ErrInvalidAction, a.Type)
	}

	res := ResolveMonsterAttack(e.Monster, &e.Player.Vitals, e.src)
	events = append(events, hitEvents(res)...)
	e.logger.Debug("monster attack", zap.Int("damage", res.TotalDamage()), zap.Int("player_health", e.Player.Health))
	if res.Defeated {
		return e.finish(events, StatePlayerDefeated, Event{
			Kind:      EventPlayerDefeated,
			Narrative: fmt.Sprintf("%s has been defeated!", e.Player.Name),
		}), nil
	}

	e.round++
	return Turn{Events: events, State: e.state}, nil
}

func (e *Encounter) finish(events []Event, s State, final Event) Turn {
	e.state = s
	e.logger.Info("encounter ended", zap.Stringer("state", s), zap.Int("rounds", e.round))
	return Turn{Events: append(events, final), State: s}
}

// Reward grants the victory experience and, with the template's loot chance,
// one item from loot. Draw order: experience dice, loot chance, loot roll.
//
// Precondition: e.State() == StateMonsterDefeated; callable once.
// Postcondition: experience is applied through GainExperience and any loot is
// already in the player's inventory.
func (e *Encounter) Reward(loot LootTable) (Reward, error) {
	if e.state != StateMonsterDefeated || e.rewarded {
		return Reward{}, ErrNoReward
	}
	e.rewarded = true

	tmpl := e.Monster.Template
	exp := dice.Roll(tmpl.ExperienceRoll, e.src).Total()
	r := Reward{Experience: exp}

	r.LeveledUp = e.Player.GainExperience(exp)
	r.Events = append(r.Events, fmt.Sprintf("Defeated %s! Gained %d XP.", e.Monster.Name, exp))
	if r.LeveledUp {
		r.NewLevel = e.Player.Level
		r.Events = append(r.Events, fmt.Sprintf("%s leveled up to level %d!", e.Player.Name, e.Player.Level))
	}

	if dice.Chance(e.src, tmpl.LootOneIn) {
		item := loot.Roll(e.src)
		e.Player.AddItem(item)
		r.Loot = &item
		r.Events = append(r.Events, fmt.Sprintf("Found: %s!", item.Name))
	}

	e.logger.Info("reward granted",
		zap.Int("experience", exp),
		zap.Bool("leveled_up", r.LeveledUp),
		zap.Bool("loot", r.Loot != nil),
	)
	return r, nil
}

package combat

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/entity"
	"github.com/cory-johannsen/delve/internal/game/npc"
)

// Hit is one application of damage.
type Hit struct {
	Attacker string
	Target   string
	Damage   int
	// Critical marks a Dragon critical hit.
	Critical bool
	// Followup marks a Skeleton second strike.
	Followup bool
	// FromMonster is set on every hit the monster lands.
	FromMonster bool
	// Verb is the narration verb for the hit.
	Verb string
}

// Narrative renders the hit the way the event log records it.
func (h Hit) Narrative() string {
	if h.Followup {
		return fmt.Sprintf("%s attacks again for %d damage!", h.Attacker, h.Damage)
	}
	return fmt.Sprintf("%s %s %s for %d damage!", h.Attacker, h.Verb, h.Target, h.Damage)
}

// AttackResult holds every hit of one attack and whether it defeated the target.
type AttackResult struct {
	Hits     []Hit
	Defeated bool
}

// TotalDamage sums the damage of all hits.
func (r AttackResult) TotalDamage() int {
	total := 0
	for _, h := range r.Hits {
		total += h.Damage
	}
	return total
}

// apply lands h on target and records it. It reports true when the hit
// defeated the target.
func (r *AttackResult) apply(target *entity.Vitals, h Hit) bool {
	r.Hits = append(r.Hits, h)
	if err := target.TakeDamage(h.Damage); err != nil {
		if errors.Is(err, entity.ErrDefeated) {
			r.Defeated = true
			return true
		}
	}
	return false
}

// ResolvePlayerAttack applies the default formula from attacker to target.
//
// Postcondition: target.Health decreased by max(1, attack - floor(defense/2)), floored at 0.
func ResolvePlayerAttack(attacker, target *entity.Vitals) AttackResult {
	var r AttackResult
	r.apply(target, Hit{
		Attacker: attacker.Name,
		Target:   target.Name,
		Damage:   Damage(attacker.Attack, target.Defense, DefaultDefenseDivisor),
		Verb:     "attacks",
	})
	return r
}

// ResolveMonsterAttack applies the kind-specific attack of m to target.
// Draws from src: Dragon consumes one Intn(5); Skeleton consumes one Intn(3)
// only when its first hit leaves the target standing; Goblin draws nothing.
//
// Precondition: m.Kind is a known kind.
// Postcondition: a Skeleton second hit never lands on a defeated target.
func ResolveMonsterAttack(m *npc.Instance, target *entity.Vitals, src dice.Source) AttackResult {
	var r AttackResult
	hit := func(attack, divisor int, verb string) Hit {
		return Hit{
			Attacker:    m.Name,
			Target:      target.Name,
			Damage:      Damage(attack, target.Defense, divisor),
			Verb:        verb,
			FromMonster: true,
		}
	}
	switch m.Kind {
	case npc.KindGoblin:
		r.apply(target, hit(m.Attack, GoblinDefenseDivisor, "scratches"))
	case npc.KindDragon:
		if dice.Chance(src, DragonCritOneIn) {
			crit := hit(m.Attack*2, DefaultDefenseDivisor, "CRITS")
			crit.Critical = true
			r.apply(target, crit)
		} else {
			r.apply(target, hit(m.Attack, DefaultDefenseDivisor, "attacks"))
		}
	case npc.KindSkeleton:
		if r.apply(target, hit(m.Attack, DefaultDefenseDivisor, "hits")) {
			return r
		}
		if dice.Chance(src, SkeletonFollowupOneIn) {
			second := hit(m.Attack, DefaultDefenseDivisor, "hits")
			second.Followup = true
			r.apply(target, second)
		}
	default:
		panic(fmt.Sprintf("combat: monster %q has unknown kind %d", m.Name, int(m.Kind)))
	}
	return r
}

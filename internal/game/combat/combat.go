// Package combat implements the damage rules, the per-kind monster attack
// behaviors, and the Encounter state machine that drives one fight.
package combat

// Attack divisors applied to the target's defense.
const (
	DefaultDefenseDivisor = 2
	GoblinDefenseDivisor  = 3
)

// Monster behavior odds, expressed as 1-in-n.
const (
	DragonCritOneIn       = 5
	SkeletonFollowupOneIn = 3
	FleeOneIn             = 2
)

// Damage computes max(1, attack - floor(defense/divisor)).
//
// Precondition: divisor > 0.
// Postcondition: Returns >= 1 for every attack and defense, including negatives.
func Damage(attack, defense, divisor int) int {
	d := attack - floorDiv(defense, divisor)
	if d < 1 {
		return 1
	}
	return d
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

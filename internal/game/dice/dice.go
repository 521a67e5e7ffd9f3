// Package dice provides the injectable randomness source and the dice
// expressions used by combat, exploration, and loot rolls.
package dice

import "fmt"

// Source is the randomness provider for every chance roll in the game.
//
// A Game owns exactly one Source and threads it through combat and loot, so a
// scripted Source makes a whole session reproducible.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// RollResult holds the audit trail for a single dice roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "1d20+29"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String renders the roll as "1d10+4 [7] +4 = 11".
func (r RollResult) String() string {
	return fmt.Sprintf("%s %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Chance reports whether a 1-in-n event happened: true iff src.Intn(n) == 0.
//
// Precondition: n > 0.
func Chance(src Source, n int) bool {
	return src.Intn(n) == 0
}

package testutil

import "testing"

// SequenceSource is a dice.Source that replays scripted draws in order.
// Each value is reduced modulo n. Once the script is exhausted the test fails,
// unless Fallback is set, in which case Fallback is returned.
type SequenceSource struct {
	t        testing.TB
	vals     []int
	idx      int
	Fallback *int
}

// NewSequenceSource returns a source that yields vals in order.
func NewSequenceSource(t testing.TB, vals ...int) *SequenceSource {
	return &SequenceSource{t: t, vals: vals}
}

// Then appends further draws.
func (s *SequenceSource) Then(vals ...int) *SequenceSource {
	s.vals = append(s.vals, vals...)
	return s
}

// Intn returns the next scripted value modulo n.
func (s *SequenceSource) Intn(n int) int {
	if s.idx >= len(s.vals) {
		if s.Fallback != nil {
			return *s.Fallback % n
		}
		s.t.Fatalf("sequence source exhausted after %d draws (Intn(%d))", s.idx, n)
		return 0
	}
	v := s.vals[s.idx] % n
	s.idx++
	return v
}

// Remaining reports how many scripted draws have not been consumed.
func (s *SequenceSource) Remaining() int { return len(s.vals) - s.idx }

package dice

import "go.uber.org/zap"

// Roller wraps a Source and logs every roll and chance check at debug level.
// Roller itself satisfies Source, so it can stand in wherever one is expected.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn delegates to the wrapped Source.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("random draw", zap.Int("n", n), zap.Int("value", v))
	return v
}

// Roll evaluates expr and logs the result.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// Chance reports whether a 1-in-n event happened and logs the outcome.
func (r *Roller) Chance(label string, n int) bool {
	hit := Chance(r.src, n)
	r.logger.Debug("chance", zap.String("check", label), zap.Int("one_in", n), zap.Bool("hit", hit))
	return hit
}

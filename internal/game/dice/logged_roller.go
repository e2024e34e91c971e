package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// Every draw is logged at debug level with the die size and the face rolled.
//
// Roller is itself a Source, so it can be handed to a resolver in place of the
// raw Source it wraps.
type Roller struct {
	src    Source
	logger *zap.Logger
	rolls  int
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn draws from the wrapped Source and logs the result.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.rolls++
	r.logger.Debug("dice roll",
		zap.Int("sides", n),
		zap.Int("face", v+1),
		zap.Int("seq", r.rolls),
	)
	return v
}

// D10 rolls one ten-sided die through the logger.
//
// Postcondition: Returns a value in [1, 10].
func (r *Roller) D10() int {
	return D10(r)
}

// Rolls returns the number of draws made through this Roller.
func (r *Roller) Rolls() int { return r.rolls }

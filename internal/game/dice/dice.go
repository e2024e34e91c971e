// Package dice provides the randomness abstraction behind every roll the
// Steelkilt combat engine makes.
//
// All rules are resolved with a single ten-sided die. The die is always drawn
// from an injected Source so that a combat can be replayed exactly.
package dice

// Sides is the number of faces on the engine's only die.
const Sides = 10

// Source is the randomness provider for dice rolls.
//
// A Source owned by one combat session need not be safe for concurrent use;
// NewCryptoSource is the only implementation that is.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// D10 rolls one ten-sided die.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a value in [1, 10].
func D10(src Source) int {
	return src.Intn(Sides) + 1
}

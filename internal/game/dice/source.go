package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, n) for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
// It is safe for concurrent use but cannot be replayed.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" if n <= 0.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// seededSource is a replayable PCG stream. Two sources built from the same
// seed yield the same sequence of draws.
type seededSource struct {
	rng *mrand.Rand
}

// NewSeededSource returns a deterministic Source for seed.
// The returned Source is not safe for concurrent use; give each combat its own.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Intn returns the next value of the stream in [0, n).
//
// Precondition: n > 0.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.IntN(n)
}

// SequenceSource replays a fixed list of die faces, cycling when exhausted.
// Faces are expressed as D10 results (1..10), which makes scripted rounds easy
// to read in tests and replays.
type SequenceSource struct {
	faces []int
	next  int
}

// NewSequenceSource returns a SequenceSource replaying faces in order.
//
// Precondition: len(faces) > 0 and every face is >= 1.
func NewSequenceSource(faces ...int) *SequenceSource {
	if len(faces) == 0 {
		panic("dice: NewSequenceSource requires at least one face")
	}
	cp := make([]int, len(faces))
	copy(cp, faces)
	return &SequenceSource{faces: cp}
}

// Intn returns the next face minus one, so that D10 yields the face itself.
// Faces larger than n wrap modulo n.
//
// Precondition: n > 0.
// Postcondition: Returns a value in [0, n).
func (s *SequenceSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	face := s.faces[s.next]
	s.next = (s.next + 1) % len(s.faces)
	return (face - 1) % n
}

// Drawn reports how many faces have been consumed since the last wrap.
func (s *SequenceSource) Drawn() int { return s.next }

// Package modifier defines the protocol through which optional rule modules
// contribute signed bonuses and penalties to a combat round.
package modifier

// Source is implemented by every rule module that affects rolls.
//
// Each query is pure: it reads only the state of the owning entity and never
// depends on another Source's output. A category that does not apply returns 0.
type Source interface {
	// AttackModifier returns the signed modifier to the owner's attack rolls.
	AttackModifier() int
	// DefenseModifier returns the signed modifier to the owner's parry and dodge rolls.
	DefenseModifier() int
	// DamageModifier returns the signed modifier to damage the owner inflicts.
	DamageModifier() int
}

// Totals holds the per-category sums of a set of Sources.
type Totals struct {
	Attack  int
	Defense int
	Damage  int
}

// Sum returns the independent per-category totals of sources.
// Nil sources are skipped. Summation order does not affect the result.
//
// Postcondition: Totals.Attack == Σ AttackModifier(), and likewise for Defense and Damage.
func Sum(sources ...Source) Totals {
	var t Totals
	for _, s := range sources {
		if s == nil {
			continue
		}
		t.Attack += s.AttackModifier()
		t.Defense += s.DefenseModifier()
		t.Damage += s.DamageModifier()
	}
	return t
}

// Fixed is a constant Source for situational modifiers supplied by the host,
// such as terrain or a referee ruling.
type Fixed struct {
	Attack  int
	Defense int
	Damage  int
}

// AttackModifier implements Source.
func (f Fixed) AttackModifier() int { return f.Attack }

// DefenseModifier implements Source.
func (f Fixed) DefenseModifier() int { return f.Defense }

// DamageModifier implements Source.
func (f Fixed) DamageModifier() int { return f.Damage }

// Package stance models the combat maneuver a fighter has adopted for the
// round and the sequencing rules that govern charging and aiming.
package stance

import (
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/rules"
)

// Maneuver is one of the mutually exclusive combat postures.
type Maneuver int

const (
	Normal Maneuver = iota
	Charge
	DefensivePosition
	AllOutAttack
	AimedAttack
)

// String returns a human-readable maneuver label.
func (m Maneuver) String() string {
	switch m {
	case Normal:
		return "normal"
	case Charge:
		return "charge"
	case DefensivePosition:
		return "defensive_position"
	case AllOutAttack:
		return "all_out_attack"
	case AimedAttack:
		return "aimed_attack"
	default:
		return "unknown"
	}
}

// ParseManeuver maps a label produced by String back to a Maneuver.
func ParseManeuver(s string) (Maneuver, error) {
	for m := Normal; m <= AimedAttack; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown maneuver %q", s)
}

// Triple is a maneuver's fixed (attack, defense, damage) modifiers.
type Triple struct {
	Attack  int
	Defense int
	Damage  int
}

// Modifiers returns the fixed triple for m.
func (m Maneuver) Modifiers() Triple {
	switch m {
	case Charge:
		return Triple{Attack: 1, Defense: -2, Damage: 1}
	case DefensivePosition:
		return Triple{Defense: 2}
	case AllOutAttack:
		return Triple{Attack: 2, Defense: -4}
	case AimedAttack:
		return Triple{Attack: -2, Damage: 2}
	default:
		return Triple{}
	}
}

// AllowsAttack reports whether attacking is permitted under m.
func (m Maneuver) AllowsAttack() bool { return m != DefensivePosition }

// Stance is a fighter's current maneuver plus the charge and aim
// preparation carried between rounds. The zero value is Normal.
type Stance struct {
	current Maneuver
	// chargePending is set when Charge was selected this round without prior movement.
	chargePending bool
	chargeReady   bool
	aimed         bool
}

// New returns a stance in the Normal maneuver.
func New() *Stance { return &Stance{} }

// Current returns the selected maneuver.
func (s *Stance) Current() Maneuver { return s.current }

// Charging reports whether a charge has been initiated but not yet completed.
func (s *Stance) Charging() bool { return s.chargePending }

// Select switches to m.
//
// Selecting Charge without a charge initiated on an earlier round starts one:
// the maneuver becomes Charge but its modifiers are withheld until EndRound.
// Selecting AimedAttack consumes a prior Aim.
//
// Postcondition: on error the stance is unchanged; the error wraps
// rules.ErrNotPrepared when AimedAttack is selected without a prior Aim.
func (s *Stance) Select(m Maneuver) error {
	if m == AimedAttack {
		if !s.aimed {
			return fmt.Errorf("selecting %s: %w", m, rules.ErrNotPrepared)
		}
		s.aimed = false
	}
	if m == Charge && !s.chargeReady {
		s.chargePending = true
	}
	if m != Charge {
		s.chargePending = false
		s.chargeReady = false
	}
	s.current = m
	return nil
}

// Aim spends the round taking aim so that AimedAttack may be selected later.
// Aiming abandons any charge in progress and returns the stance to Normal.
func (s *Stance) Aim() {
	s.aimed = true
	s.chargePending = false
	s.chargeReady = false
	s.current = Normal
}

// EndRound advances a pending charge so its bonus applies next round.
func (s *Stance) EndRound() {
	if s.chargePending {
		s.chargePending = false
		s.chargeReady = true
	}
}

// CheckAttack reports whether the fighter may attack this round.
//
// Postcondition: Returns an error wrapping rules.ErrActionNotAllowed in
// DefensivePosition, else nil.
func (s *Stance) CheckAttack() error {
	if !s.current.AllowsAttack() {
		return fmt.Errorf("attacking from %s: %w", s.current, rules.ErrActionNotAllowed)
	}
	return nil
}

// AttackMade records that the fighter attacked. A completed charge is spent
// and the stance returns to Normal.
func (s *Stance) AttackMade() {
	if s.current == Charge && s.chargeReady {
		s.chargeReady = false
		s.current = Normal
	}
}

// Active returns the modifiers currently granted. A pending charge grants none.
func (s *Stance) Active() Triple {
	if s.current == Charge && !s.chargeReady {
		return Triple{}
	}
	return s.current.Modifiers()
}

// AttackModifier implements modifier.Source.
func (s *Stance) AttackModifier() int { return s.Active().Attack }

// DefenseModifier implements modifier.Source.
func (s *Stance) DefenseModifier() int { return s.Active().Defense }

// DamageModifier implements modifier.Source.
func (s *Stance) DamageModifier() int { return s.Active().Damage }

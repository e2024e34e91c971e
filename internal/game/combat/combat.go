// Package combat resolves Steelkilt attack exchanges and runs two-fighter
// combat sessions on top of the rule packages.
package combat

import (
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/hitlocation"
	"github.com/cory-johannsen/steelkilt/internal/game/wound"
)

// DefenseChoice is how the defender meets an attack.
type DefenseChoice int

const (
	Parry DefenseChoice = iota
	Dodge
)

// String returns a human-readable defense label.
func (d DefenseChoice) String() string {
	switch d {
	case Parry:
		return "parry"
	case Dodge:
		return "dodge"
	default:
		return "unknown"
	}
}

// ParseDefenseChoice maps a label produced by String back to a DefenseChoice.
func ParseDefenseChoice(s string) (DefenseChoice, error) {
	switch s {
	case "parry":
		return Parry, nil
	case "dodge":
		return Dodge, nil
	}
	return 0, fmt.Errorf("unknown defense choice %q", s)
}

// Phase is a step of one exchange.
//
//	Idle -> AttackRolled -> DefenseRolled -> Miss
//	                                      -> DamageComputed -> WoundApplied
//	                                                        -> Dead
type Phase int

const (
	Idle Phase = iota
	AttackRolled
	DefenseRolled
	Miss
	DamageComputed
	WoundApplied
	Dead
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case AttackRolled:
		return "attack_rolled"
	case DefenseRolled:
		return "defense_rolled"
	case Miss:
		return "miss"
	case DamageComputed:
		return "damage_computed"
	case WoundApplied:
		return "wound_applied"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Terminal reports whether an exchange ends in p.
func (p Phase) Terminal() bool {
	return p == Miss || p == WoundApplied || p == Dead
}

// Result is the immutable outcome of one exchange.
type Result struct {
	Attacker string
	Defender string
	// AttackRoll and DefenseRoll are the d10 faces; the totals include skill and modifiers.
	AttackRoll   int
	DefenseRoll  int
	AttackTotal  int
	DefenseTotal int
	Defense      DefenseChoice
	Hit          bool
	// Damage is 0 on a miss and on a graze.
	Damage   int
	Severity wound.Severity
	Phase    Phase
	// Location is set when the exchange was resolved with hit locations.
	Location     *hitlocation.Hit
	DefenderDied bool
	Narrative    string
}

// Graze reports whether the attack landed without doing damage.
func (r Result) Graze() bool { return r.Hit && r.Damage == 0 }

// Damage computes raw damage for a landed attack:
// (attack - defense) + strength + weapon - protection, floored at 0.
//
// Postcondition: Returns >= 0.
func Damage(attack, defense, strength, weapon, protection int) int {
	d := attack - defense + strength + weapon - protection
	if d < 0 {
		return 0
	}
	return d
}

func narrate(r Result) string {
	if !r.Hit {
		return fmt.Sprintf("%s attacks %s (%d vs %d, %s): miss.", r.Attacker, r.Defender, r.AttackTotal, r.DefenseTotal, r.Defense)
	}
	where := ""
	if r.Location != nil {
		where = " to the " + r.Location.Location.String()
	}
	if r.Damage == 0 {
		return fmt.Sprintf("%s grazes %s%s (%d vs %d): no damage.", r.Attacker, r.Defender, where, r.AttackTotal, r.DefenseTotal)
	}
	s := fmt.Sprintf("%s hits %s%s (%d vs %d) for %d damage: %s wound.",
		r.Attacker, r.Defender, where, r.AttackTotal, r.DefenseTotal, r.Damage, r.Severity)
	if r.Location != nil && r.Location.Status == hitlocation.Severed {
		s += fmt.Sprintf(" The %s is severed.", r.Location.Location)
	}
	if r.DefenderDied {
		s += fmt.Sprintf(" %s is slain.", r.Defender)
	}
	return s
}

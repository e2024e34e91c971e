// Package character defines the combatant domain model and the validated
// construction entry point used by hosts that load character definitions.
package character

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/steelkilt/internal/game/modifier"
	"github.com/cory-johannsen/steelkilt/internal/game/wound"
)

// Attribute and skill bounds.
const (
	MinAttribute = 1
	MaxAttribute = 10
	MinSkill     = 0
	MaxSkill     = 10
)

// Attributes holds the nine Draft attribute scores, each in [1, 10].
type Attributes struct {
	// Physical
	Strength     int
	Dexterity    int
	Constitution int
	// Mental
	Reason    int
	Intuition int
	Willpower int
	// Interactive
	Charisma   int
	Perception int
	Empathy    int
}

// Stamina is the combined attribute (STR + CON) / 2, rounded half up.
func (a Attributes) Stamina() int {
	return (a.Strength + a.Constitution + 1) / 2
}

// fields pairs each attribute with its short label, in sheet order.
func (a Attributes) fields() []struct {
	label string
	value int
} {
	return []struct {
		label string
		value int
	}{
		{"STR", a.Strength}, {"DEX", a.Dexterity}, {"CON", a.Constitution},
		{"REA", a.Reason}, {"INT", a.Intuition}, {"WIL", a.Willpower},
		{"CHA", a.Charisma}, {"PER", a.Perception}, {"EMP", a.Empathy},
	}
}

// ByName returns the attribute named by its field name ("constitution") or
// its short label ("CON"), case-insensitively.
func (a Attributes) ByName(name string) (int, error) {
	for _, f := range a.fields() {
		if strings.EqualFold(name, f.label) || strings.EqualFold(AttributeName(strings.ToLower(name)), f.label) {
			return f.value, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", name)
}

// StrengthBonus returns the damage bonus granted by a strength score.
//
// Postcondition: +2 for STR >= 9, +1 for STR >= 7, -1 for STR <= 2, else 0.
func StrengthBonus(strength int) int {
	switch {
	case strength >= 9:
		return 2
	case strength >= 7:
		return 1
	case strength <= 2:
		return -1
	default:
		return 0
	}
}

// Combatant is one fighter: identity, attributes, combat skills, and the
// equipment and wounds it owns.
//
// Combatants are created once by Build and mutated in place by the combat
// layer; they are not safe for concurrent use.
type Combatant struct {
	Name        string
	Attributes  Attributes
	WeaponSkill int
	DodgeSkill  int
	Weapon      Weapon
	Armor       Armor
	Wounds      *wound.Wounds
}

// StrengthBonus returns the combatant's damage bonus from strength.
func (c *Combatant) StrengthBonus() int {
	return StrengthBonus(c.Attributes.Strength)
}

// Alive reports whether the combatant's wounds are not fatal.
func (c *Combatant) Alive() bool {
	return !c.Wounds.Dead()
}

// CanAct reports whether the combatant is alive and not incapacitated.
func (c *Combatant) CanAct() bool {
	return !c.Wounds.Incapacitated()
}

// Modifiers returns the sources every combatant contributes to its own rolls:
// its wounds and its armor's movement penalty.
func (c *Combatant) Modifiers() []modifier.Source {
	return []modifier.Source{c.Wounds, c.Armor}
}

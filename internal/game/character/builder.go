package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/rules"
	"github.com/cory-johannsen/steelkilt/internal/game/wound"
)

// BuildSpec carries already-parsed values for a new combatant. Hosts that load
// definitions from disk fill it in and surface their own parse errors first.
type BuildSpec struct {
	Name        string
	Attributes  Attributes
	WeaponSkill int
	DodgeSkill  int
	Weapon      Weapon
	Armor       Armor
}

// ConstructionError reports a value rejected by Build.
// It unwraps to rules.ErrInvalidAttribute, rules.ErrInvalidSkill, or
// rules.ErrInvalidEquipment.
type ConstructionError struct {
	Field string
	Value int
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("building combatant: %s=%d: %v", e.Field, e.Value, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Build validates spec and returns a new, unwounded Combatant.
//
// Precondition: none; every value is checked.
// Postcondition: Returns a Combatant with fresh Wounds, or a *ConstructionError
// naming the first offending attribute or skill, or an equipment error
// wrapping rules.ErrInvalidEquipment.
func Build(spec BuildSpec) (*Combatant, error) {
	if spec.Name == "" {
		return nil, errors.New("building combatant: name must not be empty")
	}
	for _, f := range spec.Attributes.fields() {
		if f.value < MinAttribute || f.value > MaxAttribute {
			return nil, &ConstructionError{Field: f.label, Value: f.value, Err: rules.ErrInvalidAttribute}
		}
	}
	if spec.WeaponSkill < MinSkill || spec.WeaponSkill > MaxSkill {
		return nil, &ConstructionError{Field: "weapon_skill", Value: spec.WeaponSkill, Err: rules.ErrInvalidSkill}
	}
	if spec.DodgeSkill < MinSkill || spec.DodgeSkill > MaxSkill {
		return nil, &ConstructionError{Field: "dodge_skill", Value: spec.DodgeSkill, Err: rules.ErrInvalidSkill}
	}
	if err := spec.Weapon.Validate(); err != nil {
		return nil, fmt.Errorf("building combatant %q: %w: %w", spec.Name, rules.ErrInvalidEquipment, err)
	}
	if err := spec.Armor.Validate(); err != nil {
		return nil, fmt.Errorf("building combatant %q: %w: %w", spec.Name, rules.ErrInvalidEquipment, err)
	}

	return &Combatant{
		Name:        spec.Name,
		Attributes:  spec.Attributes,
		WeaponSkill: spec.WeaponSkill,
		DodgeSkill:  spec.DodgeSkill,
		Weapon:      spec.Weapon,
		Armor:       spec.Armor,
		Wounds:      wound.New(),
	}, nil
}

// AttributeName returns the short display label for an attribute field name.
func AttributeName(field string) string {
	names := map[string]string{
		"strength":     "STR",
		"dexterity":    "DEX",
		"constitution": "CON",
		"reason":       "REA",
		"intuition":    "INT",
		"willpower":    "WIL",
		"charisma":     "CHA",
		"perception":   "PER",
		"empathy":      "EMP",
	}
	if n, ok := names[field]; ok {
		return n
	}
	return fmt.Sprintf("<%s>", field)
}

package character

import (
	"errors"
	"fmt"
)

// Impact is a weapon's size class. Higher impact means more base damage.
type Impact int

const (
	ImpactSmall Impact = iota + 1
	ImpactMedium
	ImpactLarge
	ImpactHuge
)

// String returns a human-readable impact label.
func (i Impact) String() string {
	switch i {
	case ImpactSmall:
		return "small"
	case ImpactMedium:
		return "medium"
	case ImpactLarge:
		return "large"
	case ImpactHuge:
		return "huge"
	default:
		return "unknown"
	}
}

// ParseImpact maps a label produced by String back to an Impact.
func ParseImpact(s string) (Impact, error) {
	for i := ImpactSmall; i <= ImpactHuge; i++ {
		if i.String() == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown weapon impact %q", s)
}

// Weapon damage bounds.
const (
	MinWeaponDamage = 3
	MaxWeaponDamage = 9
)

// Weapon is a melee weapon.
type Weapon struct {
	Name   string
	Impact Impact
	Damage int
}

// NewWeapon returns a pointed weapon whose damage is derived as impact*2+1.
func NewWeapon(name string, impact Impact) Weapon {
	return Weapon{Name: name, Impact: impact, Damage: int(impact)*2 + 1}
}

// WithDamage returns a copy of w with an explicitly overridden damage value.
func (w Weapon) WithDamage(damage int) Weapon {
	w.Damage = damage
	return w
}

// Validate checks that the weapon satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (w Weapon) Validate() error {
	var errs []error
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if w.Impact < ImpactSmall || w.Impact > ImpactHuge {
		errs = append(errs, fmt.Errorf("impact %d out of range", w.Impact))
	}
	if w.Damage < MinWeaponDamage || w.Damage > MaxWeaponDamage {
		errs = append(errs, fmt.Errorf("damage %d outside [%d, %d]", w.Damage, MinWeaponDamage, MaxWeaponDamage))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q: %w", w.Name, errors.Join(errs...))
	}
	return nil
}

// Dagger returns the standard dagger.
func Dagger() Weapon { return NewWeapon("Dagger", ImpactSmall) }

// LongSword returns the standard long sword.
func LongSword() Weapon { return NewWeapon("Long Sword", ImpactMedium) }

// TwoHandedSword returns the standard two-handed sword.
func TwoHandedSword() Weapon { return NewWeapon("Two-Handed Sword", ImpactLarge) }

// ArmorType is an armor category, ordered from lightest to heaviest.
type ArmorType int

const (
	ArmorHeavyCloth ArmorType = iota + 1
	ArmorLeather
	ArmorChain
	ArmorPlate
	ArmorFullPlate
)

// String returns a human-readable armor category label.
func (t ArmorType) String() string {
	switch t {
	case ArmorHeavyCloth:
		return "heavy_cloth"
	case ArmorLeather:
		return "leather"
	case ArmorChain:
		return "chain"
	case ArmorPlate:
		return "plate"
	case ArmorFullPlate:
		return "full_plate"
	default:
		return "unknown"
	}
}

// ParseArmorType maps a label produced by String back to an ArmorType.
func ParseArmorType(s string) (ArmorType, error) {
	for t := ArmorHeavyCloth; t <= ArmorFullPlate; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown armor type %q", s)
}

// Armor bounds.
const (
	MinProtection      = 0
	MaxProtection      = 5
	MinMovementPenalty = -2
)

// Armor is worn protection. MovementPenalty is applied to every attack,
// parry, and dodge roll of the wearer.
type Armor struct {
	Name            string
	Type            ArmorType
	Protection      int
	MovementPenalty int
}

// NewArmor returns armor whose protection equals its category value.
func NewArmor(name string, t ArmorType, movementPenalty int) Armor {
	return Armor{Name: name, Type: t, Protection: int(t), MovementPenalty: movementPenalty}
}

// NoArmor returns the unarmored state: protection 0, no penalty.
func NoArmor() Armor {
	return Armor{Name: "None", Type: ArmorHeavyCloth}
}

// Leather returns standard leather armor.
func Leather() Armor { return NewArmor("Leather Armor", ArmorLeather, 0) }

// ChainMail returns standard chain mail.
func ChainMail() Armor { return NewArmor("Chain Mail", ArmorChain, -1) }

// Plate returns standard plate armor.
func Plate() Armor { return NewArmor("Plate Armor", ArmorPlate, -1) }

// Validate checks that the armor satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (a Armor) Validate() error {
	var errs []error
	if a.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if a.Type < ArmorHeavyCloth || a.Type > ArmorFullPlate {
		errs = append(errs, fmt.Errorf("type %d out of range", a.Type))
	}
	if a.Protection < MinProtection || a.Protection > MaxProtection {
		errs = append(errs, fmt.Errorf("protection %d outside [%d, %d]", a.Protection, MinProtection, MaxProtection))
	}
	if a.MovementPenalty < MinMovementPenalty || a.MovementPenalty > 0 {
		errs = append(errs, fmt.Errorf("movement penalty %d not in {0, -1, -2}", a.MovementPenalty))
	}
	if len(errs) > 0 {
		return fmt.Errorf("armor %q: %w", a.Name, errors.Join(errs...))
	}
	return nil
}

// AttackModifier implements modifier.Source with the armor's movement penalty.
func (a Armor) AttackModifier() int { return a.MovementPenalty }

// DefenseModifier implements modifier.Source with the armor's movement penalty.
func (a Armor) DefenseModifier() int { return a.MovementPenalty }

// DamageModifier implements modifier.Source. Armor protection is applied by
// the resolver against incoming damage, not as a modifier.
func (a Armor) DamageModifier() int { return 0 }

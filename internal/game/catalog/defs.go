// Package catalog provides content definitions and loaders for the weapons,
// armor, ranged weapons, spells and skills that hosts equip combatants with.
package catalog

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/character"
	"github.com/cory-johannsen/steelkilt/internal/game/magic"
	"github.com/cory-johannsen/steelkilt/internal/game/ranged"
	"github.com/cory-johannsen/steelkilt/internal/game/skill"
)

// Document is the content of one catalog file. Every section is optional.
type Document struct {
	Weapons []*WeaponDef `yaml:"weapons" toml:"weapons"`
	Armor   []*ArmorDef  `yaml:"armor"   toml:"armor"`
	Ranged  []*RangedDef `yaml:"ranged"  toml:"ranged"`
	Spells  []*SpellDef  `yaml:"spells"  toml:"spells"`
	Skills  []*SkillDef  `yaml:"skills"  toml:"skills"`
}

// WeaponDef defines a melee weapon.
type WeaponDef struct {
	ID     string `yaml:"id"     toml:"id"`
	Name   string `yaml:"name"   toml:"name"`
	Impact string `yaml:"impact" toml:"impact"`
	// Damage overrides the value derived from Impact when non-zero.
	Damage int `yaml:"damage" toml:"damage"`
}

// Weapon converts the definition into a validated character.Weapon.
//
// Postcondition: returns an error iff the definition is invalid.
func (d *WeaponDef) Weapon() (character.Weapon, error) {
	impact, err := character.ParseImpact(d.Impact)
	if err != nil {
		return character.Weapon{}, fmt.Errorf("weapon %q: %w", d.ID, err)
	}
	w := character.NewWeapon(d.Name, impact)
	if d.Damage != 0 {
		w = w.WithDamage(d.Damage)
	}
	if err := w.Validate(); err != nil {
		return character.Weapon{}, err
	}
	return w, nil
}

// Validate checks that the WeaponDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *WeaponDef) Validate() error {
	if d.ID == "" {
		return errors.New("weapon ID must not be empty")
	}
	_, err := d.Weapon()
	return err
}

// ArmorDef defines a suit of armor.
type ArmorDef struct {
	ID   string `yaml:"id"   toml:"id"`
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
	// Protection overrides the category value when set.
	Protection      *int `yaml:"protection"       toml:"protection"`
	MovementPenalty int  `yaml:"movement_penalty" toml:"movement_penalty"`
}

// Armor converts the definition into a validated character.Armor.
//
// Postcondition: returns an error iff the definition is invalid.
func (d *ArmorDef) Armor() (character.Armor, error) {
	t, err := character.ParseArmorType(d.Type)
	if err != nil {
		return character.Armor{}, fmt.Errorf("armor %q: %w", d.ID, err)
	}
	a := character.NewArmor(d.Name, t, d.MovementPenalty)
	if d.Protection != nil {
		a.Protection = *d.Protection
	}
	if err := a.Validate(); err != nil {
		return character.Armor{}, err
	}
	return a, nil
}

// Validate checks that the ArmorDef satisfies its invariants.
func (d *ArmorDef) Validate() error {
	if d.ID == "" {
		return errors.New("armor ID must not be empty")
	}
	_, err := d.Armor()
	return err
}

// RangedDef defines a ranged weapon. Distances are in meters.
type RangedDef struct {
	ID              string `yaml:"id"               toml:"id"`
	Name            string `yaml:"name"             toml:"name"`
	Damage          int    `yaml:"damage"           toml:"damage"`
	PointBlank      int    `yaml:"point_blank"      toml:"point_blank"`
	MaxRange        int    `yaml:"max_range"        toml:"max_range"`
	RangeIncrement  int    `yaml:"range_increment"  toml:"range_increment"`
	PreparationTime int    `yaml:"preparation_time" toml:"preparation_time"`
	RateOfFire      int    `yaml:"rate_of_fire"     toml:"rate_of_fire"`
}

// Weapon converts the definition into a validated ranged.Weapon.
func (d *RangedDef) Weapon() (ranged.Weapon, error) {
	w := ranged.Weapon{
		Name:            d.Name,
		Damage:          d.Damage,
		PointBlank:      d.PointBlank,
		MaxRange:        d.MaxRange,
		RangeIncrement:  d.RangeIncrement,
		PreparationTime: d.PreparationTime,
		RateOfFire:      d.RateOfFire,
	}
	if err := w.Validate(); err != nil {
		return ranged.Weapon{}, err
	}
	return w, nil
}

// Validate checks that the RangedDef satisfies its invariants.
func (d *RangedDef) Validate() error {
	if d.ID == "" {
		return errors.New("ranged weapon ID must not be empty")
	}
	_, err := d.Weapon()
	return err
}

// SpellDef defines a spell.
type SpellDef struct {
	ID         string `yaml:"id"         toml:"id"`
	Name       string `yaml:"name"       toml:"name"`
	Branch     string `yaml:"branch"     toml:"branch"`
	Difficulty string `yaml:"difficulty" toml:"difficulty"`
	// Power defaults from Difficulty when unset.
	Power           *int `yaml:"power"            toml:"power"`
	PreparationTime int  `yaml:"preparation_time" toml:"preparation_time"`
	CastingTime     int  `yaml:"casting_time"     toml:"casting_time"`
}

// Spell converts the definition into a magic.Spell.
//
// Postcondition: returns an error iff the definition is invalid.
func (d *SpellDef) Spell() (magic.Spell, error) {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	b, err := magic.ParseBranch(d.Branch)
	if err != nil {
		errs = append(errs, err)
	}
	diff, err := magic.ParseDifficulty(d.Difficulty)
	if err != nil {
		errs = append(errs, err)
	}
	if d.Power != nil && *d.Power < 0 {
		errs = append(errs, fmt.Errorf("power %d must be >= 0", *d.Power))
	}
	if d.PreparationTime < 0 || d.CastingTime < 0 {
		errs = append(errs, errors.New("times must be >= 0"))
	}
	if len(errs) > 0 {
		return magic.Spell{}, fmt.Errorf("spell %q: %w", d.ID, errors.Join(errs...))
	}
	s := magic.NewSpell(d.Name, b, diff)
	if d.Power != nil {
		s.Power = *d.Power
	}
	s.PreparationTime = d.PreparationTime
	s.CastingTime = d.CastingTime
	return s, nil
}

// Validate checks that the SpellDef satisfies its invariants.
func (d *SpellDef) Validate() error {
	if d.ID == "" {
		return errors.New("spell ID must not be empty")
	}
	_, err := d.Spell()
	return err
}

// PrerequisiteDef references another skill by ID.
type PrerequisiteDef struct {
	Skill    string `yaml:"skill"     toml:"skill"`
	MinLevel int    `yaml:"min_level" toml:"min_level"`
}

// SkillDef defines a learnable skill governed by one attribute.
type SkillDef struct {
	ID            string            `yaml:"id"            toml:"id"`
	Name          string            `yaml:"name"          toml:"name"`
	Attribute     string            `yaml:"attribute"     toml:"attribute"`
	Difficulty    string            `yaml:"difficulty"    toml:"difficulty"`
	Prerequisites []PrerequisiteDef `yaml:"prerequisites" toml:"prerequisites"`
}

// Validate checks the fields that do not depend on other definitions.
func (d *SkillDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, err := (character.Attributes{}).ByName(d.Attribute); err != nil {
		errs = append(errs, err)
	}
	if _, err := skill.ParseDifficulty(d.Difficulty); err != nil {
		errs = append(errs, err)
	}
	for _, p := range d.Prerequisites {
		if p.Skill == "" {
			errs = append(errs, errors.New("prerequisite skill must not be empty"))
		}
		if p.MinLevel < 1 || p.MinLevel > skill.MaxLevel {
			errs = append(errs, fmt.Errorf("prerequisite %q level %d outside [1, %d]", p.Skill, p.MinLevel, skill.MaxLevel))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("skill %q: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

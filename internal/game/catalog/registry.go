package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/steelkilt/internal/game/character"
	"github.com/cory-johannsen/steelkilt/internal/game/rules"
	"github.com/cory-johannsen/steelkilt/internal/game/skill"
)

// Registry holds all loaded definitions indexed by ID.
type Registry struct {
	weapons map[string]*WeaponDef
	armor   map[string]*ArmorDef
	ranged  map[string]*RangedDef
	spells  map[string]*SpellDef
	skills  map[string]*SkillDef
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		weapons: make(map[string]*WeaponDef),
		armor:   make(map[string]*ArmorDef),
		ranged:  make(map[string]*RangedDef),
		spells:  make(map[string]*SpellDef),
		skills:  make(map[string]*SkillDef),
	}
}

// RegisterWeapon adds d to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Weapon(d.ID) returns d; returns error if d.ID already registered.
func (r *Registry) RegisterWeapon(d *WeaponDef) error {
	if _, exists := r.weapons[d.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterWeapon: weapon ID %q already registered", d.ID)
	}
	r.weapons[d.ID] = d
	return nil
}

// RegisterArmor adds d to the registry.
//
// Precondition:  d must not be nil.
// Postcondition: Armor(d.ID) returns d; returns error if d.ID already registered.
func (r *Registry) RegisterArmor(d *ArmorDef) error {
	if _, exists := r.armor[d.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterArmor: armor ID %q already registered", d.ID)
	}
	r.armor[d.ID] = d
	return nil
}

// RegisterRanged adds d to the registry.
//
// Precondition:  d must not be nil.
func (r *Registry) RegisterRanged(d *RangedDef) error {
	if _, exists := r.ranged[d.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterRanged: ranged weapon ID %q already registered", d.ID)
	}
	r.ranged[d.ID] = d
	return nil
}

// RegisterSpell adds d to the registry.
//
// Precondition:  d must not be nil.
func (r *Registry) RegisterSpell(d *SpellDef) error {
	if _, exists := r.spells[d.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterSpell: spell ID %q already registered", d.ID)
	}
	r.spells[d.ID] = d
	return nil
}

// RegisterSkill adds d to the registry. Prerequisites are checked by Check.
//
// Precondition:  d must not be nil.
func (r *Registry) RegisterSkill(d *SkillDef) error {
	if _, exists := r.skills[d.ID]; exists {
		return fmt.Errorf("catalog: Registry.RegisterSkill: skill ID %q already registered", d.ID)
	}
	r.skills[d.ID] = d
	return nil
}

// Register adds every definition in doc, stopping at the first duplicate.
func (r *Registry) Register(doc *Document) error {
	for _, d := range doc.Weapons {
		if err := r.RegisterWeapon(d); err != nil {
			return err
		}
	}
	for _, d := range doc.Armor {
		if err := r.RegisterArmor(d); err != nil {
			return err
		}
	}
	for _, d := range doc.Ranged {
		if err := r.RegisterRanged(d); err != nil {
			return err
		}
	}
	for _, d := range doc.Spells {
		if err := r.RegisterSpell(d); err != nil {
			return err
		}
	}
	for _, d := range doc.Skills {
		if err := r.RegisterSkill(d); err != nil {
			return err
		}
	}
	return nil
}

// Weapon returns the WeaponDef for the given id, or nil if not found.
func (r *Registry) Weapon(id string) *WeaponDef { return r.weapons[id] }

// Armor returns the ArmorDef for the given id, or nil if not found.
func (r *Registry) Armor(id string) *ArmorDef { return r.armor[id] }

// Ranged returns the RangedDef for the given id, or nil if not found.
func (r *Registry) Ranged(id string) *RangedDef { return r.ranged[id] }

// Spell returns the SpellDef for the given id, or nil if not found.
func (r *Registry) Spell(id string) *SpellDef { return r.spells[id] }

// SkillDef returns the SkillDef for the given id, or nil if not found.
func (r *Registry) SkillDef(id string) *SkillDef { return r.skills[id] }

// Skill builds the level-0 skill id for a combatant with attrs, resolving
// prerequisite IDs to skill names.
//
// Postcondition: returns an error if id or any prerequisite is unknown.
func (r *Registry) Skill(id string, attrs character.Attributes) (skill.Skill, error) {
	d, ok := r.skills[id]
	if !ok {
		return skill.Skill{}, fmt.Errorf("skill %q: %w", id, rules.ErrUnknownSkill)
	}
	attr, err := attrs.ByName(d.Attribute)
	if err != nil {
		return skill.Skill{}, fmt.Errorf("skill %q: %w", id, err)
	}
	diff, err := skill.ParseDifficulty(d.Difficulty)
	if err != nil {
		return skill.Skill{}, fmt.Errorf("skill %q: %w", id, err)
	}
	s := skill.New(d.Name, attr, diff)
	for _, p := range d.Prerequisites {
		req, ok := r.skills[p.Skill]
		if !ok {
			return skill.Skill{}, fmt.Errorf("skill %q requires %q: %w", id, p.Skill, rules.ErrUnknownSkill)
		}
		s = s.Requires(req.Name, p.MinLevel)
	}
	return s, nil
}

// Check verifies cross-references between definitions: every skill
// prerequisite must name a registered skill other than itself.
//
// Postcondition: returns nil iff all references resolve.
func (r *Registry) Check() error {
	var errs []error
	for _, id := range sortedKeys(r.skills) {
		for _, p := range r.skills[id].Prerequisites {
			if p.Skill == id {
				errs = append(errs, fmt.Errorf("skill %q requires itself", id))
				continue
			}
			if _, ok := r.skills[p.Skill]; !ok {
				errs = append(errs, fmt.Errorf("skill %q requires unknown skill %q", id, p.Skill))
			}
		}
	}
	return errors.Join(errs...)
}

// WeaponIDs returns every registered weapon ID in sorted order.
func (r *Registry) WeaponIDs() []string { return sortedKeys(r.weapons) }

// ArmorIDs returns every registered armor ID in sorted order.
func (r *Registry) ArmorIDs() []string { return sortedKeys(r.armor) }

// RangedIDs returns every registered ranged weapon ID in sorted order.
func (r *Registry) RangedIDs() []string { return sortedKeys(r.ranged) }

// SpellIDs returns every registered spell ID in sorted order.
func (r *Registry) SpellIDs() []string { return sortedKeys(r.spells) }

// SkillIDs returns every registered skill ID in sorted order.
func (r *Registry) SkillIDs() []string { return sortedKeys(r.skills) }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/steelkilt/internal/game/catalog"
	"github.com/cory-johannsen/steelkilt/internal/game/character"
	"github.com/cory-johannsen/steelkilt/internal/game/combat"
	"github.com/cory-johannsen/steelkilt/internal/game/magic"
	"github.com/cory-johannsen/steelkilt/internal/game/ranged"
	"github.com/cory-johannsen/steelkilt/internal/game/skill"
)

// defaultAttribute fills attributes a fighter flag leaves out.
const defaultAttribute = 5

// defaultSkillPoints is the training budget for the skills key.
const defaultSkillPoints = 40

// entrant is one fighter as described on the command line:
//
//	Name:str=9,con=6,skill=8,dodge=3,weapon=long_sword,armor=chain
//
// Keys: the nine attribute labels (str, dex, con, rea, int, wil, cha, per,
// emp) or their full names, skill, dodge, weapon, armor, defense,
// ranged, ranged_skill, distance, spell, lore, script, points and skills.
// skills lists catalog skill IDs with target levels, trained in order:
//
//	skills=sword:6+riposte:3
type entrant struct {
	name        string
	attrs       character.Attributes
	skill       int
	dodge       int
	weapon      string
	armor       string
	defense     string
	ranged      string
	rangedSkill int
	distance    int
	spell       string
	lore        int
	script      string
	points      int
	skills      string
}

func parseEntrant(s string) (entrant, error) {
	name, rest, _ := strings.Cut(s, ":")
	e := entrant{
		name:     strings.TrimSpace(name),
		skill:    defaultAttribute,
		dodge:    defaultAttribute,
		defense:  "parry",
		distance: 20,
		points:   defaultSkillPoints,
	}
	if e.name == "" {
		return entrant{}, fmt.Errorf("fighter %q: missing name", s)
	}
	attrs := map[string]*int{
		"str": &e.attrs.Strength, "dex": &e.attrs.Dexterity, "con": &e.attrs.Constitution,
		"rea": &e.attrs.Reason, "int": &e.attrs.Intuition, "wil": &e.attrs.Willpower,
		"cha": &e.attrs.Charisma, "per": &e.attrs.Perception, "emp": &e.attrs.Empathy,
	}
	for _, p := range attrs {
		*p = defaultAttribute
	}
	ints := map[string]*int{
		"skill": &e.skill, "dodge": &e.dodge, "ranged_skill": &e.rangedSkill,
		"distance": &e.distance, "lore": &e.lore, "points": &e.points,
	}
	strs := map[string]*string{
		"weapon": &e.weapon, "armor": &e.armor, "defense": &e.defense,
		"ranged": &e.ranged, "spell": &e.spell, "script": &e.script,
		"skills": &e.skills,
	}

	if strings.TrimSpace(rest) == "" {
		return e, nil
	}
	for _, kv := range strings.Split(rest, ",") {
		key, val, ok := strings.Cut(kv, "=")
		key, val = strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(val)
		if !ok || key == "" {
			return entrant{}, fmt.Errorf("fighter %q: malformed %q", e.name, kv)
		}
		if short := character.AttributeName(key); !strings.HasPrefix(short, "<") {
			key = strings.ToLower(short)
		}
		switch {
		case attrs[key] != nil:
			n, err := strconv.Atoi(val)
			if err != nil {
				return entrant{}, fmt.Errorf("fighter %q: %s: %w", e.name, key, err)
			}
			*attrs[key] = n
		case ints[key] != nil:
			n, err := strconv.Atoi(val)
			if err != nil {
				return entrant{}, fmt.Errorf("fighter %q: %s: %w", e.name, key, err)
			}
			*ints[key] = n
		case strs[key] != nil:
			*strs[key] = val
		default:
			return entrant{}, fmt.Errorf("fighter %q: unknown key %q", e.name, key)
		}
	}
	return e, nil
}

// contender is a built fighter together with the tactic that drives it:
// ready and loose a ranged weapon if carried, open with the known spell
// once, else attack.
type contender struct {
	*combat.Fighter
	spell    *magic.Spell
	distance int
	script   string
	cast     bool
}

// next picks the contender's action for the coming round.
func (c *contender) next() combat.Action {
	switch {
	case c.spell != nil && !c.cast:
		c.cast = true
		return combat.Cast(*c.spell)
	case c.Ranged != nil && !c.Ranged.State.Prepared():
		return combat.Prepare()
	case c.Ranged != nil:
		return combat.Shoot(c.distance)
	default:
		return combat.Attack()
	}
}

// build turns the entrant into a contender using the catalog.
// Scripts are attached by the caller once both fighters exist.
func (e entrant) build(reg *catalog.Registry) (*contender, error) {
	weapon := character.LongSword()
	if e.weapon != "" {
		d := reg.Weapon(e.weapon)
		if d == nil {
			return nil, fmt.Errorf("fighter %q: unknown weapon %q", e.name, e.weapon)
		}
		w, err := d.Weapon()
		if err != nil {
			return nil, err
		}
		weapon = w
	}
	armor := character.NoArmor()
	if e.armor != "" {
		d := reg.Armor(e.armor)
		if d == nil {
			return nil, fmt.Errorf("fighter %q: unknown armor %q", e.name, e.armor)
		}
		a, err := d.Armor()
		if err != nil {
			return nil, err
		}
		armor = a
	}

	c, err := character.Build(character.BuildSpec{
		Name:        e.name,
		Attributes:  e.attrs,
		WeaponSkill: e.skill,
		DodgeSkill:  e.dodge,
		Weapon:      weapon,
		Armor:       armor,
	})
	if err != nil {
		return nil, err
	}
	f := combat.NewFighter(c)
	if f.Defense, err = combat.ParseDefenseChoice(e.defense); err != nil {
		return nil, fmt.Errorf("fighter %q: %w", e.name, err)
	}
	out := &contender{Fighter: f, distance: e.distance, script: e.script}

	if e.skills != "" {
		if f.Skills, err = e.train(reg); err != nil {
			return nil, err
		}
	}

	if e.ranged != "" {
		d := reg.Ranged(e.ranged)
		if d == nil {
			return nil, fmt.Errorf("fighter %q: unknown ranged weapon %q", e.name, e.ranged)
		}
		w, err := d.Weapon()
		if err != nil {
			return nil, err
		}
		f.Ranged = &combat.RangedKit{Weapon: w, Skill: e.rangedSkill, State: ranged.NewState()}
	}

	if e.spell != "" {
		d := reg.Spell(e.spell)
		if d == nil {
			return nil, fmt.Errorf("fighter %q: unknown spell %q", e.name, e.spell)
		}
		sp, err := d.Spell()
		if err != nil {
			return nil, err
		}
		f.Magic = magic.NewUser(e.attrs.Empathy)
		f.Magic.AddLore(sp.Branch, e.lore)
		if err := f.Magic.Learn(sp, e.lore); err != nil {
			return nil, fmt.Errorf("fighter %q: %w", e.name, err)
		}
		out.spell = &sp
	}
	return out, nil
}

// train builds the entrant's skill set from the catalog, raising each listed
// skill to its target level in order. A skill whose prerequisites are listed
// later fails to train.
func (e entrant) train(reg *catalog.Registry) (*skill.Set, error) {
	set := skill.NewSet(e.points)
	for _, item := range strings.Split(e.skills, "+") {
		id, lvl, ok := strings.Cut(strings.TrimSpace(item), ":")
		level := 1
		if ok {
			n, err := strconv.Atoi(lvl)
			if err != nil {
				return nil, fmt.Errorf("fighter %q: skill %q: %w", e.name, id, err)
			}
			level = n
		}
		sk, err := reg.Skill(id, e.attrs)
		if err != nil {
			return nil, fmt.Errorf("fighter %q: %w", e.name, err)
		}
		if err := set.Add(sk); err != nil {
			return nil, fmt.Errorf("fighter %q: %w", e.name, err)
		}
		for set.Level(sk.Name) < level {
			if err := set.Raise(sk.Name); err != nil {
				return nil, fmt.Errorf("fighter %q: %w", e.name, err)
			}
		}
	}
	return set, nil
}

// skillSheet lists the fighter's trained skills as "Name level".
func (c *contender) skillSheet() []string {
	if c.Skills == nil {
		return nil
	}
	var out []string
	for _, n := range c.Skills.Names() {
		out = append(out, fmt.Sprintf("%s %d", n, c.Skills.Level(n)))
	}
	return out
}

func (c *contender) skillPoints() int {
	if c.Skills == nil {
		return 0
	}
	return c.Skills.Points()
}

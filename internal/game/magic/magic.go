// Package magic implements branch lore, spell learning, casting checks and
// magical exhaustion.
package magic

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/steelkilt/internal/game/dice"
	"github.com/cory-johannsen/steelkilt/internal/game/exhaustion"
	"github.com/cory-johannsen/steelkilt/internal/game/rules"
	"github.com/cory-johannsen/steelkilt/internal/game/skill"
)

// Branch is a school of magic.
type Branch int

const (
	Alchemy Branch = iota
	Animation
	Conjuration
	Divination
	Elementalism
	Mentalism
	Necromancy
	Thaumaturgy
	Transportation
)

// Branches lists every branch in alphabetical order.
var Branches = []Branch{
	Alchemy, Animation, Conjuration, Divination, Elementalism,
	Mentalism, Necromancy, Thaumaturgy, Transportation,
}

// String returns a human-readable branch label.
func (b Branch) String() string {
	switch b {
	case Alchemy:
		return "alchemy"
	case Animation:
		return "animation"
	case Conjuration:
		return "conjuration"
	case Divination:
		return "divination"
	case Elementalism:
		return "elementalism"
	case Mentalism:
		return "mentalism"
	case Necromancy:
		return "necromancy"
	case Thaumaturgy:
		return "thaumaturgy"
	case Transportation:
		return "transportation"
	default:
		return "unknown"
	}
}

// ParseBranch maps a label produced by String back to a Branch.
func ParseBranch(s string) (Branch, error) {
	for _, b := range Branches {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown magic branch %q", s)
}

// LoreDifficulty returns how hard the branch's lore is to study.
func (b Branch) LoreDifficulty() skill.Difficulty {
	switch b {
	case Divination:
		return skill.Normal
	case Conjuration, Elementalism, Necromancy, Transportation:
		return skill.VeryHard
	default:
		return skill.Hard
	}
}

// Difficulty is a spell's casting difficulty.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// String returns a human-readable difficulty label.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a label produced by String back to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Easy; d <= Hard; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown spell difficulty %q", s)
}

// Target returns the casting target number: 8, 10 or 12.
func (d Difficulty) Target() int {
	switch d {
	case Easy:
		return 8
	case Hard:
		return 12
	default:
		return 10
	}
}

// DefaultPower returns the exhaustion cost of a spell of difficulty d when
// none is configured: 1, 2 or 3.
func (d Difficulty) DefaultPower() int { return int(d) + 1 }

// Spell is a castable spell definition.
type Spell struct {
	Name       string
	Branch     Branch
	Difficulty Difficulty
	// Power is the magical exhaustion added by every cast.
	Power int
	// PreparationTime is in minutes, CastingTime in segments.
	PreparationTime int
	CastingTime     int
}

// NewSpell returns a spell whose power defaults from its difficulty.
func NewSpell(name string, b Branch, d Difficulty) Spell {
	return Spell{Name: name, Branch: b, Difficulty: d, Power: d.DefaultPower()}
}

// Casting is the outcome of one casting attempt.
type Casting struct {
	Spell   string
	Roll    int
	Total   int
	Target  int
	Success bool
	// Quality is the margin above target, 0 on failure.
	Quality int
	// Exhaustion is the magical exhaustion added by this cast.
	Exhaustion int
}

type learned struct {
	spell Spell
	level int
}

// User is one spellcaster. It is not safe for concurrent use.
type User struct {
	empathy    int
	lore       map[Branch]int
	spells     map[string]learned
	exhaustion int
}

// NewUser returns a caster with no lore and no spells.
//
// Precondition: empathy in [1, 10].
func NewUser(empathy int) *User {
	return &User{empathy: empathy, lore: make(map[Branch]int), spells: make(map[string]learned)}
}

// Empathy returns the caster's empathy score.
func (u *User) Empathy() int { return u.empathy }

// AddLore sets the caster's lore level in b.
func (u *User) AddLore(b Branch, level int) {
	if level <= 0 {
		delete(u.lore, b)
		return
	}
	u.lore[b] = level
}

// Lore returns the caster's lore level in b, 0 if none.
func (u *User) Lore(b Branch) int { return u.lore[b] }

// LoreCost returns the cost of raising lore in b from one level to another.
// Levels up to empathy cost 1 each; beyond it each level costs its distance
// above empathy. Both scale with the branch's lore difficulty.
//
// Postcondition: Returns 0 when to <= from.
func (u *User) LoreCost(b Branch, from, to int) int {
	m := b.LoreDifficulty().Multiplier()
	total := 0
	for level := from + 1; level <= to; level++ {
		base := 1
		if level > u.empathy {
			base = level - u.empathy
		}
		total += base * m
	}
	return total
}

// Learn records spell at skill level. Relearning replaces the previous level.
//
// Postcondition: Returns an error wrapping rules.ErrInsufficientLore when the
// caster has no lore in the spell's branch or level exceeds it.
func (u *User) Learn(spell Spell, level int) error {
	lore := u.lore[spell.Branch]
	if lore == 0 {
		return fmt.Errorf("learning %q: no %s lore: %w", spell.Name, spell.Branch, rules.ErrInsufficientLore)
	}
	if level > lore {
		return fmt.Errorf("learning %q at %d with %s lore %d: %w", spell.Name, level, spell.Branch, lore, rules.ErrInsufficientLore)
	}
	u.spells[spell.Name] = learned{spell: spell, level: level}
	return nil
}

// SpellLevel returns the skill level of a learned spell.
func (u *User) SpellLevel(name string) (int, bool) {
	l, ok := u.spells[name]
	return l.level, ok
}

// Spells returns learned spell names in sorted order.
func (u *User) Spells() []string {
	names := make([]string, 0, len(u.spells))
	for n := range u.spells {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Cast rolls skill + empathy + d10 against the spell's target.
// Magical exhaustion increases by the spell's power whether or not it succeeds.
//
// Postcondition: on error no die is drawn and exhaustion is unchanged; the
// error wraps rules.ErrInsufficientLore without lore in the branch, or
// rules.ErrSpellUnknown if the spell was never learned.
func (u *User) Cast(spell Spell, src dice.Source) (Casting, error) {
	if u.lore[spell.Branch] == 0 {
		return Casting{}, fmt.Errorf("casting %q: no %s lore: %w", spell.Name, spell.Branch, rules.ErrInsufficientLore)
	}
	l, ok := u.spells[spell.Name]
	if !ok {
		return Casting{}, fmt.Errorf("casting %q: %w", spell.Name, rules.ErrSpellUnknown)
	}
	return u.resolve(l, dice.D10(src)), nil
}

func (u *User) resolve(l learned, roll int) Casting {
	c := Casting{
		Spell:      l.spell.Name,
		Roll:       roll,
		Total:      l.level + u.empathy + roll,
		Target:     l.spell.Difficulty.Target(),
		Exhaustion: l.spell.Power,
	}
	c.Success = c.Total >= c.Target
	if c.Success {
		c.Quality = c.Total - c.Target
	}
	u.exhaustion += l.spell.Power
	return c
}

// Exhaustion returns accumulated magical exhaustion points.
func (u *User) Exhaustion() int { return u.exhaustion }

// Recover removes one point of magical exhaustion per hour of rest.
//
// Postcondition: Exhaustion() >= 0.
func (u *User) Recover(hours int) {
	if hours <= 0 {
		return
	}
	u.exhaustion -= hours
	if u.exhaustion < 0 {
		u.exhaustion = 0
	}
}

// ExhaustionLevel bands magical exhaustion against empathy.
func (u *User) ExhaustionLevel() exhaustion.Level {
	return exhaustion.LevelFor(u.exhaustion, u.empathy)
}

// Penalty returns the roll penalty from magical exhaustion.
func (u *User) Penalty() int { return u.ExhaustionLevel().Penalty() }

// AttackModifier implements modifier.Source.
func (u *User) AttackModifier() int { return u.Penalty() }

// DefenseModifier implements modifier.Source.
func (u *User) DefenseModifier() int { return u.Penalty() }

// DamageModifier implements modifier.Source.
func (u *User) DamageModifier() int { return 0 }

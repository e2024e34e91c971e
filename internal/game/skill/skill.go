// Package skill implements learnable skills, their cost curve relative to a
// governing attribute, prerequisite chains, and the skill-point budget.
package skill

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/steelkilt/internal/game/rules"
)

// MaxLevel is the highest level any skill can reach.
const MaxLevel = 10

// Difficulty is how hard a skill is to learn.
type Difficulty int

const (
	Normal Difficulty = iota
	Easy
	Hard
	VeryHard
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
	case VeryHard:
		return "very_hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a label produced by String back to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range []Difficulty{Normal, Easy, Hard, VeryHard} {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown skill difficulty %q", s)
}

// Multiplier returns the cost multiplier relative to a Normal skill.
func (d Difficulty) Multiplier() int {
	switch d {
	case Hard:
		return 2
	case VeryHard:
		return 3
	default:
		return 1
	}
}

// Prerequisite names a skill that must be held at MinLevel or higher.
type Prerequisite struct {
	Skill    string
	MinLevel int
}

// Skill is one learnable skill.
type Skill struct {
	Name string
	// Level is the current level in [0, MaxLevel].
	Level int
	// Attribute is the governing attribute score; levels up to it are cheap.
	Attribute     int
	Difficulty    Difficulty
	Prerequisites []Prerequisite
}

// New returns a level-0 skill governed by an attribute score.
func New(name string, attribute int, d Difficulty) Skill {
	return Skill{Name: name, Attribute: attribute, Difficulty: d}
}

// Requires returns a copy of s with an additional prerequisite.
func (s Skill) Requires(skill string, minLevel int) Skill {
	prereqs := make([]Prerequisite, len(s.Prerequisites), len(s.Prerequisites)+1)
	copy(prereqs, s.Prerequisites)
	s.Prerequisites = append(prereqs, Prerequisite{Skill: skill, MinLevel: minLevel})
	return s
}

// LevelCost returns the marginal cost of reaching level from level-1.
//
// Within the governing attribute a Normal skill costs 1 per level, Hard 2 and
// VeryHard 3. An Easy skill costs a flat 1 point for its first level and
// nothing more until the attribute score. Beyond the attribute every level
// costs (level - attribute + 1) times the multiplier, so marginal cost never
// decreases and always exceeds the in-attribute cost.
//
// Precondition: level >= 1.
func (s Skill) LevelCost(level int) int {
	m := s.Difficulty.Multiplier()
	if level <= s.Attribute {
		if s.Difficulty == Easy && level > 1 {
			return 0
		}
		return m
	}
	return (level - s.Attribute + 1) * m
}

// UpgradeCost returns the total cost of raising the skill from one level to another.
//
// Postcondition: Returns 0 when to <= from.
func (s Skill) UpgradeCost(from, to int) int {
	total := 0
	for level := from + 1; level <= to; level++ {
		total += s.LevelCost(level)
	}
	return total
}

// Set manages one combatant's skills and remaining skill points.
// The budget only ever decreases. It is not safe for concurrent use.
type Set struct {
	skills map[string]*Skill
	points int
}

// NewSet returns an empty skill set with the given budget.
//
// Precondition: points >= 0.
func NewSet(points int) *Set {
	return &Set{skills: make(map[string]*Skill), points: points}
}

// Points returns the remaining skill-point budget.
func (s *Set) Points() int { return s.points }

// Add registers sk. It fails if the name is taken or the budget cannot cover
// the skill's first level. Adding deducts nothing.
//
// Postcondition: on success Get(sk.Name) returns a copy of sk.
func (s *Set) Add(sk Skill) error {
	if _, ok := s.skills[sk.Name]; ok {
		return fmt.Errorf("adding skill %q: %w", sk.Name, rules.ErrDuplicateSkill)
	}
	if sk.Level < 0 || sk.Level > MaxLevel {
		return fmt.Errorf("adding skill %q at level %d: %w", sk.Name, sk.Level, rules.ErrInvalidSkill)
	}
	if sk.Level < MaxLevel {
		if cost := sk.LevelCost(sk.Level + 1); cost > s.points {
			return fmt.Errorf("adding skill %q: need %d, have %d: %w", sk.Name, cost, s.points, rules.ErrBudgetExceeded)
		}
	}
	cp := sk
	s.skills[sk.Name] = &cp
	return nil
}

// Get returns a copy of the named skill.
func (s *Set) Get(name string) (Skill, bool) {
	sk, ok := s.skills[name]
	if !ok {
		return Skill{}, false
	}
	return *sk, true
}

// Level returns the named skill's level, or 0 if it was never added.
func (s *Set) Level(name string) int {
	if sk, ok := s.skills[name]; ok {
		return sk.Level
	}
	return 0
}

// Names returns all skill names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.skills))
	for n := range s.skills {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// PrerequisitesMet reports whether every prerequisite of sk is satisfied.
func (s *Set) PrerequisitesMet(sk Skill) bool {
	return s.missing(sk) == nil
}

func (s *Set) missing(sk Skill) *Prerequisite {
	for i := range sk.Prerequisites {
		p := sk.Prerequisites[i]
		if s.Level(p.Skill) < p.MinLevel {
			return &p
		}
	}
	return nil
}

// Raise raises the named skill by one level and deducts its marginal cost.
//
// Postcondition: on error neither the level nor the budget changes.
func (s *Set) Raise(name string) error {
	sk, ok := s.skills[name]
	if !ok {
		return fmt.Errorf("raising skill %q: %w", name, rules.ErrUnknownSkill)
	}
	if p := s.missing(*sk); p != nil {
		return fmt.Errorf("raising skill %q: requires %s %d: %w", name, p.Skill, p.MinLevel, rules.ErrPrerequisiteNotMet)
	}
	if sk.Level >= MaxLevel {
		return fmt.Errorf("raising skill %q past %d: %w", name, MaxLevel, rules.ErrAtCap)
	}
	cost := sk.LevelCost(sk.Level + 1)
	if cost > s.points {
		return fmt.Errorf("raising skill %q: need %d, have %d: %w", name, cost, s.points, rules.ErrBudgetExceeded)
	}
	sk.Level++
	s.points -= cost
	return nil
}

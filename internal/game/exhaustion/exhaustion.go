// Package exhaustion tracks accumulated fatigue and converts it into roll
// penalties, recovery, and willpower checks.
package exhaustion

import (
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/dice"
	"github.com/cory-johannsen/steelkilt/internal/game/rules"
)

// Level is the derived fatigue band.
type Level int

const (
	None Level = iota
	Light
	Severe
	Critical
)

// String returns a human-readable level label.
func (l Level) String() string {
	switch l {
	case None:
		return "none"
	case Light:
		return "light"
	case Severe:
		return "severe"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Penalty returns the roll penalty for the level: 0, -1, -2 or -4.
func (l Level) Penalty() int {
	switch l {
	case Light:
		return -1
	case Severe:
		return -2
	case Critical:
		return -4
	default:
		return 0
	}
}

// LevelFor bands points against a ceiling. Hosts reuse it for any fatigue
// pool measured against an attribute, such as magical exhaustion.
//
// Postcondition: None when points <= ceiling, Light above it, Severe at
// 2*ceiling or more, Critical at 3*ceiling or more.
func LevelFor(points, ceiling int) Level {
	switch {
	case points >= 3*ceiling:
		return Critical
	case points >= 2*ceiling:
		return Severe
	case points > ceiling:
		return Light
	default:
		return None
	}
}

// Tracker accumulates fatigue points for one combatant.
// It is not safe for concurrent use.
type Tracker struct {
	points  int
	stamina int
}

// New returns a fresh tracker for a combatant with the given stamina.
//
// Precondition: stamina >= 1.
func New(stamina int) *Tracker {
	return &Tracker{stamina: stamina}
}

// Points returns the accumulated fatigue points.
func (t *Tracker) Points() int { return t.points }

// Stamina returns the ceiling the tracker bands against.
func (t *Tracker) Stamina() int { return t.stamina }

// Add accumulates fatigue points. Non-positive amounts are ignored.
func (t *Tracker) Add(points int) {
	if points > 0 {
		t.points += points
	}
}

// Rest recovers one point per two units of rest.
//
// Postcondition: Points() >= 0.
func (t *Tracker) Rest(units int) {
	if units <= 0 {
		return
	}
	t.points -= units / 2
	if t.points < 0 {
		t.points = 0
	}
}

// Level returns the current fatigue band.
func (t *Tracker) Level() Level { return LevelFor(t.points, t.stamina) }

// Penalty returns the roll penalty for the current band.
func (t *Tracker) Penalty() int { return t.Level().Penalty() }

// Status returns a descriptive label for the current band.
func (t *Tracker) Status() string {
	switch t.Level() {
	case Light:
		return "Tired"
	case Severe:
		return "Exhausted"
	case Critical:
		return "Completely Drained"
	default:
		return "Fresh"
	}
}

// CanExert reports whether strenuous action is still possible. Only a
// Critical level rules it out; at Severe it costs a willpower check instead.
func (t *Tracker) CanExert() bool { return t.Level() < Critical }

// NeedsWillpowerCheck reports whether acting this round requires a check.
func (t *Tracker) NeedsWillpowerCheck() bool { return t.Level() >= Severe }

// CheckWillpower rolls a d10 against willpower when a check is required.
//
// Postcondition: Returns nil when no check is needed or the roll is <= willpower;
// otherwise an error wrapping rules.ErrWillpowerCheckFailed. No die is drawn
// when no check is needed.
func (t *Tracker) CheckWillpower(willpower int, src dice.Source) error {
	if !t.NeedsWillpowerCheck() {
		return nil
	}
	roll := dice.D10(src)
	if roll > willpower {
		return fmt.Errorf("willpower %d vs roll %d at %s exhaustion: %w", willpower, roll, t.Level(), rules.ErrWillpowerCheckFailed)
	}
	return nil
}

// AttackModifier implements modifier.Source.
func (t *Tracker) AttackModifier() int { return t.Penalty() }

// DefenseModifier implements modifier.Source.
func (t *Tracker) DefenseModifier() int { return t.Penalty() }

// DamageModifier implements modifier.Source.
func (t *Tracker) DamageModifier() int { return 0 }

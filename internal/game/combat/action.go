package combat

import (
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/magic"
	"github.com/cory-johannsen/steelkilt/internal/game/ranged"
	"github.com/cory-johannsen/steelkilt/internal/game/stance"
)

// ActionType identifies what a fighter does on its turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota
	ActionAttack
	ActionPrepare
	ActionShoot
	ActionCast
	ActionAim
	ActionManeuver
	ActionPass
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionPrepare:
		return "prepare"
	case ActionShoot:
		return "shoot"
	case ActionCast:
		return "cast"
	case ActionAim:
		return "aim"
	case ActionManeuver:
		return "maneuver"
	case ActionPass:
		return "pass"
	default:
		return "unknown"
	}
}

// ParseActionType maps a label produced by String back to an ActionType.
func ParseActionType(s string) (ActionType, error) {
	for a := ActionAttack; a <= ActionPass; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return ActionUnknown, fmt.Errorf("unknown action %q", s)
}

// Action is one fighter's declared action for a round.
type Action struct {
	Type ActionType
	// Maneuver is the stance selected by ActionManeuver.
	Maneuver stance.Maneuver
	// Spell is cast by ActionCast.
	Spell magic.Spell
	// Distance, Size and Cover describe the target of ActionShoot.
	Distance int
	Size     ranged.TargetSize
	Cover    ranged.Cover
}

// Attack returns a melee attack action.
func Attack() Action { return Action{Type: ActionAttack} }

// Pass returns an action that does nothing.
func Pass() Action { return Action{Type: ActionPass} }

// Prepare returns an action that readies the fighter's ranged weapon.
func Prepare() Action { return Action{Type: ActionPrepare} }

// Shoot returns a ranged attack action at a medium target without cover.
func Shoot(distance int) Action {
	return Action{Type: ActionShoot, Distance: distance, Size: ranged.Medium}
}

// Cast returns a spellcasting action.
func Cast(spell magic.Spell) Action { return Action{Type: ActionCast, Spell: spell} }

// Maneuver returns an action that switches stance.
func Maneuver(m stance.Maneuver) Action { return Action{Type: ActionManeuver, Maneuver: m} }

// Aim returns an action that spends the round aiming.
func Aim() Action { return Action{Type: ActionAim} }

package combat

import (
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/character"
	"github.com/cory-johannsen/steelkilt/internal/game/dice"
	"github.com/cory-johannsen/steelkilt/internal/game/exhaustion"
	"github.com/cory-johannsen/steelkilt/internal/game/hitlocation"
	"github.com/cory-johannsen/steelkilt/internal/game/magic"
	"github.com/cory-johannsen/steelkilt/internal/game/modifier"
	"github.com/cory-johannsen/steelkilt/internal/game/ranged"
	"github.com/cory-johannsen/steelkilt/internal/game/rules"
	"github.com/cory-johannsen/steelkilt/internal/game/skill"
	"github.com/cory-johannsen/steelkilt/internal/game/stance"
)

// RangedKit is a fighter's ranged weapon, its skill with it, and its firing state.
type RangedKit struct {
	Weapon ranged.Weapon
	Skill  int
	State  *ranged.State
}

// Fighter is a combatant together with the optional rule modules associated
// with it for one combat. Nil modules are simply not consulted.
type Fighter struct {
	Combatant *character.Combatant
	// Defense is how this fighter meets melee attacks.
	Defense    DefenseChoice
	Stance     *stance.Stance
	Exhaustion *exhaustion.Tracker
	Locations  *hitlocation.Tracker
	Magic      *magic.User
	Skills     *skill.Set
	Ranged     *RangedKit
	// Extra holds situational sources such as scripted modifiers.
	Extra []modifier.Source
}

// NewFighter returns a fighter with a Normal stance and a fresh exhaustion
// tracker sized to the combatant's stamina.
//
// Precondition: c must be non-nil.
func NewFighter(c *character.Combatant) *Fighter {
	return &Fighter{
		Combatant:  c,
		Stance:     stance.New(),
		Exhaustion: exhaustion.New(c.Attributes.Stamina()),
	}
}

// Name returns the combatant's name.
func (f *Fighter) Name() string { return f.Combatant.Name }

// CanAct reports whether the combatant is alive and not incapacitated.
func (f *Fighter) CanAct() bool { return f.Combatant.CanAct() }

// Sources returns the fighter's active optional modifier sources.
// Built-in sources (wounds and armor) are added by the Resolver.
func (f *Fighter) Sources() []modifier.Source {
	var out []modifier.Source
	if f.Stance != nil {
		out = append(out, f.Stance)
	}
	if f.Exhaustion != nil {
		out = append(out, f.Exhaustion)
	}
	if f.Magic != nil {
		out = append(out, f.Magic)
	}
	return append(out, f.Extra...)
}

// Outcome is the state of a session as a whole.
type Outcome int

const (
	Ongoing Outcome = iota
	FirstWins
	SecondWins
	BothDown
	Stalemate
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case FirstWins:
		return "first_wins"
	case SecondWins:
		return "second_wins"
	case BothDown:
		return "both_down"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

// Settings tunes a session.
type Settings struct {
	// MaxRounds ends the session in a stalemate; 0 means unlimited.
	MaxRounds int
	// FatiguePerRound is added to each fighter's exhaustion at EndRound.
	FatiguePerRound int
	// HitLocations enables per-location damage for melee attacks.
	HitLocations bool
	Direction    hitlocation.Direction
	// WeaponArm must be functional to attack or shoot when hit locations are tracked.
	WeaponArm hitlocation.Location
}

// DefaultSettings returns the settings used when a host supplies none.
func DefaultSettings() Settings {
	return Settings{MaxRounds: 50, FatiguePerRound: 1, Direction: hitlocation.Front, WeaponArm: hitlocation.RightArm}
}

// Session runs a duel between two fighters, one round at a time.
// It owns its dice Source and Log and is not safe for concurrent use.
type Session struct {
	first    *Fighter
	second   *Fighter
	src      dice.Source
	resolver *Resolver
	settings Settings
	round    int
	log      *Log
}

// NewSession returns a session that has not started its first round.
// When settings.HitLocations is set, fighters without a location tracker get one.
//
// Precondition: first, second and src must be non-nil.
func NewSession(first, second *Fighter, src dice.Source, settings Settings) *Session {
	if settings.HitLocations {
		for _, f := range []*Fighter{first, second} {
			if f.Locations == nil {
				f.Locations = hitlocation.NewTracker(f.Combatant.Attributes.Constitution)
			}
		}
	}
	return &Session{
		first:    first,
		second:   second,
		src:      src,
		resolver: NewResolver(src),
		settings: settings,
		log:      NewLog(),
	}
}

// Fighters returns both fighters in turn order.
func (s *Session) Fighters() (*Fighter, *Fighter) { return s.first, s.second }

// Round returns the current round number, 0 before the first StartRound.
func (s *Session) Round() int { return s.round }

// Log returns the session's combat log.
func (s *Session) Log() *Log { return s.log }

// StartRound advances to the next round and returns its number.
func (s *Session) StartRound() int {
	s.round++
	return s.round
}

// EndRound applies per-round fatigue and advances pending charges.
func (s *Session) EndRound() {
	for _, f := range []*Fighter{s.first, s.second} {
		if f.Exhaustion != nil && f.Combatant.Alive() {
			f.Exhaustion.Add(s.settings.FatiguePerRound)
		}
		if f.Stance != nil {
			f.Stance.EndRound()
		}
	}
}

// Outcome reports whether the duel is over and how.
func (s *Session) Outcome() Outcome {
	a, b := s.first.CanAct(), s.second.CanAct()
	switch {
	case !a && !b:
		return BothDown
	case !b:
		return FirstWins
	case !a:
		return SecondWins
	case s.settings.MaxRounds > 0 && s.round >= s.settings.MaxRounds:
		return Stalemate
	default:
		return Ongoing
	}
}

// Winner returns the winning fighter, or nil if there is none.
func (s *Session) Winner() *Fighter {
	switch s.Outcome() {
	case FirstWins:
		return s.first
	case SecondWins:
		return s.second
	default:
		return nil
	}
}

func (s *Session) opponent(f *Fighter) *Fighter {
	if f == s.first {
		return s.second
	}
	return s.first
}

// RunRound starts a round, lets the first fighter act and then, if the duel
// is still on, the second, and ends the round.
//
// Postcondition: Returns nil without starting a round if the duel is over.
func (s *Session) RunRound(first, second Action) []Entry {
	if s.Outcome() != Ongoing {
		return nil
	}
	s.StartRound()
	entries := []Entry{s.Act(s.first, first)}
	if s.Outcome() == Ongoing {
		entries = append(entries, s.Act(s.second, second))
	}
	s.EndRound()
	return entries
}

// Act performs one action for actor against its opponent and records it.
// Rule refusals are recorded in Entry.Err rather than aborting the round.
//
// Precondition: actor is one of the session's fighters.
func (s *Session) Act(actor *Fighter, a Action) Entry {
	e := s.act(actor, s.opponent(actor), a)
	e.Round = s.round
	e.Actor = actor.Name()
	e.Action = a.Type
	if e.Err != nil && e.Narrative == "" {
		e.Narrative = fmt.Sprintf("%s cannot %s: %v.", actor.Name(), a.Type, e.Err)
	}
	s.log.Append(e)
	return e
}

func (s *Session) act(actor, target *Fighter, a Action) Entry {
	if a.Type == ActionPass {
		return Entry{Narrative: fmt.Sprintf("%s waits.", actor.Name())}
	}
	if !actor.CanAct() {
		return Entry{Err: fmt.Errorf("%s is incapacitated: %w", actor.Name(), rules.ErrActionNotAllowed)}
	}
	if actor.Exhaustion != nil {
		if err := actor.Exhaustion.CheckWillpower(actor.Combatant.Attributes.Willpower, s.src); err != nil {
			return Entry{Err: err}
		}
	}

	switch a.Type {
	case ActionManeuver:
		if actor.Stance == nil {
			return Entry{Err: fmt.Errorf("%s has no stance: %w", actor.Name(), rules.ErrActionNotAllowed)}
		}
		if err := actor.Stance.Select(a.Maneuver); err != nil {
			return Entry{Err: err}
		}
		return Entry{Narrative: fmt.Sprintf("%s adopts %s.", actor.Name(), a.Maneuver)}

	case ActionAim:
		if actor.Ranged != nil && actor.Ranged.State.Prepared() {
			actor.Ranged.State.Aim()
		} else if actor.Stance != nil {
			actor.Stance.Aim()
		}
		return Entry{Narrative: fmt.Sprintf("%s takes aim.", actor.Name())}

	case ActionPrepare:
		if actor.Ranged == nil {
			return Entry{Err: fmt.Errorf("%s has no ranged weapon: %w", actor.Name(), rules.ErrNotPrepared)}
		}
		segs := actor.Ranged.State.Prepare(actor.Ranged.Weapon)
		return Entry{Narrative: fmt.Sprintf("%s readies the %s (%d segments).", actor.Name(), actor.Ranged.Weapon.Name, segs)}

	case ActionAttack:
		if err := s.checkAttack(actor); err != nil {
			return Entry{Err: err}
		}
		r := s.resolver.ResolveAt(actor.Combatant, target.Combatant, target.Defense,
			Sources{Attacker: actor.Sources(), Defender: target.Sources()}, s.locating(target))
		if actor.Stance != nil {
			actor.Stance.AttackMade()
		}
		if actor.Ranged != nil {
			actor.Ranged.State.Interrupt()
		}
		return Entry{Result: &r, Narrative: r.Narrative}

	case ActionShoot:
		if actor.Ranged == nil {
			return Entry{Err: fmt.Errorf("%s has no ranged weapon: %w", actor.Name(), rules.ErrNotPrepared)}
		}
		if err := s.checkAttack(actor); err != nil {
			return Entry{Err: err}
		}
		r, err := s.resolver.ResolveRanged(actor.Combatant, target.Combatant, Shot{
			Weapon:   actor.Ranged.Weapon,
			Skill:    actor.Ranged.Skill,
			State:    actor.Ranged.State,
			Distance: a.Distance,
			Size:     a.Size,
			Cover:    a.Cover,
			Round:    s.round,
			Locating: s.locating(target),
		}, Sources{Attacker: actor.Sources(), Defender: target.Sources()})
		if err != nil {
			return Entry{Err: err}
		}
		if actor.Stance != nil {
			actor.Stance.AttackMade()
		}
		return Entry{Result: &r, Narrative: r.Narrative}

	case ActionCast:
		if actor.Magic == nil {
			return Entry{Err: fmt.Errorf("%s casting %q: %w", actor.Name(), a.Spell.Name, rules.ErrSpellUnknown)}
		}
		c, err := actor.Magic.Cast(a.Spell, s.src)
		if err != nil {
			return Entry{Err: err}
		}
		verdict := "fails"
		if c.Success {
			verdict = fmt.Sprintf("succeeds (quality %d)", c.Quality)
		}
		return Entry{Narrative: fmt.Sprintf("%s casts %s (%d vs %d): %s.", actor.Name(), c.Spell, c.Total, c.Target, verdict)}

	default:
		return Entry{Err: fmt.Errorf("%s: %s: %w", actor.Name(), a.Type, rules.ErrActionNotAllowed)}
	}
}

func (s *Session) checkAttack(actor *Fighter) error {
	if actor.Stance != nil {
		if err := actor.Stance.CheckAttack(); err != nil {
			return err
		}
	}
	return s.checkArm(actor)
}

// locating returns the hit-location roll for blows against target, or nil
// when locations are off.
func (s *Session) locating(target *Fighter) *Locating {
	if !s.settings.HitLocations || target.Locations == nil {
		return nil
	}
	return &Locating{Direction: s.settings.Direction, Tracker: target.Locations}
}

func (s *Session) checkArm(actor *Fighter) error {
	if actor.Locations != nil && !actor.Locations.Functional(s.settings.WeaponArm) {
		return fmt.Errorf("%s's %s is %s: %w", actor.Name(), s.settings.WeaponArm,
			actor.Locations.Status(s.settings.WeaponArm), rules.ErrActionNotAllowed)
	}
	return nil
}

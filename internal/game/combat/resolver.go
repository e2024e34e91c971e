package combat

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/character"
	"github.com/cory-johannsen/steelkilt/internal/game/dice"
	"github.com/cory-johannsen/steelkilt/internal/game/hitlocation"
	"github.com/cory-johannsen/steelkilt/internal/game/modifier"
	"github.com/cory-johannsen/steelkilt/internal/game/ranged"
	"github.com/cory-johannsen/steelkilt/internal/game/rules"
)

// Sources are the optional modifier sources active for each side of an
// exchange, in addition to the combatants' own wounds and armor.
type Sources struct {
	Attacker []modifier.Source
	Defender []modifier.Source
}

// Locating asks the resolver to pick a hit location from Direction and to
// record the blow on Tracker, the defender's per-location wounds.
type Locating struct {
	Direction hitlocation.Direction
	Tracker   *hitlocation.Tracker
}

// Shot describes one ranged attack.
type Shot struct {
	Weapon   ranged.Weapon
	Skill    int
	State    *ranged.State
	Distance int
	Size     ranged.TargetSize
	Cover    ranged.Cover
	Round    int
	// Locating, when non-nil, rolls a hit location for a landed shot.
	Locating *Locating
}

// Resolver resolves exchanges with dice drawn from one Source.
// It is not safe for concurrent use unless its Source is.
type Resolver struct {
	src dice.Source
}

// NewResolver returns a Resolver drawing from src.
//
// Precondition: src must be non-nil.
func NewResolver(src dice.Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve runs one melee exchange of attacker against defender.
//
// Attack and defense modifiers come from each side's own sources; damage
// modifiers come from the attacker's. A landed attack whose damage floors at
// zero is a graze: Hit is true, Damage is 0 and no wound is taken.
//
// Precondition: attacker and defender must be non-nil with non-nil Wounds.
// Postcondition: Result.Phase is terminal; only defender.Wounds is mutated.
func (r *Resolver) Resolve(attacker, defender *character.Combatant, choice DefenseChoice, sources Sources) Result {
	return r.ResolveAt(attacker, defender, choice, sources, nil)
}

// ResolveAt is Resolve with optional hit locations. When loc is non-nil a
// landed attack also rolls a location, scales damage by its multiplier, and
// records the blow on loc.Tracker before wounding the defender.
//
// Precondition: as Resolve.
func (r *Resolver) ResolveAt(attacker, defender *character.Combatant, choice DefenseChoice, sources Sources, loc *Locating) Result {
	attackBase := attacker.WeaponSkill
	defenseBase := defender.WeaponSkill
	if choice == Dodge {
		defenseBase = defender.DodgeSkill
	}
	return r.exchange(attacker, defender, exchange{
		attackBase:  attackBase,
		defenseBase: defenseBase,
		defense:     choice,
		strength:    attacker.StrengthBonus(),
		weapon:      attacker.Weapon.Damage,
		sources:     sources,
		locating:    loc,
	})
}

// ResolveRanged runs one ranged exchange. The defender may only dodge.
//
// Postcondition: on error no die is drawn and the shot is not fired. The error
// wraps rules.ErrNotPrepared, rules.ErrOutOfRange or rules.ErrRateExceeded.
func (r *Resolver) ResolveRanged(attacker, defender *character.Combatant, shot Shot, sources Sources) (Result, error) {
	if shot.State == nil || !shot.State.Prepared() {
		return Result{}, fmt.Errorf("%s shooting %s: %w", attacker.Name, shot.Weapon.Name, rules.ErrNotPrepared)
	}
	mod, err := ranged.Modifier(shot.Weapon, shot.Distance, shot.Size, shot.Cover, shot.State)
	if err != nil {
		return Result{}, fmt.Errorf("%s shooting %s: %w", attacker.Name, defender.Name, err)
	}
	if err := shot.State.Fire(shot.Round); err != nil {
		return Result{}, fmt.Errorf("%s shooting %s: %w", attacker.Name, defender.Name, err)
	}
	return r.exchange(attacker, defender, exchange{
		attackBase:  shot.Skill + mod,
		defenseBase: defender.DodgeSkill,
		defense:     Dodge,
		weapon:      shot.Weapon.Damage,
		sources:     sources,
		locating:    shot.Locating,
	}), nil
}

type exchange struct {
	attackBase  int
	defenseBase int
	defense     DefenseChoice
	strength    int
	weapon      int
	sources     Sources
	locating    *Locating
}

func (r *Resolver) exchange(attacker, defender *character.Combatant, x exchange) Result {
	res := Result{Attacker: attacker.Name, Defender: defender.Name, Defense: x.defense, Phase: Idle}
	wasDead := defender.Wounds.Dead()

	atk := modifier.Sum(append(attacker.Modifiers(), x.sources.Attacker...)...)
	def := modifier.Sum(append(defender.Modifiers(), x.sources.Defender...)...)

	res.AttackRoll = dice.D10(r.src)
	res.AttackTotal = x.attackBase + res.AttackRoll + atk.Attack
	res.Phase = AttackRolled

	res.DefenseRoll = dice.D10(r.src)
	res.DefenseTotal = x.defenseBase + res.DefenseRoll + def.Defense
	res.Phase = DefenseRolled

	if res.AttackTotal <= res.DefenseTotal {
		res.Phase = Miss
		res.Narrative = narrate(res)
		return res
	}

	res.Hit = true
	dmg := Damage(res.AttackTotal, res.DefenseTotal, x.strength, x.weapon+atk.Damage, defender.Armor.Protection)
	res.Phase = DamageComputed

	if x.locating != nil && x.locating.Tracker != nil {
		where := hitlocation.Determine(x.locating.Direction, r.src)
		hit := x.locating.Tracker.Apply(where, dmg)
		res.Location = &hit
		dmg = hit.Damage
	}

	res.Damage = dmg
	res.Severity = defender.Wounds.Inflict(dmg, defender.Attributes.Constitution)
	res.Phase = WoundApplied
	if defender.Wounds.Dead() {
		res.Phase = Dead
		res.DefenderDied = !wasDead
	}
	res.Narrative = narrate(res)
	return res
}

// IsRecoverable reports whether err is one of the rule failures a session
// records and continues past, rather than a programming error.
func IsRecoverable(err error) bool {
	for _, target := range []error{
		rules.ErrActionNotAllowed,
		rules.ErrWillpowerCheckFailed,
		rules.ErrNotPrepared,
		rules.ErrRateExceeded,
		rules.ErrOutOfRange,
		rules.ErrInsufficientLore,
		rules.ErrSpellUnknown,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

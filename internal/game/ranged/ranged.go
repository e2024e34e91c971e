// Package ranged tracks ranged weapon preparation, aiming and rate of fire,
// and computes the net ranged attack modifier.
package ranged

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/steelkilt/internal/game/rules"
)

// MaxAimingBonus caps the bonus accumulated by aiming.
const MaxAimingBonus = 3

// Weapon is a ranged weapon. Distances are in meters.
type Weapon struct {
	Name       string
	Damage     int
	PointBlank int
	MaxRange   int
	// RangeIncrement is the distance beyond point blank that costs one point.
	RangeIncrement int
	// PreparationTime is the number of segments needed to ready the weapon.
	PreparationTime int
	// RateOfFire is the maximum number of shots per round.
	RateOfFire int
}

// Validate checks that the weapon satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (w Weapon) Validate() error {
	var errs []error
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if w.Damage < 1 {
		errs = append(errs, fmt.Errorf("damage %d must be >= 1", w.Damage))
	}
	if w.PointBlank < 0 || w.MaxRange < w.PointBlank {
		errs = append(errs, fmt.Errorf("ranges %d/%d must satisfy 0 <= point_blank <= max_range", w.PointBlank, w.MaxRange))
	}
	if w.RangeIncrement < 1 {
		errs = append(errs, fmt.Errorf("range_increment %d must be >= 1", w.RangeIncrement))
	}
	if w.PreparationTime < 0 {
		errs = append(errs, fmt.Errorf("preparation_time %d must be >= 0", w.PreparationTime))
	}
	if w.RateOfFire < 1 {
		errs = append(errs, fmt.Errorf("rate_of_fire %d must be >= 1", w.RateOfFire))
	}
	if len(errs) > 0 {
		return fmt.Errorf("ranged weapon %q: %w", w.Name, errors.Join(errs...))
	}
	return nil
}

// ShortBow returns the standard short bow.
func ShortBow() Weapon {
	return Weapon{Name: "Short Bow", Damage: 4, PointBlank: 20, MaxRange: 100, RangeIncrement: 10, PreparationTime: 3, RateOfFire: 1}
}

// LongBow returns the standard long bow.
func LongBow() Weapon {
	return Weapon{Name: "Long Bow", Damage: 6, PointBlank: 30, MaxRange: 120, RangeIncrement: 10, PreparationTime: 3, RateOfFire: 1}
}

// Crossbow returns the standard crossbow.
func Crossbow() Weapon {
	return Weapon{Name: "Crossbow", Damage: 6, PointBlank: 30, MaxRange: 100, RangeIncrement: 20, PreparationTime: 6, RateOfFire: 1}
}

// Pistol returns the standard pistol.
func Pistol() Weapon {
	return Weapon{Name: "Pistol", Damage: 6, PointBlank: 20, MaxRange: 80, RangeIncrement: 20, PreparationTime: 1, RateOfFire: 3}
}

// Rifle returns the standard rifle.
func Rifle() Weapon {
	return Weapon{Name: "Rifle", Damage: 8, PointBlank: 40, MaxRange: 200, RangeIncrement: 20, PreparationTime: 2, RateOfFire: 2}
}

// Javelin returns the standard javelin.
func Javelin() Weapon {
	return Weapon{Name: "Javelin", Damage: 4, PointBlank: 15, MaxRange: 40, RangeIncrement: 10, PreparationTime: 1, RateOfFire: 1}
}

// Band is a range band.
type Band int

const (
	PointBlank Band = iota
	BeyondPointBlank
	BeyondMax
)

// String returns a human-readable band label.
func (b Band) String() string {
	switch b {
	case PointBlank:
		return "point_blank"
	case BeyondPointBlank:
		return "beyond_point_blank"
	case BeyondMax:
		return "beyond_max"
	default:
		return "unknown"
	}
}

// Band returns the range band of distance for w.
func (w Weapon) Band(distance int) Band {
	switch {
	case distance <= w.PointBlank:
		return PointBlank
	case distance <= w.MaxRange:
		return BeyondPointBlank
	default:
		return BeyondMax
	}
}

// DistanceModifier returns -1 per full range increment beyond point blank.
//
// Postcondition: Returns an error wrapping rules.ErrOutOfRange beyond max range.
func (w Weapon) DistanceModifier(distance int) (int, error) {
	switch w.Band(distance) {
	case PointBlank:
		return 0, nil
	case BeyondPointBlank:
		return -((distance - w.PointBlank) / w.RangeIncrement), nil
	default:
		return 0, fmt.Errorf("%s at %dm (max %dm): %w", w.Name, distance, w.MaxRange, rules.ErrOutOfRange)
	}
}

// TargetSize classifies the target for the size modifier.
type TargetSize int

const (
	Tiny TargetSize = iota
	Small
	Medium
	Large
	Huge
	Gigantic
)

// Modifier returns the attack modifier for shooting at a target of size s.
func (s TargetSize) Modifier() int {
	switch s {
	case Tiny:
		return -4
	case Small:
		return -2
	case Large:
		return 2
	case Huge:
		return 4
	case Gigantic:
		return 6
	default:
		return 0
	}
}

// Cover is how much of the target is concealed.
type Cover int

const (
	NoCover Cover = iota
	PartialCover
	ThreeQuartersCover
	FullCover
)

// Modifier returns the attack modifier for shooting at a target behind c.
func (c Cover) Modifier() int {
	switch c {
	case PartialCover:
		return -2
	case ThreeQuartersCover:
		return -4
	case FullCover:
		return -8
	default:
		return 0
	}
}

// State tracks one shooter's preparation, aim and shots fired.
// It is not safe for concurrent use.
type State struct {
	weapon     *Weapon
	aimRounds  int
	lastRound  int
	shotsFired int
}

// NewState returns an unprepared state.
func NewState() *State {
	return &State{lastRound: -1}
}

// Prepare readies w and returns the number of segments it took.
// Preparing a different weapon discards any aim.
func (s *State) Prepare(w Weapon) int {
	if s.weapon == nil || s.weapon.Name != w.Name {
		s.aimRounds = 0
	}
	s.weapon = &w
	return w.PreparationTime
}

// Prepared reports whether a weapon is ready to fire.
func (s *State) Prepared() bool { return s.weapon != nil }

// Weapon returns the prepared weapon, if any.
func (s *State) Weapon() (Weapon, bool) {
	if s.weapon == nil {
		return Weapon{}, false
	}
	return *s.weapon, true
}

// Aim records one full round spent aiming.
//
// Postcondition: AimingBonus() <= MaxAimingBonus.
func (s *State) Aim() {
	if s.aimRounds < MaxAimingBonus {
		s.aimRounds++
	}
}

// Interrupt discards accumulated aim.
func (s *State) Interrupt() { s.aimRounds = 0 }

// AimingBonus returns +1 per full round of aiming, capped at MaxAimingBonus.
func (s *State) AimingBonus() int { return s.aimRounds }

// Fire records a shot in round. Firing consumes accumulated aim.
//
// Postcondition: on error nothing changes; the error wraps rules.ErrNotPrepared
// when no weapon is ready, or rules.ErrRateExceeded when the weapon's rate of
// fire has been used up for round.
func (s *State) Fire(round int) error {
	if s.weapon == nil {
		return fmt.Errorf("firing: %w", rules.ErrNotPrepared)
	}
	if round != s.lastRound {
		s.lastRound = round
		s.shotsFired = 0
	}
	if s.shotsFired >= s.weapon.RateOfFire {
		return fmt.Errorf("firing %s in round %d: %d of %d shots used: %w",
			s.weapon.Name, round, s.shotsFired, s.weapon.RateOfFire, rules.ErrRateExceeded)
	}
	s.shotsFired++
	s.aimRounds = 0
	return nil
}

// Modifier combines distance, target size, cover and the state's aiming bonus.
//
// Postcondition: Returns an error wrapping rules.ErrOutOfRange beyond max range.
func Modifier(w Weapon, distance int, size TargetSize, cover Cover, st *State) (int, error) {
	d, err := w.DistanceModifier(distance)
	if err != nil {
		return 0, err
	}
	aim := 0
	if st != nil {
		aim = st.AimingBonus()
	}
	return d + size.Modifier() + cover.Modifier() + aim, nil
}

// Package hitlocation maps attack directions to body locations, scales damage
// by location, and tracks disabling and severing per location.
package hitlocation

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/steelkilt/internal/game/dice"
	"github.com/cory-johannsen/steelkilt/internal/game/wound"
)

// Direction is where an attack comes from relative to the defender.
type Direction int

const (
	Front Direction = iota
	Back
	Left
	Right
	Above
	Below
)

// String returns a human-readable direction label.
func (d Direction) String() string {
	switch d {
	case Front:
		return "front"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	case Above:
		return "above"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

// ParseDirection maps a label produced by String back to a Direction.
func ParseDirection(s string) (Direction, error) {
	for d := Front; d <= Below; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown attack direction %q", s)
}

// Location is one of the six body locations.
type Location int

const (
	Head Location = iota
	Torso
	LeftArm
	RightArm
	LeftLeg
	RightLeg
)

// Locations lists every location in sheet order.
var Locations = []Location{Head, Torso, LeftArm, RightArm, LeftLeg, RightLeg}

// String returns a human-readable location label.
func (l Location) String() string {
	switch l {
	case Head:
		return "head"
	case Torso:
		return "torso"
	case LeftArm:
		return "left arm"
	case RightArm:
		return "right arm"
	case LeftLeg:
		return "left leg"
	case RightLeg:
		return "right leg"
	default:
		return "unknown"
	}
}

// ParseLocation maps a label produced by String back to a Location.
// Underscores are accepted in place of spaces ("right_arm").
func ParseLocation(s string) (Location, error) {
	label := strings.ReplaceAll(s, "_", " ")
	for _, l := range Locations {
		if l.String() == label {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown body location %q", s)
}

// IsLimb reports whether l is an arm or leg.
func (l Location) IsLimb() bool { return l >= LeftArm && l <= RightLeg }

// Multiply scales raw damage for a hit to l: head x1.5, torso x1, limbs x0.75,
// rounded down.
func (l Location) Multiply(damage int) int {
	switch {
	case l == Head:
		return damage * 3 / 2
	case l.IsLimb():
		return damage * 3 / 4
	default:
		return damage
	}
}

// tables holds, per direction, the location for each d10 face 1..10.
var tables = map[Direction][dice.Sides]Location{
	Front: {LeftLeg, LeftLeg, RightLeg, RightLeg, Torso, Torso, LeftArm, RightArm, Head, Head},
	Back:  {LeftLeg, LeftLeg, RightLeg, RightLeg, Torso, Torso, LeftArm, RightArm, Head, Head},
	Left:  {LeftLeg, LeftLeg, Torso, Torso, LeftArm, LeftArm, LeftArm, RightArm, Head, Head},
	Right: {LeftLeg, LeftLeg, Torso, Torso, LeftArm, LeftArm, LeftArm, RightArm, Head, Head},
	Above: {LeftLeg, RightLeg, Torso, LeftArm, LeftArm, RightArm, RightArm, Head, Head, Head},
	Below: {LeftLeg, LeftLeg, RightLeg, RightLeg, Torso, Torso, Torso, LeftArm, RightArm, Head},
}

// Lookup returns the location a d10 face selects for direction d.
//
// Precondition: face in [1, 10].
func Lookup(d Direction, face int) Location {
	t, ok := tables[d]
	if !ok {
		t = tables[Front]
	}
	return t[face-1]
}

// Determine rolls a d10 and returns the location struck from direction d.
func Determine(d Direction, src dice.Source) Location {
	return Lookup(d, dice.D10(src))
}

// Status is the functional state of one location.
type Status int

const (
	Functional Status = iota
	Disabled
	Severed
)

// String returns a human-readable status label.
func (s Status) String() string {
	switch s {
	case Functional:
		return "functional"
	case Disabled:
		return "disabled"
	case Severed:
		return "severed"
	default:
		return "unknown"
	}
}

// Hit records the effect of one blow on a location.
type Hit struct {
	Location Location
	// Raw is the damage before the location multiplier.
	Raw int
	// Damage is the damage after the location multiplier.
	Damage   int
	Severity wound.Severity
	Status   Status
	// NoEffect is true when the location was already severed.
	NoEffect bool
}

// Tracker keeps independent wound counts for every location of one combatant.
// It is not safe for concurrent use.
type Tracker struct {
	con     int
	wounds  map[Location]*wound.Wounds
	severed map[Location]bool
	log     []Hit
}

// NewTracker returns a tracker scoped to the owner's constitution.
//
// Precondition: con >= 1.
func NewTracker(con int) *Tracker {
	t := &Tracker{
		con:     con,
		wounds:  make(map[Location]*wound.Wounds, len(Locations)),
		severed: make(map[Location]bool),
	}
	for _, l := range Locations {
		t.wounds[l] = wound.New()
	}
	return t
}

// Apply scales raw damage for loc, classifies it against the owner's
// constitution, and records it on that location only.
//
// A location with a severe or worse wound is disabled. Two critical wounds on
// a limb sever it; hits on a severed limb are recorded with NoEffect set.
// Damage beyond twice the constitution counts as a critical wound here, the
// owner's death is tracked by the combatant's own wounds.
func (t *Tracker) Apply(loc Location, raw int) Hit {
	dmg := loc.Multiply(raw)
	h := Hit{Location: loc, Raw: raw, Damage: dmg, Severity: wound.Classify(dmg, t.con)}
	if t.severed[loc] {
		h.Status = Severed
		h.NoEffect = true
		t.log = append(t.log, h)
		return h
	}
	s := h.Severity
	if s == wound.Mortal {
		s = wound.Critical
	}
	w := t.wounds[loc]
	w.Add(s)
	if loc.IsLimb() && w.Critical() >= wound.CriticalsToDie {
		t.severed[loc] = true
	}
	h.Status = t.Status(loc)
	t.log = append(t.log, h)
	return h
}

// Status returns the functional state of loc.
func (t *Tracker) Status(loc Location) Status {
	if t.severed[loc] {
		return Severed
	}
	w := t.wounds[loc]
	if w.Severe() > 0 || w.Critical() > 0 {
		return Disabled
	}
	return Functional
}

// Functional reports whether loc can still be used for actions that need it.
func (t *Tracker) Functional(loc Location) bool { return t.Status(loc) == Functional }

// Wounds returns the light, severe and critical counts on loc.
func (t *Tracker) Wounds(loc Location) (light, severe, critical int) {
	w := t.wounds[loc]
	return w.Light(), w.Severe(), w.Critical()
}

// History returns every hit applied, in order.
func (t *Tracker) History() []Hit {
	out := make([]Hit, len(t.log))
	copy(out, t.log)
	return out
}

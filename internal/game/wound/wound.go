// Package wound classifies damage into wound severities and tracks the
// accumulated wounds of one combatant, including stacking and death.
package wound

// Severity is the classification of a single damaging hit.
type Severity int

const (
	// None is the zero value: no wound was inflicted (a miss or a graze).
	None Severity = iota
	Light
	Severe
	Critical
	// Mortal is damage beyond twice the victim's constitution; it kills outright.
	Mortal
)

// String returns a human-readable severity label.
func (s Severity) String() string {
	switch s {
	case None:
		return "none"
	case Light:
		return "light"
	case Severe:
		return "severe"
	case Critical:
		return "critical"
	case Mortal:
		return "mortal"
	default:
		return "unknown"
	}
}

// Penalty returns the roll penalty carried by one outstanding wound of severity s.
//
// Postcondition: Returns 0 for None and Mortal, -1 Light, -2 Severe, -4 Critical.
func (s Severity) Penalty() int {
	switch s {
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

// Stacking thresholds.
const (
	LightPerSevere    = 4
	SeverePerCritical = 3
	CriticalsToDie    = 2
)

// Classify maps damage against constitution con to a Severity.
//
//	damage <= 0            -> None
//	damage <= con/2        -> Light
//	con/2 < damage <= con  -> Severe
//	con < damage <= 2*con  -> Critical
//	damage > 2*con         -> Mortal
//
// Precondition: con >= 1.
func Classify(damage, con int) Severity {
	switch {
	case damage <= 0:
		return None
	case damage <= con/2:
		return Light
	case damage <= con:
		return Severe
	case damage <= 2*con:
		return Critical
	default:
		return Mortal
	}
}

// Wounds tracks the outstanding wounds of one combatant.
//
// Invariant: after every exported mutation, Light() < 4, Severe() < 3, and
// Dead() is true iff Critical() >= 2 or a Mortal wound was taken.
// It is not safe for concurrent use; the caller must serialise access.
type Wounds struct {
	light    int
	severe   int
	critical int
	slain    bool
}

// New returns an unwounded tracker.
func New() *Wounds {
	return &Wounds{}
}

// FromCounts rebuilds a tracker from raw counts supplied by a host, normalizing
// them exactly as if the wounds had been added one at a time.
//
// Precondition: all counts >= 0.
func FromCounts(light, severe, critical int) *Wounds {
	w := &Wounds{light: light, severe: severe, critical: critical}
	w.normalize()
	return w
}

// Add records one wound of severity s and applies stacking.
// Adding None is a no-op; adding Mortal kills regardless of current counts.
//
// Postcondition: the tracker invariant holds.
func (w *Wounds) Add(s Severity) {
	switch s {
	case Light:
		w.light++
	case Severe:
		w.severe++
	case Critical:
		w.critical++
	case Mortal:
		w.slain = true
	default:
		return
	}
	w.normalize()
}

// Inflict classifies damage against con, records the wound, and returns its severity.
//
// Precondition: con >= 1.
func (w *Wounds) Inflict(damage, con int) Severity {
	s := Classify(damage, con)
	w.Add(s)
	return s
}

// normalize applies the stacking rules until none fires.
// Conversion depends only on the counts, never on the order of additions.
func (w *Wounds) normalize() {
	for w.light >= LightPerSevere {
		w.light -= LightPerSevere
		w.severe++
	}
	for w.severe >= SeverePerCritical {
		w.severe -= SeverePerCritical
		w.critical++
	}
}

// Light returns the outstanding light wounds.
func (w *Wounds) Light() int { return w.light }

// Severe returns the outstanding severe wounds.
func (w *Wounds) Severe() int { return w.severe }

// Critical returns the outstanding critical wounds.
func (w *Wounds) Critical() int { return w.critical }

// Dead reports whether the wounds are fatal.
func (w *Wounds) Dead() bool {
	return w.slain || w.critical >= CriticalsToDie
}

// Incapacitated reports whether the combatant is too badly hurt to act:
// at least one critical wound, or dead.
func (w *Wounds) Incapacitated() bool {
	return w.critical >= 1 || w.Dead()
}

// Penalty returns the weighted roll penalty of all outstanding wounds.
//
// Postcondition: Returns -(Light + 2*Severe + 4*Critical), always <= 0.
func (w *Wounds) Penalty() int {
	return w.light*Light.Penalty() + w.severe*Severe.Penalty() + w.critical*Critical.Penalty()
}

// AttackModifier implements modifier.Source.
func (w *Wounds) AttackModifier() int { return w.Penalty() }

// DefenseModifier implements modifier.Source.
func (w *Wounds) DefenseModifier() int { return w.Penalty() }

// DamageModifier implements modifier.Source. Wounds do not change damage dealt.
func (w *Wounds) DamageModifier() int { return 0 }

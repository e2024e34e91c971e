package wound_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/steelkilt/internal/game/modifier"
	"github.com/cory-johannsen/steelkilt/internal/game/wound"
)

var _ modifier.Source = (*wound.Wounds)(nil)

// TestClassify_Property verifies the threshold bands for every CON and damage.
func TestClassify_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		con := rapid.IntRange(1, 10).Draw(rt, "con")
		d := rapid.IntRange(1, 40).Draw(rt, "damage")
		got := wound.Classify(d, con)
		switch {
		case d <= con/2:
			assert.Equal(rt, wound.Light, got)
		case d <= con:
			assert.Equal(rt, wound.Severe, got)
		case d <= 2*con:
			assert.Equal(rt, wound.Critical, got)
		default:
			assert.Equal(rt, wound.Mortal, got)
		}
	})
}

func TestClassify_NonPositiveIsNone(t *testing.T) {
	assert.Equal(t, wound.None, wound.Classify(0, 7))
	assert.Equal(t, wound.None, wound.Classify(-3, 7))
}

func TestClassify_Scenarios(t *testing.T) {
	w := wound.New()
	assert.Equal(t, wound.Light, w.Inflict(3, 7))
	assert.Equal(t, -1, w.Penalty())

	w = wound.New()
	assert.Equal(t, wound.Critical, w.Inflict(8, 7))
	assert.Equal(t, -4, w.Penalty())

	w = wound.New()
	assert.Equal(t, wound.Mortal, w.Inflict(15, 7))
	assert.True(t, w.Dead())
	assert.Equal(t, 0, w.Critical(), "instant death is independent of wound counts")

	w = wound.New()
	assert.Equal(t, wound.Severe, w.Inflict(6, 7))
}

// TestAdd_FourthLightBecomesSevere covers a combatant already carrying light
// wounds taking the hit that completes a set of four.
func TestAdd_FourthLightBecomesSevere(t *testing.T) {
	w := wound.New()
	for i := 0; i < 3; i++ {
		w.Add(wound.Light)
	}
	assert.Equal(t, 3, w.Light())
	w.Add(wound.Light)
	assert.Equal(t, 0, w.Light())
	assert.Equal(t, 1, w.Severe())
	assert.Equal(t, -2, w.Penalty())
}

func TestAdd_ThreeSevereBecomeCritical(t *testing.T) {
	w := wound.New()
	w.Add(wound.Severe)
	w.Add(wound.Severe)
	w.Add(wound.Severe)
	assert.Equal(t, 0, w.Severe())
	assert.Equal(t, 1, w.Critical())
	assert.True(t, w.Incapacitated())
	assert.False(t, w.Dead())
}

func TestAdd_TwoCriticalsKill(t *testing.T) {
	w := wound.New()
	w.Add(wound.Critical)
	assert.False(t, w.Dead())
	w.Add(wound.Critical)
	assert.True(t, w.Dead())
}

// TestAdd_CascadeToDeath verifies conversions chain within one addition.
func TestAdd_CascadeToDeath(t *testing.T) {
	w := wound.FromCounts(3, 2, 1)
	w.Add(wound.Light)
	assert.Equal(t, 0, w.Light())
	assert.Equal(t, 0, w.Severe())
	assert.Equal(t, 2, w.Critical())
	assert.True(t, w.Dead())
}

func TestAdd_NoneIsNoop(t *testing.T) {
	w := wound.New()
	w.Add(wound.None)
	assert.Equal(t, 0, w.Penalty())
	assert.False(t, w.Dead())
}

func TestFromCounts_Normalizes(t *testing.T) {
	w := wound.FromCounts(9, 1, 0)
	assert.Equal(t, 1, w.Light())
	assert.Equal(t, 0, w.Severe())
	assert.Equal(t, 1, w.Critical())
}

// TestStacking_OrderIndependent_Property verifies the final counts depend only
// on how many wounds of each severity were added, never on their order.
func TestStacking_OrderIndependent_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seq := rapid.SliceOfN(rapid.SampledFrom([]wound.Severity{wound.Light, wound.Severe, wound.Critical}), 0, 30).Draw(rt, "wounds")
		w := wound.New()
		var nL, nS, nC int
		for _, s := range seq {
			w.Add(s)
			switch s {
			case wound.Light:
				nL++
			case wound.Severe:
				nS++
			case wound.Critical:
				nC++
			}
			assert.Less(rt, w.Light(), wound.LightPerSevere)
			assert.Less(rt, w.Severe(), wound.SeverePerCritical)
		}
		severeTotal := nS + nL/wound.LightPerSevere
		critTotal := nC + severeTotal/wound.SeverePerCritical
		assert.Equal(rt, nL%wound.LightPerSevere, w.Light())
		assert.Equal(rt, severeTotal%wound.SeverePerCritical, w.Severe())
		assert.Equal(rt, critTotal, w.Critical())
		assert.Equal(rt, critTotal >= wound.CriticalsToDie, w.Dead())
		assert.Equal(rt, -(w.Light() + 2*w.Severe() + 4*w.Critical()), w.Penalty())
	})
}

func TestWounds_ModifierSource(t *testing.T) {
	w := wound.FromCounts(1, 1, 0)
	totals := modifier.Sum(w)
	assert.Equal(t, modifier.Totals{Attack: -3, Defense: -3, Damage: 0}, totals)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "light", wound.Light.String())
	assert.Equal(t, "mortal", wound.Mortal.String())
	assert.Equal(t, "unknown", wound.Severity(99).String())
}

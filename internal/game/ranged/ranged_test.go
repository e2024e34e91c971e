package ranged_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/steelkilt/internal/game/ranged"
	"github.com/cory-johannsen/steelkilt/internal/game/rules"
)

func TestDistanceModifier(t *testing.T) {
	bow := ranged.LongBow()
	m, err := bow.DistanceModifier(20)
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = bow.DistanceModifier(40)
	require.NoError(t, err)
	assert.Equal(t, -1, m)

	m, err = bow.DistanceModifier(50)
	require.NoError(t, err)
	assert.Equal(t, -2, m)

	_, err = bow.DistanceModifier(150)
	assert.ErrorIs(t, err, rules.ErrOutOfRange)
	assert.Equal(t, ranged.BeyondMax, bow.Band(150))

	m, err = ranged.Rifle().DistanceModifier(100)
	require.NoError(t, err)
	assert.Equal(t, -3, m)
}

func TestPresetsValid(t *testing.T) {
	for _, w := range []ranged.Weapon{
		ranged.ShortBow(), ranged.LongBow(), ranged.Crossbow(),
		ranged.Pistol(), ranged.Rifle(), ranged.Javelin(),
	} {
		assert.NoError(t, w.Validate(), w.Name)
	}
	bad := ranged.Pistol()
	bad.RateOfFire = 0
	assert.Error(t, bad.Validate())
}

func TestSizeAndCover(t *testing.T) {
	assert.Equal(t, -4, ranged.Tiny.Modifier())
	assert.Equal(t, 0, ranged.Medium.Modifier())
	assert.Equal(t, 6, ranged.Gigantic.Modifier())
	assert.Equal(t, 0, ranged.NoCover.Modifier())
	assert.Equal(t, -4, ranged.ThreeQuartersCover.Modifier())
	assert.Equal(t, -8, ranged.FullCover.Modifier())
}

func TestState_FireRequiresPreparation(t *testing.T) {
	st := ranged.NewState()
	assert.ErrorIs(t, st.Fire(1), rules.ErrNotPrepared)
	assert.Equal(t, 3, st.Prepare(ranged.ShortBow()))
	assert.NoError(t, st.Fire(1))
}

func TestState_RateOfFire(t *testing.T) {
	st := ranged.NewState()
	st.Prepare(ranged.Pistol())
	for i := 0; i < 3; i++ {
		require.NoError(t, st.Fire(1))
	}
	assert.ErrorIs(t, st.Fire(1), rules.ErrRateExceeded)
	assert.NoError(t, st.Fire(2), "allowance resets each round")
}

func TestState_Aiming(t *testing.T) {
	st := ranged.NewState()
	st.Prepare(ranged.LongBow())
	st.Aim()
	st.Aim()
	assert.Equal(t, 2, st.AimingBonus())
	st.Interrupt()
	assert.Equal(t, 0, st.AimingBonus())

	for i := 0; i < 10; i++ {
		st.Aim()
	}
	assert.Equal(t, ranged.MaxAimingBonus, st.AimingBonus())
	require.NoError(t, st.Fire(1))
	assert.Equal(t, 0, st.AimingBonus(), "firing consumes aim")
}

func TestModifier_Combined(t *testing.T) {
	st := ranged.NewState()
	st.Prepare(ranged.LongBow())
	st.Aim()
	m, err := ranged.Modifier(ranged.LongBow(), 50, ranged.Large, ranged.PartialCover, st)
	require.NoError(t, err)
	assert.Equal(t, -2+2-2+1, m)

	_, err = ranged.Modifier(ranged.LongBow(), 500, ranged.Medium, ranged.NoCover, st)
	assert.ErrorIs(t, err, rules.ErrOutOfRange)
}

// TestDistanceModifier_Property verifies the distance penalty never rises with
// distance and is zero inside point blank.
func TestDistanceModifier_Property(t *testing.T) {
	w := ranged.Crossbow()
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(0, w.MaxRange-1).Draw(rt, "distance")
		near, err := w.DistanceModifier(d)
		require.NoError(rt, err)
		far, err := w.DistanceModifier(d + 1)
		require.NoError(rt, err)
		assert.LessOrEqual(rt, far, near)
		if d <= w.PointBlank {
			assert.Equal(rt, 0, near)
		}
	})
}

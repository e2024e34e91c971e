package combat_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/steelkilt/internal/game/character"
	"github.com/cory-johannsen/steelkilt/internal/game/combat"
	"github.com/cory-johannsen/steelkilt/internal/game/dice"
)

func newTestEngine() (*combat.Engine, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return combat.NewEngine(zap.New(core)), logs
}

func TestEngine_StartWithEnd(t *testing.T) {
	eng, logs := newTestEngine()
	a, d := scenarioPair(t)
	fa, fd := combat.NewFighter(a), combat.NewFighter(d)

	id, err := eng.Start(fa, fd, dice.NewSeededSource(7), combat.DefaultSettings())
	require.NoError(t, err)
	assert.True(t, eng.Has(id))
	assert.Equal(t, 1, eng.Active())

	err = eng.With(id, func(s *combat.Session) error {
		for s.Outcome() == combat.Ongoing {
			s.RunRound(combat.Attack(), combat.Attack())
		}
		return nil
	})
	require.NoError(t, err)

	outcome, err := eng.End(id)
	require.NoError(t, err)
	assert.NotEqual(t, combat.Ongoing, outcome)
	assert.False(t, eng.Has(id))

	started := logs.FilterMessage("combat started").All()
	require.Len(t, started, 1)
	assert.Equal(t, "Aldric", started[0].ContextMap()["first"])
	ended := logs.FilterMessage("combat ended").All()
	require.Len(t, ended, 1)
	assert.Equal(t, outcome.String(), ended[0].ContextMap()["outcome"])
}

func TestEngine_CombatantInOneSessionOnly(t *testing.T) {
	eng, _ := newTestEngine()
	a, d := scenarioPair(t)
	e := build(t, fighterSpec{name: "Cato", str: 5, con: 5, weapon: 5, dodge: 5, arms: character.Dagger(), armor: character.NoArmor()})

	id, err := eng.Start(combat.NewFighter(a), combat.NewFighter(d), dice.NewSeededSource(1), combat.DefaultSettings())
	require.NoError(t, err)

	_, err = eng.Start(combat.NewFighter(e), combat.NewFighter(d), dice.NewSeededSource(2), combat.DefaultSettings())
	assert.Error(t, err)

	_, err = eng.End(id)
	require.NoError(t, err)
	_, err = eng.Start(combat.NewFighter(e), combat.NewFighter(d), dice.NewSeededSource(2), combat.DefaultSettings())
	assert.NoError(t, err, "ending a session releases its combatants")
}

func TestEngine_SelfFightRejected(t *testing.T) {
	eng, _ := newTestEngine()
	a, _ := scenarioPair(t)
	_, err := eng.Start(combat.NewFighter(a), combat.NewFighter(a), dice.NewSeededSource(1), combat.DefaultSettings())
	assert.Error(t, err)
}

func TestEngine_UnknownSession(t *testing.T) {
	eng, _ := newTestEngine()
	id := uuid.New()
	assert.Error(t, eng.With(id, func(*combat.Session) error { return nil }))
	_, err := eng.End(id)
	assert.Error(t, err)
}

func TestEngine_WithPropagatesError(t *testing.T) {
	eng, _ := newTestEngine()
	a, d := scenarioPair(t)
	id, err := eng.Start(combat.NewFighter(a), combat.NewFighter(d), dice.NewSeededSource(1), combat.DefaultSettings())
	require.NoError(t, err)
	sentinel := errors.New("stop")
	assert.ErrorIs(t, eng.With(id, func(*combat.Session) error { return sentinel }), sentinel)
}

// TestEngine_ConcurrentSessions runs independent duels in parallel; each
// session is only touched under its own lock.
func TestEngine_ConcurrentSessions(t *testing.T) {
	eng, _ := newTestEngine()
	const n = 8
	ids := make([]uuid.UUID, n)
	for i := range ids {
		a := build(t, fighterSpec{name: "A", str: 6, con: 6, weapon: 6, dodge: 4, arms: character.LongSword(), armor: character.Leather()})
		d := build(t, fighterSpec{name: "D", str: 6, con: 6, weapon: 6, dodge: 4, arms: character.LongSword(), armor: character.Leather()})
		id, err := eng.Start(combat.NewFighter(a), combat.NewFighter(d), dice.NewSeededSource(uint64(i)), combat.DefaultSettings())
		require.NoError(t, err)
		ids[i] = id
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_ = eng.With(id, func(s *combat.Session) error {
				for s.Outcome() == combat.Ongoing {
					s.RunRound(combat.Attack(), combat.Attack())
				}
				return nil
			})
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		outcome, err := eng.End(id)
		require.NoError(t, err)
		assert.NotEqual(t, combat.Ongoing, outcome)
	}
	assert.Zero(t, eng.Active())
}

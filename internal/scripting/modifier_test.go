package scripting_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/steelkilt/internal/game/character"
	"github.com/cory-johannsen/steelkilt/internal/game/combat"
	"github.com/cory-johannsen/steelkilt/internal/game/dice"
	"github.com/cory-johannsen/steelkilt/internal/game/modifier"
	"github.com/cory-johannsen/steelkilt/internal/game/wound"
	"github.com/cory-johannsen/steelkilt/internal/scripting"
)

const highGround = `
function attack_modifier(self, opponent)
	if opponent ~= nil and opponent.protection > self.protection then
		return 2
	end
	return 1
end

function defense_modifier(self, opponent)
	return -self.light
end

function damage_modifier(self, opponent)
	return "lots"
end
`

func fighter(t *testing.T, name string, armor character.Armor) *character.Combatant {
	t.Helper()
	c, err := character.Build(character.BuildSpec{
		Name: name,
		Attributes: character.Attributes{
			Strength: 6, Dexterity: 6, Constitution: 6, Reason: 6, Intuition: 6,
			Willpower: 6, Charisma: 6, Perception: 6, Empathy: 6,
		},
		WeaponSkill: 6,
		DodgeSkill:  4,
		Weapon:      character.LongSword(),
		Armor:       armor,
	})
	require.NoError(t, err)
	return c
}

func loadHighGround(t *testing.T, mgr *scripting.Manager) {
	t.Helper()
	dir := writeTempLua(t, "high_ground.lua", highGround)
	require.NoError(t, mgr.Load("high_ground", filepath.Join(dir, "high_ground.lua"), 0))
}

func TestScriptedModifier_ReadsLiveState(t *testing.T) {
	mgr, logs := newTestManager(t)
	loadHighGround(t, mgr)

	a := fighter(t, "Aldric", character.Leather())
	b := fighter(t, "Brom", character.Plate())
	var src modifier.Source = mgr.Modifier("high_ground", a, b)

	assert.Equal(t, 2, src.AttackModifier(), "opponent is better armored")
	assert.Equal(t, 0, src.DefenseModifier())

	a.Wounds.Add(wound.Light)
	a.Wounds.Add(wound.Light)
	assert.Equal(t, -2, src.DefenseModifier(), "hooks see wounds taken after binding")

	assert.Equal(t, 0, src.DamageModifier())
	assert.Equal(t, 1, logs.FilterMessage("scripting: hook returned a non-number").Len())
}

func TestScriptedModifier_NilOpponent(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadHighGround(t, mgr)
	src := mgr.Modifier("high_ground", fighter(t, "Aldric", character.Leather()), nil)
	assert.Equal(t, 1, src.AttackModifier())
	assert.Equal(t, "high_ground", src.Script())
}

func TestScriptedModifier_MissingScriptIsZero(t *testing.T) {
	mgr, _ := newTestManager(t)
	src := mgr.Modifier("absent", fighter(t, "Aldric", character.Leather()), nil)
	assert.Equal(t, modifier.Totals{}, modifier.Sum(src))
}

func TestScriptedModifier_TruncatesFractions(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "f.lua", `
		function attack_modifier() return 1.9 end
		function defense_modifier() return -1.9 end
	`)
	require.NoError(t, mgr.Load("f", filepath.Join(dir, "f.lua"), 0))
	src := mgr.Modifier("f", fighter(t, "Aldric", character.Leather()), nil)
	assert.Equal(t, 1, src.AttackModifier())
	assert.Equal(t, -1, src.DefenseModifier())
}

func TestSnapshot_Table(t *testing.T) {
	c := fighter(t, "Aldric", character.ChainMail())
	c.Wounds.Add(wound.Severe)
	L := scripting.NewSandboxedState(0)
	defer L.Close()

	tbl := scripting.Snapshot(c).Table(L)
	assert.Equal(t, lua.LString("Aldric"), L.GetField(tbl, "name"))
	assert.Equal(t, lua.LNumber(6), L.GetField(tbl, "stamina"))
	assert.Equal(t, lua.LNumber(3), L.GetField(tbl, "protection"))
	assert.Equal(t, lua.LNumber(1), L.GetField(tbl, "severe"))
	assert.Equal(t, lua.LNumber(-2), L.GetField(tbl, "wound_penalty"))
	assert.Equal(t, lua.LTrue, L.GetField(tbl, "can_act"))
}

// TestScriptedModifier_InResolver verifies a script's bonus flows into an
// exchange alongside the built-in sources.
func TestScriptedModifier_InResolver(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadHighGround(t, mgr)
	a := fighter(t, "Aldric", character.Leather())
	b := fighter(t, "Brom", character.Leather())

	plain := combat.NewResolver(dice.NewSequenceSource(5, 5)).Resolve(a, b, combat.Parry, combat.Sources{})
	assert.False(t, plain.Hit, "11 vs 11 is a miss")

	r := combat.NewResolver(dice.NewSequenceSource(5, 5)).Resolve(a, b, combat.Parry, combat.Sources{
		Attacker: []modifier.Source{mgr.Modifier("high_ground", a, b)},
	})
	assert.True(t, r.Hit)
	assert.Equal(t, 12, r.AttackTotal)
	assert.Equal(t, 4, r.Damage)
}

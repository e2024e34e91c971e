package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/steelkilt/internal/game/catalog"
	"github.com/cory-johannsen/steelkilt/internal/game/combat"
	"github.com/cory-johannsen/steelkilt/internal/game/rules"
)

func testRegistry(t *testing.T) *catalog.Registry {
	t.Helper()
	reg := catalog.NewRegistry()
	require.NoError(t, reg.Register(&catalog.Document{
		Weapons: []*catalog.WeaponDef{{ID: "dagger", Name: "Dagger", Impact: "small"}},
		Armor:   []*catalog.ArmorDef{{ID: "chain", Name: "Chain Mail", Type: "chain", MovementPenalty: -1}},
		Ranged: []*catalog.RangedDef{{
			ID: "javelin", Name: "Javelin", Damage: 4, PointBlank: 15, MaxRange: 40,
			RangeIncrement: 10, PreparationTime: 1, RateOfFire: 1,
		}},
		Spells: []*catalog.SpellDef{{ID: "fireball", Name: "Fireball", Branch: "elementalism", Difficulty: "normal"}},
		Skills: []*catalog.SkillDef{
			{ID: "sword", Name: "Sword", Attribute: "dexterity", Difficulty: "normal"},
			{ID: "riposte", Name: "Riposte", Attribute: "dex", Difficulty: "hard",
				Prerequisites: []catalog.PrerequisiteDef{{Skill: "sword", MinLevel: 3}}},
		},
	}))
	return reg
}

func TestParseEntrant_Defaults(t *testing.T) {
	e, err := parseEntrant("Aldric")
	require.NoError(t, err)
	assert.Equal(t, "Aldric", e.name)
	assert.Equal(t, defaultAttribute, e.attrs.Strength)
	assert.Equal(t, defaultAttribute, e.attrs.Empathy)
	assert.Equal(t, defaultAttribute, e.skill)
	assert.Equal(t, "parry", e.defense)
	assert.Equal(t, 20, e.distance)
}

func TestParseEntrant_Keys(t *testing.T) {
	e, err := parseEntrant("Brom: str=9, Constitution=7, skill=6, weapon=dagger, distance=30, script=high_ground")
	require.NoError(t, err)
	assert.Equal(t, 9, e.attrs.Strength)
	assert.Equal(t, 7, e.attrs.Constitution)
	assert.Equal(t, 6, e.skill)
	assert.Equal(t, "dagger", e.weapon)
	assert.Equal(t, 30, e.distance)
	assert.Equal(t, "high_ground", e.script)
}

func TestParseEntrant_Errors(t *testing.T) {
	for _, s := range []string{
		":str=5",
		"X:str",
		"X:str=nine",
		"X:luck=3",
		"X:skill=",
	} {
		_, err := parseEntrant(s)
		assert.Error(t, err, s)
	}
}

func TestBuild_UsesCatalog(t *testing.T) {
	reg := testRegistry(t)
	e, err := parseEntrant("Cara:weapon=dagger,armor=chain,defense=dodge,ranged=javelin,ranged_skill=4")
	require.NoError(t, err)

	c, err := e.build(reg)
	require.NoError(t, err)
	assert.Equal(t, "Dagger", c.Combatant.Weapon.Name)
	assert.Equal(t, "Chain Mail", c.Combatant.Armor.Name)
	assert.Equal(t, combat.Dodge, c.Defense)
	require.NotNil(t, c.Ranged)
	assert.Equal(t, 4, c.Ranged.Skill)
}

func TestBuild_UnknownContent(t *testing.T) {
	reg := testRegistry(t)
	for _, s := range []string{"X:weapon=flail", "X:armor=mithril", "X:ranged=sling", "X:spell=wish", "X:defense=block"} {
		e, err := parseEntrant(s)
		require.NoError(t, err)
		_, err = e.build(reg)
		assert.Error(t, err, s)
	}
}

func TestBuild_SpellWithoutLore(t *testing.T) {
	e, err := parseEntrant("Mira:spell=fireball")
	require.NoError(t, err)
	_, err = e.build(testRegistry(t))
	assert.ErrorIs(t, err, rules.ErrInsufficientLore)
}

func TestNext_RangedTactic(t *testing.T) {
	e, err := parseEntrant("Cara:ranged=javelin,distance=12")
	require.NoError(t, err)
	c, err := e.build(testRegistry(t))
	require.NoError(t, err)

	assert.Equal(t, combat.ActionPrepare, c.next().Type)
	c.Ranged.State.Prepare(c.Ranged.Weapon)
	shot := c.next()
	assert.Equal(t, combat.ActionShoot, shot.Type)
	assert.Equal(t, 12, shot.Distance)
}

func TestNext_CastsOnceThenAttacks(t *testing.T) {
	e, err := parseEntrant("Mira:emp=8,spell=fireball,lore=3")
	require.NoError(t, err)
	c, err := e.build(testRegistry(t))
	require.NoError(t, err)
	require.NotNil(t, c.Magic)

	first := c.next()
	assert.Equal(t, combat.ActionCast, first.Type)
	assert.Equal(t, "Fireball", first.Spell.Name)
	assert.Equal(t, combat.ActionAttack, c.next().Type)
	assert.Equal(t, combat.ActionAttack, c.next().Type)
}

func TestBuild_TrainsSkills(t *testing.T) {
	e, err := parseEntrant("Cara:dex=6,skills=sword:4+riposte:2")
	require.NoError(t, err)
	c, err := e.build(testRegistry(t))
	require.NoError(t, err)
	require.NotNil(t, c.Skills)

	assert.Equal(t, 4, c.Skills.Level("Sword"))
	assert.Equal(t, 2, c.Skills.Level("Riposte"))
	// sword 4 x 1, riposte 2 x 2
	assert.Equal(t, defaultSkillPoints-8, c.skillPoints())
	assert.Equal(t, []string{"Riposte 2", "Sword 4"}, c.skillSheet())
}

func TestBuild_NoSkillsKey(t *testing.T) {
	e, err := parseEntrant("Cara")
	require.NoError(t, err)
	c, err := e.build(testRegistry(t))
	require.NoError(t, err)
	assert.Nil(t, c.Skills)
	assert.Nil(t, c.skillSheet())
}

func TestBuild_SkillTrainingErrors(t *testing.T) {
	cases := map[string]error{
		"X:skills=riposte:1+sword:3": rules.ErrPrerequisiteNotMet,
		"X:skills=lockpick":          rules.ErrUnknownSkill,
		"X:points=2,skills=sword:4":  rules.ErrBudgetExceeded,
		"X:skills=sword:11":          rules.ErrAtCap,
	}
	for s, want := range cases {
		e, err := parseEntrant(s)
		require.NoError(t, err, s)
		_, err = e.build(testRegistry(t))
		assert.ErrorIs(t, err, want, s)
	}

	e, err := parseEntrant("X:skills=sword:x")
	require.NoError(t, err)
	_, err = e.build(testRegistry(t))
	assert.Error(t, err)
}

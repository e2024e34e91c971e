package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/steelkilt/internal/game/character"
)

// Hook names a ScriptedModifier consults. Each is called as
// hook(self, opponent) and must return a number; a missing hook counts as 0.
const (
	HookAttack  = "attack_modifier"
	HookDefense = "defense_modifier"
	HookDamage  = "damage_modifier"
)

// CombatantInfo is a snapshot of a combatant's state passed to Lua hooks.
type CombatantInfo struct {
	Name         string
	Attributes   character.Attributes
	WeaponSkill  int
	DodgeSkill   int
	Weapon       string
	WeaponDamage int
	Armor        string
	Protection   int
	Light        int
	Severe       int
	Critical     int
	WoundPenalty int
	Alive        bool
	CanAct       bool
}

// Snapshot captures c for a Lua hook.
//
// Precondition: c must be non-nil.
func Snapshot(c *character.Combatant) CombatantInfo {
	return CombatantInfo{
		Name:         c.Name,
		Attributes:   c.Attributes,
		WeaponSkill:  c.WeaponSkill,
		DodgeSkill:   c.DodgeSkill,
		Weapon:       c.Weapon.Name,
		WeaponDamage: c.Weapon.Damage,
		Armor:        c.Armor.Name,
		Protection:   c.Armor.Protection,
		Light:        c.Wounds.Light(),
		Severe:       c.Wounds.Severe(),
		Critical:     c.Wounds.Critical(),
		WoundPenalty: c.Wounds.Penalty(),
		Alive:        c.Alive(),
		CanAct:       c.CanAct(),
	}
}

// Table converts the snapshot into a Lua table with snake_case fields.
func (ci CombatantInfo) Table(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "name", lua.LString(ci.Name))
	a := ci.Attributes
	for field, v := range map[string]int{
		"strength": a.Strength, "dexterity": a.Dexterity, "constitution": a.Constitution,
		"reason": a.Reason, "intuition": a.Intuition, "willpower": a.Willpower,
		"charisma": a.Charisma, "perception": a.Perception, "empathy": a.Empathy,
		"stamina": a.Stamina(),
	} {
		L.SetField(t, field, lua.LNumber(v))
	}
	L.SetField(t, "weapon_skill", lua.LNumber(ci.WeaponSkill))
	L.SetField(t, "dodge_skill", lua.LNumber(ci.DodgeSkill))
	L.SetField(t, "weapon", lua.LString(ci.Weapon))
	L.SetField(t, "weapon_damage", lua.LNumber(ci.WeaponDamage))
	L.SetField(t, "armor", lua.LString(ci.Armor))
	L.SetField(t, "protection", lua.LNumber(ci.Protection))
	L.SetField(t, "light", lua.LNumber(ci.Light))
	L.SetField(t, "severe", lua.LNumber(ci.Severe))
	L.SetField(t, "critical", lua.LNumber(ci.Critical))
	L.SetField(t, "wound_penalty", lua.LNumber(ci.WoundPenalty))
	L.SetField(t, "alive", lua.LBool(ci.Alive))
	L.SetField(t, "can_act", lua.LBool(ci.CanAct))
	return t
}

// ScriptedModifier is a modifier source whose values come from a loaded
// script's hooks, evaluated against live combatant state on every call.
type ScriptedModifier struct {
	mgr      *Manager
	script   string
	subject  *character.Combatant
	opponent *character.Combatant
}

// Modifier binds the named script to subject. opponent may be nil, in which
// case hooks receive nil as their second argument.
//
// Precondition: subject must be non-nil.
// Postcondition: the returned value implements modifier.Source.
func (m *Manager) Modifier(script string, subject, opponent *character.Combatant) *ScriptedModifier {
	return &ScriptedModifier{mgr: m, script: script, subject: subject, opponent: opponent}
}

// Script returns the bound script name.
func (s *ScriptedModifier) Script() string { return s.script }

// AttackModifier returns the script's attack_modifier result.
func (s *ScriptedModifier) AttackModifier() int { return s.eval(HookAttack) }

// DefenseModifier returns the script's defense_modifier result.
func (s *ScriptedModifier) DefenseModifier() int { return s.eval(HookDefense) }

// DamageModifier returns the script's damage_modifier result.
func (s *ScriptedModifier) DamageModifier() int { return s.eval(HookDamage) }

// eval calls hook and truncates a numeric result toward zero. Anything else,
// including a failed call, counts as 0.
func (s *ScriptedModifier) eval(hook string) int {
	ret, err := s.mgr.invoke(s.script, hook, func(L *lua.LState) []lua.LValue {
		args := []lua.LValue{Snapshot(s.subject).Table(L), lua.LNil}
		if s.opponent != nil {
			args[1] = Snapshot(s.opponent).Table(L)
		}
		return args
	})
	if err != nil || ret == lua.LNil {
		return 0
	}
	n, ok := ret.(lua.LNumber)
	if !ok {
		s.mgr.logger.Warn("scripting: hook returned a non-number",
			zap.String("script", s.script),
			zap.String("hook", hook),
			zap.String("type", ret.Type().String()),
		)
		return 0
	}
	return int(n)
}

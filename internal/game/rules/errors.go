// Package rules defines the failure taxonomy shared by the combat rule modules.
//
// Every fallible rule operation returns one of these sentinels, usually
// wrapped with context via fmt.Errorf("...: %w", ...). Callers test with
// errors.Is. None of them is fatal; a combatant's death is a modeled outcome,
// not an error.
package rules

import "errors"

// Construction failures.
var (
	// ErrInvalidAttribute indicates an attribute score outside [1, 10].
	ErrInvalidAttribute = errors.New("attribute out of range")
	// ErrInvalidSkill indicates a skill level outside [0, 10].
	ErrInvalidSkill = errors.New("skill level out of range")
	// ErrInvalidEquipment indicates a weapon or armor value outside its allowed range.
	ErrInvalidEquipment = errors.New("equipment value out of range")
)

// Action gating.
var (
	// ErrActionNotAllowed indicates the combatant's current state forbids the action.
	ErrActionNotAllowed = errors.New("action not allowed")
	// ErrWillpowerCheckFailed indicates an exhausted combatant failed to act this round.
	ErrWillpowerCheckFailed = errors.New("willpower check failed")
)

// Skill advancement.
var (
	// ErrUnknownSkill indicates the skill was never added to the set.
	ErrUnknownSkill = errors.New("unknown skill")
	// ErrDuplicateSkill indicates a skill with the same name is already present.
	ErrDuplicateSkill = errors.New("skill already present")
	// ErrPrerequisiteNotMet indicates a required skill or level is missing.
	ErrPrerequisiteNotMet = errors.New("prerequisite not met")
	// ErrAtCap indicates the skill is already at the maximum level.
	ErrAtCap = errors.New("skill at cap")
	// ErrBudgetExceeded indicates the skill-point budget cannot cover the cost.
	ErrBudgetExceeded = errors.New("skill-point budget exceeded")
)

// Magic.
var (
	// ErrInsufficientLore indicates the caster lacks lore in the spell's branch.
	ErrInsufficientLore = errors.New("insufficient lore")
	// ErrSpellUnknown indicates the spell has not been learned.
	ErrSpellUnknown = errors.New("spell unknown")
)

// Ranged combat.
var (
	// ErrNotPrepared indicates the weapon or maneuver was not prepared beforehand.
	ErrNotPrepared = errors.New("not prepared")
	// ErrRateExceeded indicates the weapon's rate of fire for the round is spent.
	ErrRateExceeded = errors.New("rate of fire exceeded")
	// ErrOutOfRange indicates the target lies beyond the weapon's maximum range.
	ErrOutOfRange = errors.New("target out of range")
)

// Package scripting runs situational modifier scripts in sandboxed GopherLua
// VMs. A script is a Lua file that may define attack_modifier,
// defense_modifier and damage_modifier hooks; the combat layer consults them
// through ScriptedModifier.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps the opcodes one script execution may run when
// no limit is configured.
const DefaultInstructionLimit = 100_000

// strippedGlobals are base-library functions that reach the filesystem,
// load foreign chunks or drive the collector.
var strippedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// opBudget is the context a VM runs under for one execution. GopherLua polls
// Done once per opcode, so every poll spends one instruction and the context
// cancels itself when none are left.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	limit  int
	left   atomic.Int64
}

// Done spends one instruction and returns the cancellation channel.
func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// Exhausted reports whether the execution ran out of instructions.
func (b *opBudget) Exhausted() bool { return b.left.Load() <= 0 }

func (b *opBudget) release() { b.cancel() }

// arm installs a fresh budget of limit opcodes on L and returns it.
// A limit <= 0 means DefaultInstructionLimit.
//
// Postcondition: the next execution on L may run at most the budget's limit
// opcodes; the caller releases the budget when the execution returns.
func arm(L *lua.LState, limit int) *opBudget {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel, limit: limit}
	b.left.Store(int64(limit))
	L.SetContext(b)
	return b
}

// NewSandboxedState creates a Lua state for one modifier script. Only the
// base, table, string and math libraries are opened, strippedGlobals are
// removed, and the state is armed with a budget of instLimit opcodes for its
// first execution.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil LState owned by the caller, who must
// Close it. Callers running more than one execution arm each separately.
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range strippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	arm(L, instLimit)
	return L
}

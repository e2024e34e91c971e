package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/steelkilt/internal/scripting"
)

func TestNewSandboxedState_Globals(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	require.NotNil(t, L)
	defer L.Close()

	removed := []string{"os", "io", "debug", "dofile", "loadfile", "load", "collectgarbage", "require"}
	for _, name := range removed {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "%s must not be reachable", name)
	}
	for _, name := range []string{"math", "string", "table", "tostring", "pairs"} {
		assert.NotEqual(t, lua.LNil, L.GetGlobal(name), "%s must be available", name)
	}
}

// TestNewSandboxedState_ModifierArithmetic runs the kind of code a modifier
// hook needs: table walks, rounding and string functions.
func TestNewSandboxedState_ModifierArithmetic(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()

	require.NoError(t, L.DoString(`
		local wounds = { light = 2, severe = 1, critical = 0 }
		local penalty = 0
		for kind, n in pairs(wounds) do
			if kind == "light" then penalty = penalty - n
			elseif kind == "severe" then penalty = penalty - 2 * n
			else penalty = penalty - 4 * n end
		end
		result = penalty * 10 + math.floor(7 / 2)
		label = string.upper("severe")
	`))
	assert.Equal(t, lua.LNumber(-37), L.GetGlobal("result"))
	assert.Equal(t, lua.LString("SEVERE"), L.GetGlobal("label"))
}

func TestNewSandboxedState_RunawayScriptStopped(t *testing.T) {
	L := scripting.NewSandboxedState(10)
	defer L.Close()
	assert.Error(t, L.DoString(`while true do end`))
}

func TestProperty_AnyLimitStopsRunawayScript(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 500).Draw(t, "limit")
		L := scripting.NewSandboxedState(limit)
		defer L.Close()
		if L.DoString(`local n = 0 while true do n = n + 1 end`) == nil {
			t.Fatalf("runaway script finished under limit %d", limit)
		}
	})
}

package scripting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"
)

func TestArm_DefaultLimit(t *testing.T) {
	L := NewSandboxedState(0)
	defer L.Close()

	b := arm(L, 0)
	defer b.release()
	assert.Equal(t, DefaultInstructionLimit, b.limit)
	assert.False(t, b.Exhausted())
}

// TestArm_FreshBudgetPerExecution verifies an exhausted budget does not
// carry over: the next execution gets the full limit again.
func TestArm_FreshBudgetPerExecution(t *testing.T) {
	L := NewSandboxedState(200)
	defer L.Close()
	require.NoError(t, L.DoString(`function count(n) local t = 0 for i = 1, n do t = t + i end return t end`))

	b := arm(L, 200)
	err := L.DoString(`count(100000)`)
	b.release()
	require.Error(t, err)
	assert.True(t, b.Exhausted())

	for i := 0; i < 10; i++ {
		b = arm(L, 200)
		err = L.DoString(`total = count(10)`)
		b.release()
		require.NoError(t, err, "execution %d", i)
		assert.False(t, b.Exhausted())
		assert.Equal(t, lua.LNumber(55), L.GetGlobal("total"))
	}
}

func TestArm_ScriptErrorIsNotExhaustion(t *testing.T) {
	L := NewSandboxedState(0)
	defer L.Close()

	b := arm(L, 1000)
	err := L.DoString(`error("bad modifier")`)
	b.release()
	require.Error(t, err)
	assert.False(t, b.Exhausted())
}

// TestProperty_BudgetBoundsExecution verifies a loop of n iterations runs
// under a generous budget and is cut off under a budget smaller than n.
func TestProperty_BudgetBoundsExecution(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(10, 2000).Draw(rt, "iterations")
		L := NewSandboxedState(0)
		defer L.Close()
		L.SetGlobal("n", lua.LNumber(n))
		code := `local t = 0 for i = 1, n do t = t + 1 end`

		big := arm(L, 100*n)
		err := L.DoString(code)
		big.release()
		if err != nil || big.Exhausted() {
			rt.Fatalf("n=%d: generous budget failed: %v", n, err)
		}

		small := arm(L, n/2)
		err = L.DoString(code)
		small.release()
		if err == nil || !small.Exhausted() {
			rt.Fatalf("n=%d: budget %d did not stop the loop", n, n/2)
		}
	})
}

package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/steelkilt/internal/game/dice"
)

// script is one loaded Lua file and the VM it runs in. An LState is
// single-threaded, so every call holds mu.
type script struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per loaded script and exposes hook dispatch.
//
// Manager is safe for concurrent use. Calls into the same script are
// serialized; different scripts run concurrently.
type Manager struct {
	mu      sync.RWMutex
	scripts map[string]*script

	rollMu sync.Mutex
	roller *dice.Roller
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no scripts loaded.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		scripts: make(map[string]*script),
		roller:  roller,
		logger:  logger,
	}
}

// Load creates a sandboxed VM for name, registers the engine module, then
// executes the file at path. A previously loaded script with the same name
// is replaced.
//
// Precondition: name must be non-empty.
// Postcondition: returns error on read or Lua load failure and leaves any
// previous script in place.
func (m *Manager) Load(name, path string, instLimit int) error {
	if name == "" {
		return fmt.Errorf("scripting: loading %q: empty script name", path)
	}
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L, name)

	b := arm(L, instLimit)
	err := L.DoFile(path)
	b.release()
	if err != nil {
		L.Close()
		if b.Exhausted() {
			return fmt.Errorf("scripting: loading %q as %q: instruction budget of %d exhausted: %w", path, name, b.limit, err)
		}
		return fmt.Errorf("scripting: loading %q as %q: %w", path, name, err)
	}

	m.mu.Lock()
	if old, ok := m.scripts[name]; ok {
		old.mu.Lock()
		old.L.Close()
		old.L = nil
		old.mu.Unlock()
	}
	m.scripts[name] = &script{L: L, limit: instLimit}
	m.mu.Unlock()

	m.logger.Debug("script loaded", zap.String("script", name), zap.String("path", path))
	return nil
}

// LoadDir loads every *.lua file in dir, in lexicographic order, naming each
// script after its file name without the extension.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns the loaded names, or the first error encountered.
func (m *Manager) LoadDir(dir string, instLimit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".lua" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".lua"))
	}
	sort.Strings(names)

	for _, name := range names {
		if err := m.Load(name, filepath.Join(dir, name+".lua"), instLimit); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// Has reports whether a script named name is loaded.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.scripts[name]
	return ok
}

// Names returns the loaded script names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.scripts))
	for name := range m.scripts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CallHook calls the named Lua global function in the script's VM. Returns
// (LNil, nil) if the hook is not defined or the script is not loaded. Lua
// runtime errors, including an exhausted instruction budget, are logged at
// Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(name, hook string, args ...lua.LValue) (lua.LValue, error) {
	return m.invoke(name, hook, func(*lua.LState) []lua.LValue { return args })
}

// invoke is CallHook with arguments built inside the script's VM.
func (m *Manager) invoke(name, hook string, build func(L *lua.LState) []lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	s, ok := m.scripts[name]
	m.mu.RUnlock()

	if !ok {
		m.logger.Info("scripting: no such script",
			zap.String("script", name),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	L := s.L
	if L == nil {
		return lua.LNil, nil
	}

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	b := arm(L, s.limit)
	defer b.release()
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, build(L)...); err != nil {
		if b.Exhausted() {
			m.logger.Warn("scripting: instruction budget exhausted",
				zap.String("script", name),
				zap.String("hook", hook),
				zap.Int("limit", b.limit),
			)
			return lua.LNil, nil
		}
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", name),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close releases every loaded script.
//
// Postcondition: Names() is empty; subsequent CallHook calls return LNil.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, s := range m.scripts {
		s.mu.Lock()
		s.L.Close()
		s.L = nil
		s.mu.Unlock()
		delete(m.scripts, name)
	}
}

// d10 rolls through the shared roller on behalf of a script.
func (m *Manager) d10() int {
	m.rollMu.Lock()
	defer m.rollMu.Unlock()
	return m.roller.D10()
}

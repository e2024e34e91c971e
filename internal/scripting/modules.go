package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine Lua table into L:
//
//	engine.d10()            roll one ten-sided die through the Manager's roller
//	engine.log.debug(msg)   log at debug level
//	engine.log.info(msg)    log at info level
//	engine.log.warn(msg)    log at warn level
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState, name string) {
	engine := L.NewTable()
	L.SetField(engine, "d10", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.d10()))
		return 1
	}))

	logger := m.logger.With(zap.String("script", name))
	logTable := L.NewTable()
	for level, fn := range map[string]func(string, ...zap.Field){
		"debug": logger.Debug,
		"info":  logger.Info,
		"warn":  logger.Warn,
	} {
		fn := fn
		L.SetField(logTable, level, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1))
			return 0
		}))
	}
	L.SetField(engine, "log", logTable)

	L.SetGlobal("engine", engine)
}

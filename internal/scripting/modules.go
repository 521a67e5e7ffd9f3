package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// RegisterModules defines the engine global in L:
//
//	engine.roll(expr)  -> total of a dice expression such as "2d6+1"
//	engine.chance(n)   -> true with probability 1/n
//	engine.log(msg)    -> writes msg to the application log at info level
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "roll", L.NewFunction(m.luaRoll))
	L.SetField(engine, "chance", L.NewFunction(m.luaChance))
	L.SetField(engine, "log", L.NewFunction(m.luaLog))
	L.SetGlobal("engine", engine)
}

func (m *Manager) luaRoll(L *lua.LState) int {
	expr, err := dice.Parse(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	L.Push(lua.LNumber(m.roller.Roll(expr).Total()))
	return 1
}

func (m *Manager) luaChance(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 {
		L.ArgError(1, "n must be >= 1")
		return 0
	}
	L.Push(lua.LBool(m.roller.Chance("script", n)))
	return 1
}

func (m *Manager) luaLog(L *lua.LState) int {
	m.logger.Info("script", zap.String("message", L.CheckString(1)))
	return 0
}

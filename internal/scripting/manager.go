package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// Narration hook names. Each receives (player, monster) and may return a
// string to display after the built-in narration.
const (
	HookEncounter = "on_encounter"
	HookVictory   = "on_victory"
	HookFlee      = "on_flee"
	HookDefeat    = "on_defeat"
)

// Manager owns one sandboxed LState loaded from a script directory.
// Manager is not safe for concurrent use; the game calls it from its single loop.
type Manager struct {
	L         *lua.LState
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with an empty VM.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a Manager whose engine.* helpers draw from roller.
func NewManager(roller *dice.Roller, logger *zap.Logger, instLimit int) *Manager {
	m := &Manager{
		L:         NewSandboxedState(),
		instLimit: instLimit,
		roller:    roller,
		logger:    logger,
	}
	m.RegisterModules(m.L)
	return m
}

// LoadDir executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: returns an error naming the first file that fails to load;
// files loaded before it stay loaded.
func (m *Manager) LoadDir(scriptDir string) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := WithBudget(m.L, m.instLimit, func() error { return m.L.DoFile(path) }); err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	m.logger.Debug("scripts loaded", zap.String("dir", scriptDir), zap.Int("files", len(luaFiles)))
	return nil
}

// CallHook calls the named Lua global function. Returns LNil if the hook is
// not defined. Lua runtime errors, including an exhausted instruction budget,
// are logged at Warn level and never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) lua.LValue {
	fn := m.L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}

	err := WithBudget(m.L, m.instLimit, func() error {
		return m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error", zap.String("hook", hook), zap.Error(err))
		return lua.LNil
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret
}

// Narrate calls hook with the player and monster names and returns the string
// it produced, or "" when the hook is absent, fails, or returns a non-string.
func (m *Manager) Narrate(hook, player, monster string) string {
	ret := m.CallHook(hook, lua.LString(player), lua.LString(monster))
	if s, ok := ret.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// Close releases the VM.
func (m *Manager) Close() {
	m.L.Close()
}

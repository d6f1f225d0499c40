package scripting

import (
	"math"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/LegoCylon/automagic/internal/game/life"
	"github.com/LegoCylon/automagic/internal/game/random"
)

// RegisterModules installs the engine table into L:
//
//	engine.max            MaxLife as a number
//	engine.spell(n, fn)   registers fn(life, max) -> life under name n
//	engine.random(hi)     uniform integer in [0, hi]; only valid during a cast
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "max", lua.LNumber(life.MaxLife))
	L.SetField(engine, "spell", L.NewFunction(m.luaSpell))
	L.SetField(engine, "random", L.NewFunction(m.luaRandom))
	L.SetGlobal("engine", engine)
}

func (m *Manager) luaSpell(L *lua.LState) int {
	name := strings.ToLower(strings.TrimSpace(L.CheckString(1)))
	fn := L.CheckFunction(2)
	if name == "" {
		L.ArgError(1, "spell name must not be empty")
		return 0
	}
	if _, err := life.ParseOperator(name); err == nil {
		L.ArgError(1, "spell "+name+" shadows a built-in operator")
		return 0
	}
	if _, dup := m.spells[name]; dup {
		L.ArgError(1, "spell "+name+" already registered")
		return 0
	}
	m.spells[name] = fn
	m.order = append(m.order, name)
	return 0
}

func (m *Manager) luaRandom(L *lua.LState) int {
	if m.src == nil {
		L.RaiseError("engine.random is only available while a spell is cast")
		return 0
	}
	hi := float64(L.CheckNumber(1))
	if hi < 0 || math.IsNaN(hi) {
		L.ArgError(1, "upper bound must be a number >= 0")
		return 0
	}
	if hi > float64(life.MaxLife) {
		hi = float64(life.MaxLife)
	}
	L.Push(lua.LNumber(random.Between(m.src, 0, uint64(hi))))
	return 1
}

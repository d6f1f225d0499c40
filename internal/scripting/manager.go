package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/LegoCylon/automagic/internal/game/life"
	"github.com/LegoCylon/automagic/internal/game/random"
)

// Manager owns one sandboxed LState holding every scripted spell.
//
// Casts are serialized by mu because an LState is single-threaded.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	spells    map[string]*lua.LFunction
	order     []string
	instLimit int
	logger    *zap.Logger

	// src is the source of the cast in progress; nil outside Cast.
	src random.Source
}

// NewManager creates a Manager with an empty spell table.
//
// Precondition: logger must be non-nil; instLimit <= 0 selects
// DefaultInstructionLimit.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	m := &Manager{
		spells:    make(map[string]*lua.LFunction),
		instLimit: instLimit,
		logger:    logger,
	}
	m.L = NewSandboxedState()
	m.RegisterModules(m.L)
	return m
}

// LoadDir executes every *.lua file in dir in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Spells registered by the scripts are available from Spells;
// returns an error on the first Lua load failure.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range luaFiles {
		if err := withInstructionLimit(m.L, m.instLimit, func() error { return m.L.DoFile(path) }); err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
		m.logger.Debug("loaded spell script", zap.String("path", path))
	}
	return nil
}

// LoadString executes src as a script named name.
func (m *Manager) LoadString(name, src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := withInstructionLimit(m.L, m.instLimit, func() error { return m.L.DoString(src) }); err != nil {
		return fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	return nil
}

// Spells returns every registered spell in registration order.
func (m *Manager) Spells() []life.Spell {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]life.Spell, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, &scriptedSpell{name: name, m: m})
	}
	return out
}

// Close releases the Lua state.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.L.Close()
}

// cast invokes the named spell. Lua runtime errors and non-numeric results are
// logged at Warn level and leave l unchanged.
//
// Postcondition: result is within [0, MaxLife].
func (m *Manager) cast(name string, l life.Life, src random.Source) life.Life {
	m.mu.Lock()
	defer m.mu.Unlock()

	fn := m.spells[name]
	m.src = src
	defer func() { m.src = nil }()

	err := withInstructionLimit(m.L, m.instLimit, func() error {
		return m.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LNumber(l), lua.LNumber(life.MaxLife))
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("spell", name),
			zap.Error(err),
		)
		return l
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok || math.IsNaN(float64(n)) {
		m.logger.Warn("scripting: spell returned a non-number",
			zap.String("spell", name),
			zap.String("type", ret.Type().String()),
		)
		return l
	}
	return clampLife(float64(n))
}

func clampLife(v float64) life.Life {
	switch {
	case v <= 0:
		return 0
	case v >= float64(life.MaxLife):
		return life.MaxLife
	default:
		return life.Life(math.Floor(v))
	}
}

// scriptedSpell adapts a registered Lua function to life.Spell.
type scriptedSpell struct {
	name string
	m    *Manager
}

func (s *scriptedSpell) Name() string { return s.name }

func (s *scriptedSpell) Cast(l life.Life, src random.Source) life.Life {
	return s.m.cast(s.name, l, src)
}

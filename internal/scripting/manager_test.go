package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/LegoCylon/automagic/internal/game/life"
	"github.com/LegoCylon/automagic/internal/game/random"
	"github.com/LegoCylon/automagic/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core), 0)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func spellNamed(t testing.TB, mgr *scripting.Manager, name string) life.Spell {
	t.Helper()
	for _, s := range mgr.Spells() {
		if s.Name() == name {
			return s
		}
	}
	t.Fatalf("spell %q not registered", name)
	return nil
}

func TestManager_LoadDir_RegistersSpellsInOrder(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "b.lua", `engine.spell("second", function(l, m) return l end)`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"),
		[]byte(`engine.spell("First", function(l, m) return l end)`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	require.NoError(t, mgr.LoadDir(dir))
	spells := mgr.Spells()
	require.Len(t, spells, 2)
	assert.Equal(t, "first", spells[0].Name())
	assert.Equal(t, "second", spells[1].Name())
}

func TestManager_LoadDir_MissingDir(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadDir("/nonexistent/spells"))
}

func TestManager_LoadString_Errors(t *testing.T) {
	cases := map[string]string{
		"syntax":     `engine.spell(`,
		"shadows":    `engine.spell("hurt", function(l) return l end)`,
		"empty name": `engine.spell("", function(l) return l end)`,
		"random":     `engine.random(3)`,
		"runaway":    `while true do end`,
		"duplicate":  `engine.spell("x", function(l) return l end) engine.spell("x", function(l) return l end)`,
		"not a func": `engine.spell("y", 3)`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			mgr, _ := newTestManager(t)
			assert.Error(t, mgr.LoadString(name, src))
		})
	}
}

func TestManager_Cast_UsesGameSource(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("roll", `
		engine.spell("roll", function(life, max)
			return engine.random(10)
		end)
	`))
	spell := spellNamed(t, mgr, "roll")

	a := random.NewSeeded(4)
	b := random.NewSeeded(4)
	for i := 0; i < 20; i++ {
		assert.Equal(t, life.Life(random.Between(b, 0, 10)), spell.Cast(life.MaxLife, a))
	}
}

func TestManager_Cast_ClampsResult(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("clamp", `
		engine.spell("overheal", function(life, max) return max * 2 end)
		engine.spell("overkill", function(life, max) return -life end)
	`))
	src := random.NewSeeded(1)
	assert.Equal(t, life.MaxLife, spellNamed(t, mgr, "overheal").Cast(10, src))
	assert.Equal(t, life.Life(0), spellNamed(t, mgr, "overkill").Cast(10, src))
}

func TestManager_Cast_ErrorLeavesLifeUnchanged(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.LoadString("broken", `
		engine.spell("boom", function(life, max) error("boom") end)
		engine.spell("word", function(life, max) return "ten" end)
		engine.spell("spin", function(life, max) while true do end end)
	`))
	src := random.NewSeeded(1)
	assert.Equal(t, life.Life(77), spellNamed(t, mgr, "boom").Cast(77, src))
	assert.Equal(t, life.Life(77), spellNamed(t, mgr, "word").Cast(77, src))
	assert.Equal(t, life.Life(77), spellNamed(t, mgr, "spin").Cast(77, src))
	assert.Equal(t, 2, logs.FilterMessage("scripting: Lua runtime error").Len())
	assert.Equal(t, 1, logs.FilterMessage("scripting: spell returned a non-number").Len())
}

func TestManager_ScriptedSpellInGame(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadString("drain", `
		engine.spell("drain", function(life, max)
			local cut = engine.random(math.floor(life / 2))
			if cut < 1 then cut = 1 end
			return life - cut
		end)
	`))
	book, err := life.NewSpellbook(mgr.Spells()...)
	require.NoError(t, err)

	g, err := life.New(life.Variant{Name: "drain", Spells: []string{"drain", "hurt"}, Players: 2},
		book, random.NewSeeded(random.DefaultSeed))
	require.NoError(t, err)
	life.Run(g)
	assert.Equal(t, []life.Life{0, 0}, g.Life())
}

func TestManager_ContentSpells(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(filepath.Join("..", "..", "content", "spells")))

	rapid.Check(t, func(rt *rapid.T) {
		l := rapid.Uint32Range(1, life.MaxLife).Draw(rt, "life")
		src := random.NewSeeded(rapid.Uint64().Draw(rt, "seed"))

		drained := spellNamed(t, mgr, "drain").Cast(l, src)
		assert.Less(rt, drained, l)

		healed := spellNamed(t, mgr, "siphon").Cast(l, src)
		assert.GreaterOrEqual(rt, healed, l)
	})
}

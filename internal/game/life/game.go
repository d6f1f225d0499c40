package life

import (
	"fmt"

	"github.com/LegoCylon/automagic/internal/game/random"
)

// Observer receives the life vector after every turn. The slice is a copy.
type Observer func(turn int, life []Life)

// Option configures a Game.
type Option func(*Game)

// WithObserver installs fn to be called after every turn.
func WithObserver(fn Observer) Option {
	return func(g *Game) { g.observer = fn }
}

// Game is one simulation run. It owns its Source and life values exclusively
// and is not safe for concurrent use.
type Game struct {
	src      random.Source
	spells   []Spell
	life     []Life
	turns    int
	observer Observer
}

// New constructs a Game for v: every participant starts at MaxLife and spells
// are resolved through book in the order v lists them.
//
// Precondition: src and book must be non-nil.
// Postcondition: Returns a Game with v.Players life values equal to MaxLife,
// or an error if v is invalid or names an unknown spell.
func New(v Variant, book *Spellbook, src random.Source, opts ...Option) (*Game, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("constructing game %q: %w", v.Name, err)
	}
	spells, err := book.Resolve(v.Spells)
	if err != nil {
		return nil, fmt.Errorf("constructing game %q: %w", v.Name, err)
	}
	g := &Game{
		src:    src,
		spells: spells,
		life:   make([]Life, v.Players),
	}
	for i := range g.life {
		g.life[i] = MaxLife
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Turn advances the game by one turn. Every participant with life > 0 has a
// spell drawn uniformly from the dispatch table cast on it; participants at
// zero are skipped and can never revive.
//
// Postcondition: Returns true while at least one participant has life > 0.
// Callers stop calling Turn once it has returned false.
func (g *Game) Turn() bool {
	alive := false
	for i, l := range g.life {
		if l == 0 {
			continue
		}
		spell := g.spells[random.Index(g.src, len(g.spells))]
		g.life[i] = spell.Cast(l, g.src)
		if g.life[i] > 0 {
			alive = true
		}
	}
	g.turns++
	if g.observer != nil {
		g.observer(g.turns, g.Life())
	}
	return alive
}

// Alive reports whether any participant has life > 0.
func (g *Game) Alive() bool {
	for _, l := range g.life {
		if l > 0 {
			return true
		}
	}
	return false
}

// Life returns a copy of every participant's life value.
func (g *Game) Life() []Life {
	out := make([]Life, len(g.life))
	copy(out, g.life)
	return out
}

// Turns returns the number of times Turn has been called.
func (g *Game) Turns() int {
	return g.turns
}

// Run calls Turn until it returns false and returns how many turns kept the
// game alive. There is no turn limit.
func Run(g *Game) int {
	n := 0
	for g.Turn() {
		n++
	}
	return n
}

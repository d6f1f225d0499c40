package life

import (
	"fmt"
	"strings"

	"github.com/LegoCylon/automagic/internal/game/random"
)

// Spell is one entry of a Game's dispatch table.
type Spell interface {
	// Name returns the unique lower-case spell name.
	Name() string
	// Cast transforms life using src for any randomness it needs.
	//
	// Postcondition: result is within [0, MaxLife].
	Cast(life Life, src random.Source) Life
}

// Spellbook resolves spell names to Spells. It always contains the built-in
// operators.
type Spellbook struct {
	spells map[string]Spell
}

// NewSpellbook returns a Spellbook holding the built-in operators and extra.
//
// Precondition: extra spells have non-empty names.
// Postcondition: Returns an error if an extra spell shadows a built-in or
// another extra spell.
func NewSpellbook(extra ...Spell) (*Spellbook, error) {
	b := &Spellbook{spells: make(map[string]Spell, len(operatorNames)+len(extra))}
	for _, op := range Operators() {
		b.spells[op.Name()] = op
	}
	for _, s := range extra {
		name := strings.ToLower(s.Name())
		if name == "" {
			return nil, fmt.Errorf("spellbook: spell with empty name")
		}
		if _, dup := b.spells[name]; dup {
			return nil, fmt.Errorf("spellbook: spell %q already defined", name)
		}
		b.spells[name] = s
	}
	return b, nil
}

// Lookup returns the spell registered under the case-insensitive name.
func (b *Spellbook) Lookup(name string) (Spell, bool) {
	s, ok := b.spells[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Resolve maps names to Spells preserving order.
//
// Postcondition: Returns an error wrapping ErrUnknownSpell for the first name
// that is not registered.
func (b *Spellbook) Resolve(names []string) ([]Spell, error) {
	out := make([]Spell, 0, len(names))
	for _, n := range names {
		s, ok := b.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSpell, n)
		}
		out = append(out, s)
	}
	return out, nil
}

// Len returns the number of registered spells.
func (b *Spellbook) Len() int {
	return len(b.spells)
}

package life

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LegoCylon/automagic/internal/game/random"
)

// ErrUnknownSpell is returned when a spell name resolves to nothing.
var ErrUnknownSpell = errors.New("unknown spell")

// Operator is one of the built-in life transformations. The declaration order
// is the canonical dispatch order.
type Operator int

const (
	// Heal adds a uniform draw from [0, MaxLife-life].
	Heal Operator = iota
	// Hurt subtracts a uniform draw from [0, life].
	Hurt
	// Maim subtracts a fixed fraction of MaxLife chosen by the current bracket.
	Maim
	// Rend divides life by its GCD with a uniform draw from [0, MaxLife].
	Rend
)

var operatorNames = [...]string{
	Heal: "heal",
	Hurt: "hurt",
	Maim: "maim",
	Rend: "rend",
}

// Operators returns every built-in operator in dispatch order.
func Operators() []Operator {
	return []Operator{Heal, Hurt, Maim, Rend}
}

// ParseOperator maps a case-insensitive name to its Operator.
//
// Postcondition: Returns the Operator or an error wrapping ErrUnknownSpell.
func ParseOperator(name string) (Operator, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for op, opName := range operatorNames {
		if opName == n {
			return Operator(op), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpell, name)
}

// Name returns the lower-case operator name.
func (o Operator) Name() string {
	if o < 0 || int(o) >= len(operatorNames) {
		return fmt.Sprintf("operator(%d)", int(o))
	}
	return operatorNames[o]
}

// String implements fmt.Stringer.
func (o Operator) String() string { return o.Name() }

// Cast applies the operator to life.
//
// Postcondition: result is within [0, MaxLife].
func (o Operator) Cast(life Life, src random.Source) Life {
	switch o {
	case Heal:
		return ApplyHeal(life, src)
	case Hurt:
		return ApplyHurt(life, src)
	case Maim:
		return ApplyMaim(life)
	case Rend:
		return ApplyRend(life, src)
	default:
		panic(fmt.Sprintf("life: Cast called on invalid operator %d", int(o)))
	}
}

// ApplyHeal adds a uniform draw from [0, MaxLife-life] to life.
//
// Postcondition: life <= result <= MaxLife.
func ApplyHeal(life Life, src random.Source) Life {
	return life + Life(random.Between(src, 0, uint64(MaxLife-life)))
}

// ApplyHurt subtracts a uniform draw from [0, life] from life.
//
// Postcondition: 0 <= result <= life.
func ApplyHurt(life Life, src random.Source) Life {
	return life - Life(random.Between(src, 0, uint64(life)))
}

// MaimReduction returns the amount Maim subtracts at the given life.
//
//	(80, 100]% -> 25%
//	(60,  80]% -> 20%
//	(40,  60]% -> 15%
//	(20,  40]% -> 10%
//	[ 0,  20]% ->  0
func MaimReduction(life Life) Life {
	switch {
	case life > percent*80:
		return percent * 25
	case life > percent*60:
		return percent * 20
	case life > percent*40:
		return percent * 15
	case life > percent*20:
		return percent * 10
	default:
		return 0
	}
}

// ApplyMaim subtracts MaimReduction(life) from life. It draws no randomness.
//
// Postcondition: result <= life.
func ApplyMaim(life Life) Life {
	return life - MaimReduction(life)
}

// ApplyRend draws d uniformly from [0, MaxLife] and returns RendBy(life, d).
func ApplyRend(life Life, src random.Source) Life {
	return RendBy(life, Life(random.Between(src, 0, uint64(MaxLife))))
}

// RendBy divides life by GCD(life, d).
//
// Postcondition: for life > 0, 1 <= result <= life. RendBy(0, d) == 0.
func RendBy(life, d Life) Life {
	if life == 0 {
		return 0
	}
	return life / GCD(life, d)
}

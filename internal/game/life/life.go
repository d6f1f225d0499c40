// Package life implements the turn-based stochastic life-counter simulation:
// bounded life values, the operators that heal and harm them, and the Game
// that advances one turn at a time until every life value reaches zero.
package life

import "math"

// Life is one participant's remaining vitality.
//
// Invariant: 0 <= Life <= MaxLife after every operator application.
type Life = uint32

// MaxLife is the largest representable Life and the starting value of every
// participant.
const MaxLife Life = math.MaxUint32

// percent is one hundredth of MaxLife. Table-driven reductions are expressed as
// multiples of percent so no intermediate product can overflow.
const percent = MaxLife / 100

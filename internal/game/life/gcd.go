package life

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Mod returns a % b for integral operands.
//
// Precondition: b != 0.
func Mod[T constraints.Integer](a, b T) T {
	return a % b
}

// ModFloat returns the floating-point remainder of a / b with the sign of a.
func ModFloat[T constraints.Float](a, b T) T {
	return T(math.Mod(float64(a), float64(b)))
}

// GCD returns the greatest common divisor of a and b by the Euclidean
// algorithm.
//
// Postcondition: GCD(a, 0) == a; GCD(a, b) == GCD(b, a).
func GCD[T constraints.Integer](a, b T) T {
	for b != 0 {
		a, b = b, Mod(a, b)
	}
	return a
}

// GCDFloat runs the Euclidean recurrence over ModFloat. It returns NaN when
// either operand is NaN or infinite, since the recurrence does not terminate
// for those inputs.
func GCDFloat[T constraints.Float](a, b T) T {
	fa, fb := float64(a), float64(b)
	if math.IsNaN(fa) || math.IsNaN(fb) || math.IsInf(fa, 0) || math.IsInf(fb, 0) {
		return T(math.NaN())
	}
	for b != 0 {
		a, b = b, ModFloat(a, b)
	}
	return a
}

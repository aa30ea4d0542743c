// Package epsilon supplies epsilon-tolerant comparison predicates for
// decimal.Decimal values, mirroring the is_epsilon_equal/epsilon_lt/
// epsilon_gt family the matching core uses wherever a crossing test or
// a zero-open-quantity check must be resilient to fractional noise.
package epsilon

import "github.com/shopspring/decimal"

// Value is the fixed tolerance used by every predicate in this
// package. It is small enough not to mask a genuine price or quantity
// difference in any realistic instrument, and fixed rather than
// relative so that behavior does not vary with magnitude.
var Value = decimal.NewFromFloat(1e-10)

// Eq reports whether a and b differ by less than Value.
func Eq(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Value)
}

// Lt reports whether a is strictly less than b, outside the
// tolerance band.
func Lt(a, b decimal.Decimal) bool {
	return a.LessThan(b) && !Eq(a, b)
}

// Gt reports whether a is strictly greater than b, outside the
// tolerance band.
func Gt(a, b decimal.Decimal) bool {
	return a.GreaterThan(b) && !Eq(a, b)
}

// Zero reports whether d is within tolerance of zero.
func Zero(d decimal.Decimal) bool {
	return d.Abs().LessThan(Value)
}

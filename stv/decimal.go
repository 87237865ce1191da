package stv

import "github.com/shopspring/decimal"

// roundSignificant rounds d to the given number of significant decimal
// digits. This is distinct from decimal.Decimal.Round, which rounds to
// a fixed number of places after the point; a transfer weight like
// 0.0000001234567890123 and a tally like 1234567890.123 both need the
// same *significant-digit* precision to contain IEEE-754-style drift
// regardless of magnitude.
//
// d == 0 is returned unchanged; rounding zero to N significant digits is
// still zero.
func roundSignificant(d decimal.Decimal, sig int) decimal.Decimal {
	if d.IsZero() {
		return d
	}

	exp := digitsBeforePoint(d)
	places := int32(sig) - exp
	return d.Round(places)
}

// digitsBeforePoint returns one more than the power-of-ten exponent of
// d's most significant digit: 1 for a number in [1,10), 0 for [0.1,1), 5
// for [10000,100000), -3 for [0.0001,0.001), and so on. It is the exponent roundSignificant needs
// to turn "N significant digits" into "N minus this many decimal
// places".
func digitsBeforePoint(d decimal.Decimal) int32 {
	abs := d.Abs()
	exp := int32(0)
	ten := decimal.NewFromInt(10)
	one := decimal.NewFromInt(1)
	if abs.GreaterThanOrEqual(one) {
		for abs.GreaterThanOrEqual(ten) {
			abs = abs.Div(ten)
			exp++
		}
		return exp + 1
	}
	for abs.LessThan(one) {
		abs = abs.Mul(ten)
		exp--
	}
	return exp + 1
}

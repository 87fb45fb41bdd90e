package core

import "github.com/shopspring/decimal"

// exactExponent is small enough for NewFromFloatWithExponent to keep every
// binary digit of a float64, so rounding sees the stored value and not its
// shortest decimal string.
const exactExponent = -1074

// ToFixed rounds the exact binary value of val to the given number of
// decimals, half away from zero.
func ToFixed(val float64, places int) float64 {
	return decimal.NewFromFloatWithExponent(val, exactExponent).Round(int32(places)).InexactFloat64()
}

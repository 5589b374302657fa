package payment

import (
	"fmt"
	"math"
)

// minorPerMajor is the fixed currency scale: 100 minor units per major unit.
const minorPerMajor = 100

// amountEpsilon absorbs binary float noise when checking whether an amount is
// exactly representable at two decimal places.
const amountEpsilon = 1e-6

// MajorToMinor converts a major-unit amount to integer minor units, rounding
// half-up at the minor-unit boundary. Amounts that are not exactly
// representable with two decimal digits are rejected rather than truncated.
func MajorToMinor(amount float64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidAmount, amount)
	}

	scaled := amount * minorPerMajor
	rounded := math.Floor(scaled + 0.5)
	if math.Abs(scaled-rounded) > amountEpsilon {
		return 0, fmt.Errorf("%w: %v has sub-minor precision", ErrInvalidAmount, amount)
	}

	return int64(rounded), nil
}

// MinorToMajor is the inverse display conversion.
func MinorToMajor(minor int64) float64 {
	return float64(minor) / minorPerMajor
}

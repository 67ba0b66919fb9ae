package fiscal

import (
	"github.com/shopspring/decimal"
)

// CoefficientTarget is the required coefficient total under Convenio Multilateral.
var CoefficientTarget = decimal.NewFromInt(100)

// CoefficientTolerance is the accepted deviation from the target. Coefficients come
// from three-decimal forms so exact equality is too strict.
var CoefficientTolerance = decimal.RequireFromString("0.01")

// SumCoefficients adds up the given coefficient percentages.
func SumCoefficients(coefficients []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range coefficients {
		sum = sum.Add(c)
	}
	return sum
}

// CoefficientsBalance reports whether the coefficient sum is within tolerance of 100.
func CoefficientsBalance(coefficients []decimal.Decimal) bool {
	diff := SumCoefficients(coefficients).Sub(CoefficientTarget).Abs()
	return diff.LessThan(CoefficientTolerance)
}

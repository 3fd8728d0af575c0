// Package pricing implements Black-Scholes valuation and Greeks for European
// index options, plus the volatility-regime strategy table and the
// illustrative payoff and smile series shown next to a quote.
//
// All functions are pure and safe for concurrent use.
package pricing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"

	"options-wizard/internal/types"
)

const (
	// DaysPerYear converts calendar days to a year fraction.
	DaysPerYear = 365.0
	// MinYears replaces a non-positive time to expiry.
	MinYears = 1e-4
	// epsilon keeps denominators away from zero.
	epsilon = 1e-9
	// greeksPlaces is the rounding applied to every Greek.
	greeksPlaces = 4
)

var ErrGreeksUnavailable = errors.New("greeks unavailable: spot, strike and volatility must be positive, rate and days finite")

var unitNormal = distuv.UnitNormal

func normCDF(x float64) float64 {
	return unitNormal.CDF(x)
}

func normPDF(x float64) float64 {
	return unitNormal.Prob(x)
}

// YearFraction converts days to expiry into years, clamping expired or
// same-day contracts to MinYears.
func YearFraction(days float64) float64 {
	if !(days > 0) {
		return MinYears
	}
	return days / DaysPerYear
}

func d1d2(S, K, T, r, sigma float64) (d1, d2, sqrtT float64) {
	sqrtT = math.Sqrt(T)
	volT := sigma * sqrtT
	d1 = (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (volT + epsilon)
	d2 = d1 - volT
	return d1, d2, sqrtT
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func valid(S, K, sigma float64) bool {
	return S > 0 && K > 0 && sigma > 0 && finite(S, K, sigma)
}

// Price returns the Black-Scholes premium of a European option. Anything other
// than types.Put is priced as a call.
//
// When spot, strike or volatility is not positive the zero-volatility limit is
// returned instead: the discounted intrinsic value, floored at zero. A
// non-finite rate or days to expiry drops the discount, and a non-finite spot
// or strike prices at zero.
func Price(optType types.OptionType, S, K, daysToExpiry, r, sigma float64) float64 {
	if !finite(S, K) {
		return 0
	}
	if !finite(daysToExpiry, r) {
		return Intrinsic(optType, math.Max(K, 0), math.Max(S, 0))
	}

	T := YearFraction(daysToExpiry)
	discount := math.Exp(-r * T)

	if !valid(S, K, sigma) {
		fwd := math.Max(S, 0) - math.Max(K, 0)*discount
		if optType == types.Put {
			return math.Max(0, -fwd)
		}
		return math.Max(0, fwd)
	}

	d1, d2, _ := d1d2(S, K, T, r, sigma)
	if optType == types.Put {
		return K*discount*normCDF(-d2) - S*normCDF(-d1)
	}
	return S*normCDF(d1) - K*discount*normCDF(d2)
}

// Greeks returns delta, gamma, vega (per 1% vol), theta (per calendar day) and
// rho (per 1% rate), each rounded to four decimal places.
//
// Invalid inputs, including a non-finite rate or days to expiry, yield the zero
// Greeks together with ErrGreeksUnavailable.
func Greeks(optType types.OptionType, S, K, daysToExpiry, r, sigma float64) (types.Greeks, error) {
	if !valid(S, K, sigma) || !finite(daysToExpiry, r) {
		return types.Greeks{}, ErrGreeksUnavailable
	}

	T := YearFraction(daysToExpiry)
	discount := math.Exp(-r * T)
	d1, d2, sqrtT := d1d2(S, K, T, r, sigma)
	pdf := normPDF(d1)

	gamma := pdf / (S*sigma*sqrtT + epsilon)
	vega := S * pdf * sqrtT / 100
	decay := -S * pdf * sigma / (2*sqrtT + epsilon)

	var delta, theta, rho float64
	if optType == types.Put {
		delta = -normCDF(-d1)
		theta = (decay - r*K*discount*normCDF(-d2)) / DaysPerYear
		rho = -K * T * discount * normCDF(-d2) / 100
	} else {
		delta = normCDF(d1)
		theta = (decay - r*K*discount*normCDF(d2)) / DaysPerYear
		rho = K * T * discount * normCDF(d2) / 100
	}

	return types.Greeks{
		Delta: round(delta, greeksPlaces),
		Gamma: round(gamma, greeksPlaces),
		Vega:  round(vega, greeksPlaces),
		Theta: round(theta, greeksPlaces),
		Rho:   round(rho, greeksPlaces),
	}, nil
}

// round rounds half away from zero. Non-finite values collapse to zero.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

package pricing

import (
	"errors"
	"fmt"
	"math"

	"options-wizard/internal/types"
)

var ErrNoConvergence = errors.New("implied vol did not converge")

const (
	ivMaxIter  = 100
	ivTol      = 1e-6
	ivMinSigma = 1e-4
	ivMaxSigma = 5.0
)

// rawVega is dPrice/dSigma without the per-1% scaling used in Greeks.
func rawVega(S, K, T, r, sigma float64) float64 {
	d1, _, sqrtT := d1d2(S, K, T, r, sigma)
	return S * normPDF(d1) * sqrtT
}

// ImpliedVol solves for the volatility that reproduces marketPrice using
// Newton-Raphson from a 20% starting guess, clamped to [1e-4, 5].
func ImpliedVol(optType types.OptionType, S, K, daysToExpiry, r, marketPrice float64) (float64, error) {
	if !valid(S, K, 1) {
		return 0, fmt.Errorf("implied vol: spot and strike must be positive")
	}
	if !(marketPrice > 0) || !finite(marketPrice) {
		return 0, fmt.Errorf("implied vol: market price must be positive, got %v", marketPrice)
	}
	if !finite(daysToExpiry, r) {
		return 0, fmt.Errorf("implied vol: rate and days to expiry must be finite")
	}

	T := YearFraction(daysToExpiry)
	sigma := 0.20

	for i := 0; i < ivMaxIter; i++ {
		diff := Price(optType, S, K, daysToExpiry, r, sigma) - marketPrice
		if math.Abs(diff) < ivTol {
			return sigma, nil
		}

		vega := rawVega(S, K, T, r, sigma)
		if vega < 1e-8 {
			break
		}

		sigma -= diff / vega
		if sigma < ivMinSigma {
			sigma = ivMinSigma
		}
		if sigma > ivMaxSigma {
			sigma = ivMaxSigma
		}
	}

	return 0, ErrNoConvergence
}

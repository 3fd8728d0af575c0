package pricing

import (
	"math"

	"options-wizard/internal/types"
)

// Volatility regimes, in decimal IV.
const (
	HighIV = 0.30
	LowIV  = 0.15
	// NearMoney is the largest |strike - spot| still treated as at the money.
	NearMoney = 200.0
)

// SuggestFromGreeksAndIV picks a strategy from the implied-volatility regime,
// refined by the sign of theta (rich IV), vega (cheap IV) or moneyness (normal IV).
// spot is part of the signature for callers that key rules on it; the current
// table does not.
func SuggestFromGreeksAndIV(iv, spot, strikeDiff, theta, vega float64) types.StrategyLabel {
	switch {
	case iv > HighIV:
		if theta > 0 {
			return types.ShortStraddleStrangle
		}
		return types.LongButterflyIronCondor
	case iv < LowIV:
		if vega > 0 {
			return types.LongStraddleLongCall
		}
		return types.DebitCalendarSpread
	default:
		if math.Abs(strikeDiff) <= NearMoney {
			return types.IronFlyShortCondor
		}
		return types.VerticalSpread
	}
}

package strategy

import "options-wizard/internal/types"

// Strength bands. A reading is weak below 1, moderate from 1 to 3 inclusive
// and strong above 3.
const (
	weakBelow   = 1.0
	strongAbove = 3.0
)

func moderate(strength float64) bool {
	return strength >= weakBelow && strength <= strongAbove
}

// Intraday returns the intraday strategy for the given readings. Branches are
// evaluated in order and the first match wins.
//
// oi is accepted for signature parity with Positional and is not consulted.
func Intraday(strength float64, vega, theta, oi types.Sentiment) types.StrategyLabel {
	switch {
	case strength < weakBelow:
		switch {
		case vega == types.Bullish && theta == types.Bullish:
			return types.QuickMoveATMCall
		case vega == types.Bullish:
			return types.BuyCallBullCallSpread
		case theta == types.Bullish:
			return types.SellPutShortStraddle
		default:
			return types.NoTrade
		}
	case moderate(strength):
		switch {
		case vega == types.Bullish:
			return types.BuyCallDebitSpread
		case theta == types.Bullish:
			return types.CreditSpreadSellPuts
		default:
			return types.IronCondorNeutral
		}
	default:
		switch {
		case vega == types.Bullish:
			return types.BuyCallMomentum
		case theta == types.Bullish:
			return types.ShortPutsScalping
		default:
			return types.DirectionalTightStop
		}
	}
}

// Positional returns the positional strategy for the given readings.
func Positional(strength float64, vega, theta, oi types.Sentiment) types.StrategyLabel {
	switch {
	case strength > strongAbove && oi == types.Bullish:
		switch {
		case vega == types.Bullish:
			return types.LongFuturesProtectiveCall
		case theta == types.Bullish:
			return types.BullPutSpreadCoveredCall
		default:
			return types.TrendFollowingFutures
		}
	case moderate(strength):
		switch {
		case vega == types.Bullish:
			return types.DiagonalCallSpread
		case theta == types.Bullish:
			return types.CreditSpreadPutWriting
		default:
			return types.HedgedStraddleStrangle
		}
	default:
		if vega == types.Bearish && theta == types.Bullish {
			return types.SellOptionsCondorStrangle
		}
		return types.AvoidPositional
	}
}

package pricing

import (
	"math"

	"options-wizard/internal/types"
)

const (
	DefaultHalfWidth = 500.0
	DefaultStep      = 50.0
	// DefaultSmileSlope is the IV added per unit of relative distance from spot.
	DefaultSmileSlope = 0.02
)

// Strikes returns the grid center-halfWidth .. center+halfWidth in step
// increments, skipping non-positive prices. It returns nil for a non-positive
// step or negative width.
func Strikes(center, halfWidth, step float64) []float64 {
	if !(step > 0) || halfWidth < 0 || !finite(center, halfWidth, step) {
		return nil
	}
	n := int(math.Floor(2*halfWidth/step + 1e-9))
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		x := center - halfWidth + float64(i)*step
		if x <= 0 {
			continue
		}
		out = append(out, x)
	}
	return out
}

// Intrinsic is the expiry value of one option at underlying price x.
func Intrinsic(optType types.OptionType, strike, x float64) float64 {
	if optType == types.Put {
		return math.Max(0, strike-x)
	}
	return math.Max(0, x-strike)
}

// Payoff returns the per-unit expiry PnL of a single option leg across the
// underlying grid around spot. A SELL leg is the mirror image of a BUY.
func Payoff(optType types.OptionType, action types.TradeAction, strike, premium float64, prices []float64) []types.Point {
	sign := action.Sign()
	out := make([]types.Point, 0, len(prices))
	for _, x := range prices {
		out = append(out, types.Point{X: x, Y: sign * (Intrinsic(optType, strike, x) - premium)})
	}
	return out
}

// VolSmile returns a placeholder smile iv(k) = baseVol + slope*|k-spot|/spot.
// It is flat at baseVol when spot is not positive. Illustrative only.
func VolSmile(spot, baseVol, slope float64, strikes []float64) []types.Point {
	out := make([]types.Point, 0, len(strikes))
	for _, k := range strikes {
		iv := baseVol
		if spot > 0 {
			iv += slope * math.Abs(k-spot) / spot
		}
		out = append(out, types.Point{X: k, Y: iv})
	}
	return out
}

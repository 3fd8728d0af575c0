package pricing

import (
	"context"
	"errors"
	"fmt"

	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/types"
)

// BlackScholes is the interfaces.Pricer backed by the closed-form model.
type BlackScholes struct{}

var _ interfaces.Pricer = (*BlackScholes)(nil)

func NewBlackScholes() *BlackScholes {
	return &BlackScholes{}
}

// Quote prices the option, computes its Greeks and derives the
// volatility-regime strategy. A positive mp.MarketPrice is first inverted to
// an implied volatility, which then replaces mp.Volatility.
//
// Invalid market inputs are not an error: the quote carries zero Greeks with
// GreeksAvailable set to false and no strategy.
func (b *BlackScholes) Quote(ctx context.Context, optType types.OptionType, mp types.MarketParams) (types.Quote, error) {
	if optType != types.Call && optType != types.Put {
		return types.Quote{}, fmt.Errorf("%w: %q", types.ErrInvalidOptionType, optType)
	}

	sigma := mp.Volatility
	q := types.Quote{OptionType: optType}

	if mp.MarketPrice > 0 {
		iv, err := ImpliedVol(optType, mp.Spot, mp.Strike, mp.DaysToExpiry, mp.RiskFreeRate, mp.MarketPrice)
		if err == nil {
			sigma = iv
			q.ImpliedVol = round(iv, greeksPlaces)
		} else {
			logger.Warn(ctx, "Implied vol unavailable, using configured volatility",
				"market_price", mp.MarketPrice,
				"volatility", mp.Volatility,
				"error", err,
			)
		}
	}

	q.Volatility = sigma
	q.Premium = Price(optType, mp.Spot, mp.Strike, mp.DaysToExpiry, mp.RiskFreeRate, sigma)

	g, err := Greeks(optType, mp.Spot, mp.Strike, mp.DaysToExpiry, mp.RiskFreeRate, sigma)
	switch {
	case err == nil:
		q.Greeks = g
		q.GreeksAvailable = true
	case errors.Is(err, ErrGreeksUnavailable):
		logger.Warn(ctx, "Greeks unavailable for market inputs",
			"spot", mp.Spot,
			"strike", mp.Strike,
			"days_to_expiry", mp.DaysToExpiry,
			"risk_free_rate", mp.RiskFreeRate,
			"volatility", sigma,
		)
		return q, nil
	default:
		return types.Quote{}, err
	}

	q.Strategy = SuggestFromGreeksAndIV(sigma, mp.Spot, mp.Strike-mp.Spot, q.Greeks.Theta, q.Greeks.Vega)
	return q, nil
}

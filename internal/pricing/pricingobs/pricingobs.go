package pricingobs

import (
	"context"
	"time"

	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/trace"
	"options-wizard/internal/types"
)

type observablePricer struct {
	pricer interfaces.Pricer
}

var _ interfaces.Pricer = (*observablePricer)(nil)

func Wrap(pricer interfaces.Pricer) interfaces.Pricer {
	return &observablePricer{
		pricer: pricer,
	}
}

func (op *observablePricer) Quote(ctx context.Context, optType types.OptionType, mp types.MarketParams) (types.Quote, error) {
	ctx, span := trace.StartSpan(ctx, "pricing.Quote")
	defer span.End()

	start := time.Now()

	logger.DebugSkip(ctx, 1, "Pricing option",
		"option_type", optType,
		"spot", mp.Spot,
		"strike", mp.Strike,
		"days_to_expiry", mp.DaysToExpiry,
		"rate", mp.RiskFreeRate,
		"volatility", mp.Volatility,
		"market_price", mp.MarketPrice,
	)

	q, err := op.pricer.Quote(ctx, optType, mp)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to price option", err,
			"option_type", optType,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return types.Quote{}, err
	}

	logger.Pricing(ctx, string(q.OptionType), q.Premium, q.GreeksAvailable,
		"delta", q.Greeks.Delta,
		"gamma", q.Greeks.Gamma,
		"vega", q.Greeks.Vega,
		"theta", q.Greeks.Theta,
		"rho", q.Greeks.Rho,
		"implied_vol", q.ImpliedVol,
		"strategy", string(q.Strategy),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return q, nil
}

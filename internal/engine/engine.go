package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/pricing"
	"options-wizard/internal/store"
	"options-wizard/internal/types"
)

var (
	ErrUnknownIndex         = errors.New("unknown index")
	ErrMarketParamsRequired = errors.New("market parameters required for volatility rule set")
)

// Engine composes the sentiment advisor and the option pricer under the
// configured rule set and attaches the illustrative chart series.
type Engine struct {
	cfg     *store.Config
	advisor interfaces.Advisor
	pricer  interfaces.Pricer
}

func newEngine(cfg *store.Config, advisor interfaces.Advisor, pricer interfaces.Pricer) (*Engine, error) {
	switch cfg.Strategy.RuleSet {
	case store.RuleSetSentiment, store.RuleSetVolatility:
	default:
		return nil, fmt.Errorf("%w %q", store.ErrUnknownRuleSet, cfg.Strategy.RuleSet)
	}
	return &Engine{cfg: cfg, advisor: advisor, pricer: pricer}, nil
}

func (e *Engine) Evaluate(ctx context.Context, req types.WizardRequest) (*types.WizardReport, error) {
	name := strings.ToUpper(strings.TrimSpace(req.Index))
	if name == "" {
		name = e.cfg.DefaultIndex
	}
	idx, ok := e.cfg.Index(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownIndex, req.Index)
	}

	optType, action, err := normalizeLeg(req.OptionType, req.Action)
	if err != nil {
		return nil, err
	}

	report := &types.WizardReport{Index: name}

	leg := e.defaultLeg(idx, optType)
	if req.Market != nil {
		mp := *req.Market
		if mp.Strike == 0 && mp.Spot > 0 {
			mp.Strike = atmStrike(mp.Spot, idx.StrikeStep)
			logger.Debug(ctx, "Strike not given, using ATM", "spot", mp.Spot, "strike", mp.Strike)
		}

		q, err := e.pricer.Quote(ctx, optType, mp)
		if err != nil {
			return nil, fmt.Errorf("quote: %w", err)
		}
		report.Market = &mp
		report.Quote = &q
		leg = chartLeg{center: mp.Spot, strike: mp.Strike, premium: q.Premium, vol: q.Volatility}
		if !(leg.center > 0) {
			leg.center = idx.Spot
		}
		if !(leg.strike > 0) {
			leg.strike = atmStrike(leg.center, idx.StrikeStep)
		}
		if !(leg.vol > 0) {
			leg.vol = e.cfg.Pricing.Volatility
		}
	}

	advice, err := e.advise(ctx, req.Sentiment, report.Quote)
	if err != nil {
		return nil, err
	}
	report.Advice = advice

	grid := pricing.Strikes(leg.center, e.cfg.Pricing.PayoffHalfWidth, e.cfg.Pricing.PayoffStep)
	report.Payoff = pricing.Payoff(optType, action, leg.strike, leg.premium, grid)
	report.Smile = pricing.VolSmile(leg.center, leg.vol, e.cfg.Pricing.SmileSlope, grid)

	logger.Debug(ctx, "Wizard evaluation complete",
		"index", name,
		"rule_set", advice.RuleSet,
		"intraday", string(advice.Intraday),
		"positional", string(advice.Positional),
		"priced", report.Quote != nil,
	)
	return report, nil
}

func (e *Engine) advise(ctx context.Context, in types.SentimentInput, q *types.Quote) (types.Advice, error) {
	switch e.cfg.Strategy.RuleSet {
	case store.RuleSetVolatility:
		if q == nil {
			return types.Advice{}, ErrMarketParamsRequired
		}
		if !q.GreeksAvailable {
			return types.Advice{}, fmt.Errorf("%s rule set: %w", store.RuleSetVolatility, pricing.ErrGreeksUnavailable)
		}
		return types.Advice{
			Intraday:   q.Strategy,
			Positional: q.Strategy,
			RuleSet:    store.RuleSetVolatility,
		}, nil
	default:
		advice, err := e.advisor.Advise(ctx, in)
		if err != nil {
			return types.Advice{}, fmt.Errorf("advise: %w", err)
		}
		return advice, nil
	}
}

// defaultLeg prices an ATM option at the index default spot so the charts
// have something to show when no market parameters were supplied.
func (e *Engine) defaultLeg(idx store.IndexConfig, optType types.OptionType) chartLeg {
	p := e.cfg.Pricing
	strike := atmStrike(idx.Spot, idx.StrikeStep)
	return chartLeg{
		center:  idx.Spot,
		strike:  strike,
		premium: pricing.Price(optType, idx.Spot, strike, p.DaysToExpiry, p.RiskFreeRate, p.Volatility),
		vol:     p.Volatility,
	}
}

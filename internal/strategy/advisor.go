package strategy

import (
	"context"

	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/types"
)

// RuleSetName identifies the sentiment decision table in reports.
const RuleSetName = "sentiment"

// Advisor is the sentiment-table implementation of interfaces.Advisor.
type Advisor struct{}

var _ interfaces.Advisor = (*Advisor)(nil)

func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Advise never fails; every combination of readings yields a label.
func (a *Advisor) Advise(ctx context.Context, in types.SentimentInput) (types.Advice, error) {
	logger.Debug(ctx, "Evaluating sentiment table",
		"strength", in.Strength,
		"vega", in.Vega,
		"theta", in.Theta,
		"oi", in.OI,
	)
	return types.Advice{
		Intraday:   Intraday(in.Strength, in.Vega, in.Theta, in.OI),
		Positional: Positional(in.Strength, in.Vega, in.Theta, in.OI),
		RuleSet:    RuleSetName,
	}, nil
}

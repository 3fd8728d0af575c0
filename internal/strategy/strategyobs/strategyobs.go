package strategyobs

import (
	"context"

	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/trace"
	"options-wizard/internal/types"
)

// observableAdvisor wraps an Advisor with logging and tracing
type observableAdvisor struct {
	advisor interfaces.Advisor
}

var _ interfaces.Advisor = (*observableAdvisor)(nil)

func Wrap(advisor interfaces.Advisor) interfaces.Advisor {
	return &observableAdvisor{
		advisor: advisor,
	}
}

func (oa *observableAdvisor) Advise(ctx context.Context, in types.SentimentInput) (types.Advice, error) {
	ctx, span := trace.StartSpan(ctx, "strategy.Advise")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting strategy advice",
		"strength", in.Strength,
		"vega", in.Vega,
		"theta", in.Theta,
		"oi", in.OI,
	)

	advice, err := oa.advisor.Advise(ctx, in)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to get strategy advice", err,
			"strength", in.Strength,
		)
		return types.Advice{}, err
	}

	logger.Recommendation(ctx, string(types.Intraday), string(advice.Intraday), "rule_set", advice.RuleSet)
	logger.Recommendation(ctx, string(types.Positional), string(advice.Positional), "rule_set", advice.RuleSet)

	return advice, nil
}

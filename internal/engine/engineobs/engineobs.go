package engineobs

import (
	"context"
	"time"

	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/trace"
	"options-wizard/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Evaluate(ctx context.Context, req types.WizardRequest) (*types.WizardReport, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Evaluate")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting wizard evaluation",
		"index", req.Index,
		"strength", req.Sentiment.Strength,
		"priced", req.Market != nil,
	)

	report, err := oe.engine.Evaluate(ctx, req)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Wizard evaluation failed", err,
			"index", req.Index,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Wizard evaluation completed",
		"index", report.Index,
		"rule_set", report.Advice.RuleSet,
		"intraday", string(report.Advice.Intraday),
		"positional", string(report.Advice.Positional),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}

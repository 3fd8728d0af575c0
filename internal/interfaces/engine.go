package interfaces

import (
	"context"

	"options-wizard/internal/types"
)

type Engine interface {
	Evaluate(ctx context.Context, req types.WizardRequest) (*types.WizardReport, error)
}

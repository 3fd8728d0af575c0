package interfaces

import (
	"context"

	"options-wizard/internal/types"
)

// Pricer values a single option and derives a volatility-regime strategy from its Greeks.
type Pricer interface {
	Quote(ctx context.Context, optType types.OptionType, mp types.MarketParams) (types.Quote, error)
}

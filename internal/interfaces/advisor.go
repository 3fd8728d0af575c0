package interfaces

import (
	"context"

	"options-wizard/internal/types"
)

// Advisor maps qualitative sentiment readings to intraday and positional strategies.
type Advisor interface {
	Advise(ctx context.Context, in types.SentimentInput) (types.Advice, error)
}

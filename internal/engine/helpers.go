package engine

import (
	"math"

	"options-wizard/internal/types"
)

// chartLeg is the single option leg the payoff and smile series are drawn for.
type chartLeg struct {
	center  float64
	strike  float64
	premium float64
	vol     float64
}

// atmStrike rounds spot to the nearest listed strike.
func atmStrike(spot, step float64) float64 {
	if step <= 0 {
		return spot
	}
	return math.Round(spot/step) * step
}

// normalizeLeg defaults an empty option type to CE and an empty action to BUY.
func normalizeLeg(optType types.OptionType, action types.TradeAction) (types.OptionType, types.TradeAction, error) {
	var err error
	if optType == "" {
		optType = types.Call
	} else if optType, err = types.ParseOptionType(string(optType)); err != nil {
		return "", "", err
	}
	if action == "" {
		action = types.Buy
	} else if action, err = types.ParseTradeAction(string(action)); err != nil {
		return "", "", err
	}
	return optType, action, nil
}

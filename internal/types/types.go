package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSentiment   = errors.New("invalid sentiment")
	ErrInvalidOptionType  = errors.New("invalid option type")
	ErrInvalidTradeAction = errors.New("invalid trade action")
)

// Sentiment is a qualitative market reading used for the Vega, Theta and OI inputs.
type Sentiment string

const (
	Bullish  Sentiment = "Bullish"
	Sideways Sentiment = "Sideways"
	Bearish  Sentiment = "Bearish"
	NoView   Sentiment = "No View"
)

func ParseSentiment(s string) (Sentiment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bullish", "bull":
		return Bullish, nil
	case "sideways", "neutral":
		return Sideways, nil
	case "bearish", "bear":
		return Bearish, nil
	case "no view", "noview", "no_view", "none", "":
		return NoView, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSentiment, s)
}

type OptionType string

const (
	Call OptionType = "CE"
	Put  OptionType = "PE"
)

func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ce", "call", "c":
		return Call, nil
	case "pe", "put", "p":
		return Put, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOptionType, s)
}

type TradeAction string

const (
	Buy  TradeAction = "BUY"
	Sell TradeAction = "SELL"
)

func ParseTradeAction(s string) (TradeAction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "B", "LONG":
		return Buy, nil
	case "SELL", "S", "SHORT":
		return Sell, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTradeAction, s)
}

// Sign is +1 for BUY and -1 for SELL.
func (a TradeAction) Sign() float64 {
	if a == Sell {
		return -1
	}
	return 1
}

type Horizon string

const (
	Intraday   Horizon = "INTRADAY"
	Positional Horizon = "POSITIONAL"
)

type SentimentInput struct {
	Strength float64   `json:"strength"`
	Vega     Sentiment `json:"vega"`
	Theta    Sentiment `json:"theta"`
	OI       Sentiment `json:"oi"`
}

type MarketParams struct {
	Spot         float64 `json:"spot" yaml:"spot"`
	Strike       float64 `json:"strike" yaml:"strike"`
	DaysToExpiry float64 `json:"days_to_expiry" yaml:"days_to_expiry"`
	RiskFreeRate float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	Volatility   float64 `json:"volatility" yaml:"volatility"`
	// MarketPrice is an observed premium; when positive the quote solves for
	// implied volatility and prices with it.
	MarketPrice  float64 `json:"market_price,omitempty" yaml:"market_price,omitempty"`
}

type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

type Quote struct {
	OptionType      OptionType    `json:"option_type"`
	Premium         float64       `json:"premium"`
	Greeks          Greeks        `json:"greeks"`
	GreeksAvailable bool          `json:"greeks_available"`
	// Volatility is the sigma the quote was priced with.
	Volatility      float64       `json:"volatility"`
	ImpliedVol      float64       `json:"implied_vol,omitempty"`
	// Strategy is empty when the Greeks are unavailable.
	Strategy        StrategyLabel `json:"strategy,omitempty"`
}

type Advice struct {
	Intraday   StrategyLabel `json:"intraday"`
	Positional StrategyLabel `json:"positional"`
	RuleSet    string        `json:"rule_set"`
}

// Point is one sample of an illustrative chart series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type WizardRequest struct {
	Index      string         `json:"index"`
	Sentiment  SentimentInput `json:"sentiment"`
	Market     *MarketParams  `json:"market,omitempty"`
	OptionType OptionType     `json:"option_type"`
	Action     TradeAction    `json:"action"`
}

type WizardReport struct {
	Index  string        `json:"index"`
	Advice Advice        `json:"advice"`
	// Market holds the pricing inputs after ATM strike resolution.
	Market *MarketParams `json:"market,omitempty"`
	Quote  *Quote        `json:"quote,omitempty"`
	Payoff []Point       `json:"payoff,omitempty"`
	Smile  []Point       `json:"smile,omitempty"`
}

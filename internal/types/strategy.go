package types

// StrategyLabel names a recommended options strategy. Values come from a
// fixed catalog; callers compare against the constants below.
type StrategyLabel string

// Intraday catalog.
const (
	QuickMoveATMCall      StrategyLabel = "quick-move ATM call"
	BuyCallBullCallSpread StrategyLabel = "buy call / bull call spread"
	SellPutShortStraddle  StrategyLabel = "sell put / short straddle"
	NoTrade               StrategyLabel = "no trade"
	BuyCallDebitSpread    StrategyLabel = "buy call / debit spread"
	CreditSpreadSellPuts  StrategyLabel = "credit spread / sell puts"
	IronCondorNeutral     StrategyLabel = "iron condor (neutral)"
	BuyCallMomentum       StrategyLabel = "buy call / momentum trade"
	ShortPutsScalping     StrategyLabel = "short puts / scalping"
	DirectionalTightStop  StrategyLabel = "directional trade with tight stop-loss"
)

// Positional catalog.
const (
	LongFuturesProtectiveCall StrategyLabel = "long futures + protective call"
	BullPutSpreadCoveredCall  StrategyLabel = "bull put spread / covered call"
	TrendFollowingFutures     StrategyLabel = "trend-following long futures"
	DiagonalCallSpread        StrategyLabel = "diagonal call spread"
	CreditSpreadPutWriting    StrategyLabel = "credit spread / put writing"
	HedgedStraddleStrangle    StrategyLabel = "hedged straddle/strangle"
	SellOptionsCondorStrangle StrategyLabel = "sell options (iron condor/strangle)"
	AvoidPositional           StrategyLabel = "avoid positional entry"
)

// Volatility-regime catalog.
const (
	ShortStraddleStrangle   StrategyLabel = "short straddle/strangle"
	LongButterflyIronCondor StrategyLabel = "long butterfly / iron condor"
	LongStraddleLongCall    StrategyLabel = "long straddle/long call"
	DebitCalendarSpread     StrategyLabel = "debit spread / calendar spread"
	IronFlyShortCondor      StrategyLabel = "iron fly / short iron condor"
	VerticalSpread          StrategyLabel = "bull call spread / bear put spread"
)

var descriptions = map[StrategyLabel]string{
	QuickMoveATMCall:      "Buy an at-the-money call; a quick move is expected.",
	BuyCallBullCallSpread: "Buy a call, or cap cost with a bull call spread.",
	SellPutShortStraddle:  "Sell a put or a short straddle to collect decay.",
	NoTrade:               "No edge. Wait and watch.",
	BuyCallDebitSpread:    "Buy a call or a debit spread.",
	CreditSpreadSellPuts:  "Sell a credit spread or naked puts.",
	IronCondorNeutral:     "Neutral range view: iron condor.",
	BuyCallMomentum:       "Strong trend with rising IV: buy calls, ride momentum.",
	ShortPutsScalping:     "Strong trend with decay in favour: short puts or scalp.",
	DirectionalTightStop:  "Trade the direction with a tight stop-loss.",

	LongFuturesProtectiveCall: "Long futures hedged with a protective call, or LEAPS.",
	BullPutSpreadCoveredCall:  "Bull put spread, or covered call against a long.",
	TrendFollowingFutures:     "Follow the trend with long futures.",
	DiagonalCallSpread:        "Diagonal call spread, or an outright call.",
	CreditSpreadPutWriting:    "Credit spread or put writing.",
	HedgedStraddleStrangle:    "Hedged straddle or strangle.",
	SellOptionsCondorStrangle: "Sell premium with an iron condor or strangle.",
	AvoidPositional:           "Weak trend: stay out of positional trades.",

	ShortStraddleStrangle:   "IV is rich and decay pays: short straddle or strangle.",
	LongButterflyIronCondor: "IV is rich without decay support: long butterfly or iron condor.",
	LongStraddleLongCall:    "IV is cheap: long straddle or long call.",
	DebitCalendarSpread:     "IV is cheap and vega is negative: debit or calendar spread.",
	IronFlyShortCondor:      "Normal IV near the money: iron fly or short iron condor.",
	VerticalSpread:          "Normal IV away from the money: bull call or bear put spread.",
}

// Describe returns a one-line explanation of the label for display.
func (l StrategyLabel) Describe() string {
	if d, ok := descriptions[l]; ok {
		return d
	}
	return string(l)
}

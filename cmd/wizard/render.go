package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"options-wizard/internal/types"
)

func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func renderReport(w io.Writer, req types.WizardRequest, r *types.WizardReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Index:\t%s\n", r.Index)
	fmt.Fprintf(tw, "Rule set:\t%s\n", r.Advice.RuleSet)
	fmt.Fprintf(tw, "Intraday:\t%s\t%s\n", r.Advice.Intraday, r.Advice.Intraday.Describe())
	fmt.Fprintf(tw, "Positional:\t%s\t%s\n", r.Advice.Positional, r.Advice.Positional.Describe())

	if q := r.Quote; q != nil {
		fmt.Fprintln(tw)
		if m := r.Market; m != nil {
			fmt.Fprintf(tw, "Strike:\t%s\n", fixed(m.Strike, 2))
		}
		fmt.Fprintf(tw, "Premium (%s):\t%s\n", q.OptionType, fixed(q.Premium, 2))
		if q.ImpliedVol > 0 {
			fmt.Fprintf(tw, "Implied vol:\t%s%%\n", fixed(q.ImpliedVol*100, 2))
		}
		if q.GreeksAvailable {
			g := q.Greeks
			fmt.Fprintf(tw, "Delta\tGamma\tVega\tTheta\tRho\n")
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				fixed(g.Delta, 4), fixed(g.Gamma, 4), fixed(g.Vega, 4), fixed(g.Theta, 4), fixed(g.Rho, 4))
		} else {
			fmt.Fprintln(tw, "Greeks:\tunavailable for these inputs")
		}
		if q.Strategy != "" {
			fmt.Fprintf(tw, "Greeks/IV strategy:\t%s\t%s\n", q.Strategy, q.Strategy.Describe())
		}
	}

	if len(r.Payoff) > 0 {
		fmt.Fprintf(tw, "\nUnderlying\tPnL at expiry (%s %s)\tSmile IV\n", req.Action, req.OptionType)
		for i, p := range r.Payoff {
			iv := ""
			if i < len(r.Smile) {
				iv = fixed(r.Smile[i].Y*100, 2) + "%"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", fixed(p.X, 0), fixed(p.Y, 2), iv)
		}
	}

	return tw.Flush()
}

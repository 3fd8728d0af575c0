package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"options-wizard/internal/api"
	"options-wizard/internal/interfaces"
	"options-wizard/internal/logger"
	"options-wizard/internal/store"
	"options-wizard/internal/trace"
	"options-wizard/internal/types"
)

type options struct {
	configPath string
	serve      bool
	remote     string
	asJSON     bool

	index    string
	strength float64
	vega     string
	theta    string
	oi       string

	optType string
	action  string
	spot    float64
	strike  float64
	days    float64
	rate    float64
	vol     float64
	premium float64

	set map[string]bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("wizard", flag.ContinueOnError)
	o := &options{}

	fs.StringVar(&o.configPath, "config", "config.yaml", "path to YAML config")
	fs.BoolVar(&o.serve, "serve", false, "run the HTTP API instead of a one-shot evaluation")
	fs.StringVar(&o.remote, "remote", "", "evaluate on a remote wizard server at this base URL")
	fs.BoolVar(&o.asJSON, "json", false, "print the report as JSON")

	fs.StringVar(&o.index, "index", "", "index name (NIFTY, BANKNIFTY, SENSEX)")
	fs.Float64Var(&o.strength, "strength", 0, "trend strength")
	fs.StringVar(&o.vega, "vega", "Sideways", "vega sentiment: Bullish, Sideways, Bearish, No View")
	fs.StringVar(&o.theta, "theta", "Sideways", "theta sentiment")
	fs.StringVar(&o.oi, "oi", "Sideways", "open interest sentiment")

	fs.StringVar(&o.optType, "type", "CE", "option type: CE or PE")
	fs.StringVar(&o.action, "action", "BUY", "trade action: BUY or SELL")
	fs.Float64Var(&o.spot, "spot", 0, "spot price; enables pricing when set")
	fs.Float64Var(&o.strike, "strike", 0, "strike price (default ATM)")
	fs.Float64Var(&o.days, "days", 0, "days to expiry (default from config)")
	fs.Float64Var(&o.rate, "rate", 0, "risk-free rate as a decimal (default from config)")
	fs.Float64Var(&o.vol, "vol", 0, "volatility as a decimal (default from config)")
	fs.Float64Var(&o.premium, "premium", 0, "observed option premium; solves for implied volatility when set")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	o.set = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// request builds the wizard request from flags, filling unset pricing
// inputs from the config.
func (o *options) request(cfg *store.Config) (types.WizardRequest, error) {
	var req types.WizardRequest
	var err error

	req.Index = o.index
	req.Sentiment.Strength = o.strength
	if req.Sentiment.Vega, err = types.ParseSentiment(o.vega); err != nil {
		return req, err
	}
	if req.Sentiment.Theta, err = types.ParseSentiment(o.theta); err != nil {
		return req, err
	}
	if req.Sentiment.OI, err = types.ParseSentiment(o.oi); err != nil {
		return req, err
	}
	if req.OptionType, err = types.ParseOptionType(o.optType); err != nil {
		return req, err
	}
	if req.Action, err = types.ParseTradeAction(o.action); err != nil {
		return req, err
	}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"strength", o.strength}, {"spot", o.spot}, {"strike", o.strike},
		{"days", o.days}, {"rate", o.rate}, {"vol", o.vol}, {"premium", o.premium},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return req, fmt.Errorf("-%s must be a finite number, got %v", f.name, f.v)
		}
	}

	if o.set["spot"] {
		mp := types.MarketParams{
			Spot:         o.spot,
			Strike:       o.strike,
			DaysToExpiry: cfg.Pricing.DaysToExpiry,
			RiskFreeRate: cfg.Pricing.RiskFreeRate,
			Volatility:   cfg.Pricing.Volatility,
		}
		if o.set["days"] {
			mp.DaysToExpiry = o.days
		}
		if o.set["rate"] {
			mp.RiskFreeRate = o.rate
		}
		if o.set["vol"] {
			mp.Volatility = o.vol
		}
		if o.set["premium"] {
			mp.MarketPrice = o.premium
		}
		req.Market = &mp
	}
	return req, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	os.Exit(execute(opts))
}

func execute(opts *options) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = trace.Shutdown(shutdownCtx)
	}()

	if err := run(ctx, opts); err != nil {
		logger.ErrorWithErr(ctx, "Wizard failed", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(ctx, opts.configPath)
	if err != nil {
		return err
	}

	var eng interfaces.Engine
	if opts.remote != "" {
		eng = initializeRemoteEngine(ctx, opts.remote)
	} else {
		comps, err := initializeComponents(ctx, cfg)
		if err != nil {
			return err
		}
		if opts.serve {
			stopCompactor, err := startCompactor(ctx, cfg, comps.journal)
			if err != nil {
				return err
			}
			defer stopCompactor()

			srv := api.NewServer(cfg, comps.engine, comps.advisor, comps.pricer)
			return srv.Run(ctx)
		}
		eng = comps.engine
	}

	req, err := opts.request(cfg)
	if err != nil {
		return err
	}

	report, err := eng.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return renderReport(os.Stdout, req, report)
}

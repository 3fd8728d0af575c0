package pricing

import (
	"errors"
	"math"
	"testing"

	"options-wizard/internal/types"
)

func TestImpliedVolRoundTrip(t *testing.T) {
	cases := []struct {
		opt   types.OptionType
		S, K  float64
		days  float64
		sigma float64
	}{
		{types.Call, 22000, 22000, 30, 0.25},
		{types.Put, 22000, 21800, 14, 0.18},
		{types.Call, 48000, 48500, 45, 0.12},
		{types.Put, 73000, 73000, 7, 0.40},
	}

	for _, c := range cases {
		price := Price(c.opt, c.S, c.K, c.days, 0.06, c.sigma)
		iv, err := ImpliedVol(c.opt, c.S, c.K, c.days, 0.06, price)
		if err != nil {
			t.Fatalf("%s S=%v K=%v: ImpliedVol failed: %v", c.opt, c.S, c.K, err)
		}
		if math.Abs(iv-c.sigma) > 1e-4 {
			t.Errorf("%s S=%v K=%v: expected iv %v, got %v", c.opt, c.S, c.K, c.sigma, iv)
		}
	}
}

func TestImpliedVolRejectsBadInputs(t *testing.T) {
	if _, err := ImpliedVol(types.Call, 0, 22000, 7, 0.06, 100); err == nil {
		t.Error("Expected error for zero spot")
	}
	if _, err := ImpliedVol(types.Call, 22000, 22000, 7, 0.06, 0); err == nil {
		t.Error("Expected error for zero market price")
	}
	if _, err := ImpliedVol(types.Call, 22000, 22000, 7, math.NaN(), 100); err == nil {
		t.Error("Expected error for NaN rate")
	}
	if _, err := ImpliedVol(types.Put, 22000, 22000, math.Inf(1), 0.06, 100); err == nil {
		t.Error("Expected error for infinite days")
	}
}

func TestImpliedVolBelowIntrinsic(t *testing.T) {
	// A deep in-the-money call quoted under its discounted intrinsic value has no solution.
	_, err := ImpliedVol(types.Call, 22000, 20000, 30, 0.06, 100)
	if !errors.Is(err, ErrNoConvergence) {
		t.Errorf("Expected ErrNoConvergence, got %v", err)
	}
}

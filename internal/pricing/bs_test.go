package pricing

import (
	"errors"
	"math"
	"testing"

	"options-wizard/internal/types"
)

func TestPutCallParity(t *testing.T) {
	cases := []struct {
		S, K, days, r, sigma float64
	}{
		{22000, 22200, 7, 0.06, 0.20},
		{22000, 21000, 30, 0.065, 0.15},
		{48000, 48000, 1, 0.07, 0.35},
		{100, 120, 365, 0.05, 0.40},
		{73000, 70000, 90, 0.0, 0.12},
	}

	for _, c := range cases {
		call := Price(types.Call, c.S, c.K, c.days, c.r, c.sigma)
		put := Price(types.Put, c.S, c.K, c.days, c.r, c.sigma)
		T := c.days / DaysPerYear
		want := c.S - c.K*math.Exp(-c.r*T)
		if diff := math.Abs((call - put) - want); diff > 1e-6 {
			t.Errorf("S=%v K=%v days=%v: call-put=%v, expected %v (diff %g)", c.S, c.K, c.days, call-put, want, diff)
		}
	}
}

func TestPriceKnownValue(t *testing.T) {
	// S=100 K=100 T=1y r=5% sigma=20%: textbook call 10.4506, put 5.5735.
	call := Price(types.Call, 100, 100, 365, 0.05, 0.20)
	if math.Abs(call-10.4506) > 1e-3 {
		t.Errorf("Expected call ~10.4506, got %.6f", call)
	}
	put := Price(types.Put, 100, 100, 365, 0.05, 0.20)
	if math.Abs(put-5.5735) > 1e-3 {
		t.Errorf("Expected put ~5.5735, got %.6f", put)
	}
}

func TestGreeksLongCallSigns(t *testing.T) {
	g, err := Greeks(types.Call, 22000, 22200, 7, 0.06, 0.20)
	if err != nil {
		t.Fatalf("Greeks failed: %v", err)
	}
	if !(g.Delta > 0 && g.Delta < 1) {
		t.Errorf("Expected delta in (0,1), got %v", g.Delta)
	}
	if !(g.Gamma > 0) {
		t.Errorf("Expected gamma > 0, got %v", g.Gamma)
	}
	if !(g.Theta < 0) {
		t.Errorf("Expected theta < 0, got %v", g.Theta)
	}
	if !(g.Vega > 0) {
		t.Errorf("Expected vega > 0, got %v", g.Vega)
	}
	if !(g.Rho > 0) {
		t.Errorf("Expected rho > 0, got %v", g.Rho)
	}
}

func TestGreeksPutSigns(t *testing.T) {
	g, err := Greeks(types.Put, 22000, 22200, 7, 0.06, 0.20)
	if err != nil {
		t.Fatalf("Greeks failed: %v", err)
	}
	if !(g.Delta < 0 && g.Delta > -1) {
		t.Errorf("Expected delta in (-1,0), got %v", g.Delta)
	}
	if !(g.Rho < 0) {
		t.Errorf("Expected rho < 0, got %v", g.Rho)
	}

	call, _ := Greeks(types.Call, 22000, 22200, 7, 0.06, 0.20)
	if g.Gamma != call.Gamma || g.Vega != call.Vega {
		t.Errorf("Expected call and put to share gamma and vega, got %+v and %+v", call, g)
	}
}

func TestGreeksRoundedToFourPlaces(t *testing.T) {
	g, err := Greeks(types.Call, 22000, 22200, 7, 0.06, 0.20)
	if err != nil {
		t.Fatalf("Greeks failed: %v", err)
	}
	for name, v := range map[string]float64{
		"delta": g.Delta, "gamma": g.Gamma, "vega": g.Vega, "theta": g.Theta, "rho": g.Rho,
	} {
		scaled := v * 1e4
		if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			t.Errorf("Expected %s rounded to 4 places, got %v", name, v)
		}
	}
}

func TestGreeksInvalidInputs(t *testing.T) {
	cases := []struct {
		name        string
		S, K, sigma float64
	}{
		{"zero spot", 0, 22000, 0.2},
		{"zero strike", 22000, 0, 0.2},
		{"negative spot", -1, 22000, 0.2},
		{"zero vol", 22000, 22000, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, opt := range []types.OptionType{types.Call, types.Put} {
				g, err := Greeks(opt, c.S, c.K, 7, 0.06, c.sigma)
				if !errors.Is(err, ErrGreeksUnavailable) {
					t.Errorf("Expected ErrGreeksUnavailable, got %v", err)
				}
				if g != (types.Greeks{}) {
					t.Errorf("Expected zero greeks, got %+v", g)
				}

				p := Price(opt, c.S, c.K, 7, 0.06, c.sigma)
				if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
					t.Errorf("Expected finite non-negative price, got %v", p)
				}
			}
		})
	}
}

func TestNonFiniteRateOrDays(t *testing.T) {
	cases := []struct {
		name    string
		days, r float64
	}{
		{"NaN rate", 7, math.NaN()},
		{"+Inf rate", 7, math.Inf(1)},
		{"-Inf rate", 7, math.Inf(-1)},
		{"NaN days", math.NaN(), 0.06},
		{"+Inf days", math.Inf(1), 0.06},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, opt := range []types.OptionType{types.Call, types.Put} {
				g, err := Greeks(opt, 22000, 21800, c.days, c.r, 0.20)
				if !errors.Is(err, ErrGreeksUnavailable) {
					t.Errorf("%s: expected ErrGreeksUnavailable, got %v", opt, err)
				}
				if g != (types.Greeks{}) {
					t.Errorf("%s: expected zero greeks, got %+v", opt, g)
				}

				p := Price(opt, 22000, 21800, c.days, c.r, 0.20)
				if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
					t.Errorf("%s: expected finite non-negative price, got %v", opt, p)
				}
			}

			if p := Price(types.Call, 22000, 21800, c.days, c.r, 0.20); p != 200 {
				t.Errorf("Expected undiscounted intrinsic 200, got %v", p)
			}
		})
	}

	if p := Price(types.Call, math.Inf(1), 22000, 7, 0.06, 0.20); p != 0 {
		t.Errorf("Expected 0 for infinite spot, got %v", p)
	}
}

func TestExpiredContractIsFinite(t *testing.T) {
	var prev *types.Greeks
	for _, days := range []float64{0, -5} {
		p := Price(types.Call, 22000, 22200, days, 0.06, 0.20)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			t.Errorf("days=%v: expected finite price, got %v", days, p)
		}
		g, err := Greeks(types.Call, 22000, 22200, days, 0.06, 0.20)
		if err != nil {
			t.Fatalf("days=%v: Greeks failed: %v", days, err)
		}
		if prev != nil && g != *prev {
			t.Errorf("days=%v: expected the same clamped greeks %+v, got %+v", days, *prev, g)
		}
		prev = &g
	}
}

func TestPricingIsIdempotent(t *testing.T) {
	p1 := Price(types.Put, 48000, 47500, 12, 0.065, 0.18)
	p2 := Price(types.Put, 48000, 47500, 12, 0.065, 0.18)
	if p1 != p2 {
		t.Errorf("Expected identical prices, got %v and %v", p1, p2)
	}

	g1, _ := Greeks(types.Put, 48000, 47500, 12, 0.065, 0.18)
	g2, _ := Greeks(types.Put, 48000, 47500, 12, 0.065, 0.18)
	if g1 != g2 {
		t.Errorf("Expected identical greeks, got %+v and %+v", g1, g2)
	}
}

func TestYearFraction(t *testing.T) {
	if got := YearFraction(365); got != 1 {
		t.Errorf("Expected 1, got %v", got)
	}
	if got := YearFraction(0); got != MinYears {
		t.Errorf("Expected %v, got %v", MinYears, got)
	}
	if got := YearFraction(math.NaN()); got != MinYears {
		t.Errorf("Expected %v for NaN, got %v", MinYears, got)
	}
}

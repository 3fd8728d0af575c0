package pricing

import (
	"math"
	"testing"

	"options-wizard/internal/types"
)

func TestStrikes(t *testing.T) {
	grid := Strikes(22000, DefaultHalfWidth, DefaultStep)
	if len(grid) != 21 {
		t.Fatalf("Expected 21 strikes, got %d", len(grid))
	}
	if grid[0] != 21500 || grid[len(grid)-1] != 22500 {
		t.Errorf("Expected range [21500, 22500], got [%v, %v]", grid[0], grid[len(grid)-1])
	}
	for i := 1; i < len(grid); i++ {
		if grid[i]-grid[i-1] != DefaultStep {
			t.Errorf("Expected step %v at %d, got %v", DefaultStep, i, grid[i]-grid[i-1])
		}
	}

	if got := Strikes(22000, 500, 0); got != nil {
		t.Errorf("Expected nil for zero step, got %v", got)
	}
	if got := Strikes(22000, 0, 50); len(got) != 1 || got[0] != 22000 {
		t.Errorf("Expected single center strike, got %v", got)
	}
}

func TestStrikesSkipNonPositivePrices(t *testing.T) {
	grid := Strikes(100, DefaultHalfWidth, DefaultStep)
	if len(grid) == 0 {
		t.Fatal("Expected a non-empty grid")
	}
	for _, x := range grid {
		if !(x > 0) {
			t.Errorf("Expected only positive prices, got %v", x)
		}
	}
	if grid[0] != 50 || grid[len(grid)-1] != 600 {
		t.Errorf("Expected range [50, 600], got [%v, %v]", grid[0], grid[len(grid)-1])
	}

	for _, p := range Payoff(types.Put, types.Buy, 100, 5, grid) {
		if p.Y > 95 {
			t.Errorf("Expected put payoff capped at strike minus premium, got %v at %v", p.Y, p.X)
		}
	}
}

func TestPayoff(t *testing.T) {
	grid := Strikes(22000, 500, 50)

	buyCall := Payoff(types.Call, types.Buy, 22000, 100, grid)
	if len(buyCall) != len(grid) {
		t.Fatalf("Expected %d points, got %d", len(grid), len(buyCall))
	}
	if buyCall[0].Y != -100 {
		t.Errorf("Expected max loss -100 below strike, got %v", buyCall[0].Y)
	}
	if last := buyCall[len(buyCall)-1]; last.X != 22500 || last.Y != 400 {
		t.Errorf("Expected (22500, 400), got (%v, %v)", last.X, last.Y)
	}

	buyPut := Payoff(types.Put, types.Buy, 22000, 80, grid)
	if buyPut[0].Y != 420 {
		t.Errorf("Expected put payoff 420 at 21500, got %v", buyPut[0].Y)
	}

	sellCall := Payoff(types.Call, types.Sell, 22000, 100, grid)
	for i := range grid {
		if sellCall[i].Y != -buyCall[i].Y {
			t.Errorf("At %v: expected sell %v to mirror buy %v", grid[i], sellCall[i].Y, buyCall[i].Y)
		}
	}
}

func TestVolSmileMonotonicInDistance(t *testing.T) {
	spot := 22000.0
	smile := VolSmile(spot, 0.20, DefaultSmileSlope, Strikes(spot, 500, 50))

	for i := range smile {
		for j := range smile {
			di := math.Abs(smile[i].X - spot)
			dj := math.Abs(smile[j].X - spot)
			if di < dj && !(smile[i].Y < smile[j].Y) {
				t.Errorf("Expected iv(%v)=%v < iv(%v)=%v", smile[i].X, smile[i].Y, smile[j].X, smile[j].Y)
			}
		}
	}

	atm := smile[10]
	if atm.X != spot || atm.Y != 0.20 {
		t.Errorf("Expected base vol at spot, got (%v, %v)", atm.X, atm.Y)
	}
}

func TestVolSmileFlatWithoutSpot(t *testing.T) {
	for _, p := range VolSmile(0, 0.25, DefaultSmileSlope, []float64{100, 200, 300}) {
		if p.Y != 0.25 {
			t.Errorf("Expected flat 0.25, got %v at %v", p.Y, p.X)
		}
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"options-wizard/internal/engine"
	"options-wizard/internal/pricing"
	"options-wizard/internal/store"
	"options-wizard/internal/strategy"
	"options-wizard/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := store.Default()
	advisor := strategy.NewAdvisor()
	pricer := pricing.NewBlackScholes()
	eng, err := engine.New(cfg, advisor, pricer)
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	return NewServer(cfg, eng, advisor, pricer)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(t).Handler(), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Expected ok status, got %s", rec.Body.String())
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected a generated request ID")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected echoed request ID abc-123, got %q", got)
	}
}

func TestIndices(t *testing.T) {
	rec := doJSON(t, newTestServer(t).Handler(), http.MethodGet, "/api/v1/indices", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var out struct {
		Indices map[string]IndexInfo `json:"indices"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Indices) != 3 {
		t.Errorf("Expected 3 indices, got %d", len(out.Indices))
	}
	if !out.Indices["NIFTY"].Default || out.Indices["BANKNIFTY"].Default {
		t.Errorf("Expected only NIFTY to be the default, got %+v", out.Indices)
	}
}

func TestStrategies(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/strategies",
		`{"strength":0.5,"vega":"bullish","theta":"bull","oi":"none"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var advice types.Advice
	if err := json.Unmarshal(rec.Body.Bytes(), &advice); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if advice.Intraday != types.QuickMoveATMCall {
		t.Errorf("Expected %q, got %q", types.QuickMoveATMCall, advice.Intraday)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/strategies", `{"strength":1,"vega":"euphoric"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown sentiment, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/strategies", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestGreeks(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/greeks",
		`{"option_type":"CE","market":{"spot":22000,"strike":22200,"days_to_expiry":7,"risk_free_rate":0.06,"volatility":0.2}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var q types.Quote
	if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !q.GreeksAvailable || !(q.Greeks.Delta > 0 && q.Greeks.Delta < 1) {
		t.Errorf("Expected long call greeks, got %+v", q)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/greeks", `{"option_type":"put","market":{"spot":0,"strike":22000,"volatility":0.2}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for unusable market inputs, got %d", rec.Code)
	}
	q = types.Quote{}
	if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.GreeksAvailable || q.OptionType != types.Put {
		t.Errorf("Expected unavailable put greeks, got %+v", q)
	}

	if q.Strategy != "" {
		t.Errorf("Expected no strategy without greeks, got %q", q.Strategy)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/greeks", `{"option_type":"XX","market":{}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown option type, got %d", rec.Code)
	}
}

func TestWizard(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/wizard",
		`{"index":"nifty","sentiment":{"strength":4,"vega":"Bullish","theta":"Sideways","oi":"Bullish"},"option_type":"CE","action":"BUY"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report types.WizardReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Advice.Positional != types.LongFuturesProtectiveCall {
		t.Errorf("Expected %q, got %q", types.LongFuturesProtectiveCall, report.Advice.Positional)
	}
	if len(report.Payoff) != 21 {
		t.Errorf("Expected 21 payoff points, got %d", len(report.Payoff))
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/wizard", `{"index":"DAX"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown index, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown index") {
		t.Errorf("Expected error message, got %s", rec.Body.String())
	}
}

func TestGreeksWithMarketPrice(t *testing.T) {
	h := newTestServer(t).Handler()
	observed := pricing.Price(types.Call, 22000, 22200, 7, 0.06, 0.35)
	body, err := json.Marshal(GreeksRequest{
		OptionType:  types.Call,
		Market:      types.MarketParams{Spot: 22000, Strike: 22200, DaysToExpiry: 7, RiskFreeRate: 0.06, Volatility: 0.20},
		MarketPrice: observed,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/v1/greeks", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var q types.Quote
	if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.ImpliedVol < 0.3499 || q.ImpliedVol > 0.3501 {
		t.Errorf("Expected implied vol ~0.35, got %v", q.ImpliedVol)
	}
}

func TestWizardVolatilityRuleSetWithoutGreeks(t *testing.T) {
	cfg := store.Default()
	cfg.Strategy.RuleSet = store.RuleSetVolatility
	advisor := strategy.NewAdvisor()
	pricer := pricing.NewBlackScholes()
	eng, err := engine.New(cfg, advisor, pricer)
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	h := NewServer(cfg, eng, advisor, pricer).Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/wizard",
		`{"market":{"spot":22000,"strike":22000,"days_to_expiry":7,"risk_free_rate":0.06,"volatility":0}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 when greeks are unavailable, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "greeks unavailable") {
		t.Errorf("Expected greeks error message, got %s", rec.Body.String())
	}
}

package trading

import (
	"context"
	"errors"
	"testing"

	"paper-trader/quotes"
)

type unavailableProvider struct{}

func (unavailableProvider) Lookup(ctx context.Context, symbol string) (quotes.Quote, error) {
	return quotes.Quote{}, quotes.ErrUnavailable
}

func TestPortfolioValuesHoldingsAndCash(t *testing.T) {
	engine, st, _ := newTestEngine(t)
	user := newTestUser(t, st, "10000.00")
	ctx := context.Background()

	if _, err := engine.Buy(ctx, user.ID, "AAPL", "10"); err != nil {
		t.Fatalf("Buy AAPL: %v", err)
	}
	if _, err := engine.Buy(ctx, user.ID, "NFLX", "2"); err != nil {
		t.Fatalf("Buy NFLX: %v", err)
	}

	summary, err := engine.Portfolio(ctx, user.ID)
	if err != nil {
		t.Fatalf("Portfolio: %v", err)
	}

	if len(summary.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(summary.Rows))
	}

	// cash = 10000 - 10*50 - 2*200 = 9100.00
	if !summary.Cash.Equal(d(t, "9100.00")) {
		t.Errorf("cash = %s, want 9100.00", summary.Cash)
	}
	// total = 9100 + 500 + 400 = 10000.00
	if !summary.Total.Equal(d(t, "10000.00")) {
		t.Errorf("total = %s, want 10000.00", summary.Total)
	}

	aapl := summary.Rows[0]
	if aapl.Symbol != "AAPL" || aapl.Shares != 10 || !aapl.Value.Equal(d(t, "500.00")) {
		t.Errorf("AAPL row = %+v, want 10 shares worth 500.00", aapl)
	}
	if aapl.Name != "Apple Inc" {
		t.Errorf("AAPL name = %q, want Apple Inc", aapl.Name)
	}
}

func TestPortfolioExcludesClosedPositions(t *testing.T) {
	engine, st, _ := newTestEngine(t)
	user := newTestUser(t, st, "10000.00")
	ctx := context.Background()

	if _, err := engine.Buy(ctx, user.ID, "AAPL", "5"); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if _, err := engine.Sell(ctx, user.ID, "AAPL", "5"); err != nil {
		t.Fatalf("Sell: %v", err)
	}

	summary, err := engine.Portfolio(ctx, user.ID)
	if err != nil {
		t.Fatalf("Portfolio: %v", err)
	}
	if len(summary.Rows) != 0 {
		t.Errorf("rows = %d, want 0 (closed position must not appear)", len(summary.Rows))
	}
	// The ledger itself keeps both legs.
	txns, _ := st.TransactionsForUser(ctx, user.ID)
	if len(txns) != 2 {
		t.Errorf("ledger rows = %d, want 2", len(txns))
	}
}

func TestPortfolioPropagatesQuoteUnavailable(t *testing.T) {
	engine, st, _ := newTestEngine(t)
	user := newTestUser(t, st, "10000.00")
	ctx := context.Background()

	if _, err := engine.Buy(ctx, user.ID, "AAPL", "1"); err != nil {
		t.Fatalf("Buy: %v", err)
	}

	// Same ledger, but the quote provider is down.
	broken := NewEngine(st, unavailableProvider{}, nil, nil)
	_, err := broken.Portfolio(ctx, user.ID)
	if !errors.Is(err, quotes.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

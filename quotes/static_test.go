package quotes

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStaticNormalizesSymbols(t *testing.T) {
	provider := NewStatic(map[string]Quote{
		"aapl": {Name: "Apple Inc", Price: decimal.RequireFromString("50.00")},
	})

	q, err := provider.Lookup(context.Background(), " AAPL ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if q.Symbol != "AAPL" || q.Name != "Apple Inc" {
		t.Errorf("quote = %+v, want normalized AAPL", q)
	}

	if _, err := provider.Lookup(context.Background(), "NOPE"); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("err = %v, want ErrInvalidSymbol", err)
	}
}

func TestStaticSetOverridesPrice(t *testing.T) {
	provider := NewStatic(map[string]Quote{
		"AAPL": {Name: "Apple Inc", Price: decimal.RequireFromString("50.00")},
	})
	provider.Set(Quote{Symbol: "aapl", Name: "Apple Inc", Price: decimal.RequireFromString("60.00")})

	q, err := provider.Lookup(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !q.Price.Equal(decimal.RequireFromString("60.00")) {
		t.Errorf("price = %s, want 60.00", q.Price)
	}
}

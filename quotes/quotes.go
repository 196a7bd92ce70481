package quotes

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Quote is a price/name pair for a symbol at a point in time.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

var (
	// ErrInvalidSymbol means the provider answered but the symbol does not exist.
	ErrInvalidSymbol = errors.New("unknown symbol")
	// ErrUnavailable means the provider could not be reached or parsed.
	ErrUnavailable = errors.New("quote service unavailable")
)

type Provider interface {
	Lookup(ctx context.Context, symbol string) (Quote, error)
}

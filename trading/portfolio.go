package trading

import (
	"context"

	"github.com/shopspring/decimal"
)

// PortfolioRow is one open position valued at the live price.
type PortfolioRow struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Value  decimal.Decimal `json:"value"`
}

type PortfolioSummary struct {
	Rows  []PortfolioRow  `json:"rows"`
	Cash  decimal.Decimal `json:"cash"`
	Total decimal.Decimal `json:"total"`
}

// Portfolio aggregates the user's ledger into open positions, prices each at
// the live quote, and totals them with the cash balance. Closed positions
// (net zero shares) never appear. A quote failure for any held symbol
// propagates rather than silently zeroing the row.
func (e *Engine) Portfolio(ctx context.Context, userID uint) (PortfolioSummary, error) {
	cash, err := e.store.Cash(ctx, userID)
	if err != nil {
		return PortfolioSummary{}, err
	}

	holdings, err := e.store.HoldingsForUser(ctx, userID)
	if err != nil {
		return PortfolioSummary{}, err
	}

	summary := PortfolioSummary{
		Rows:  make([]PortfolioRow, 0, len(holdings)),
		Cash:  cash,
		Total: cash,
	}

	for _, h := range holdings {
		q, err := e.quotes.Lookup(ctx, h.Symbol)
		if err != nil {
			return PortfolioSummary{}, err
		}
		value := q.Price.Mul(decimal.NewFromInt(h.Shares))
		summary.Rows = append(summary.Rows, PortfolioRow{
			Symbol: h.Symbol,
			Name:   q.Name,
			Shares: h.Shares,
			Price:  q.Price,
			Value:  value,
		})
		summary.Total = summary.Total.Add(value)
	}

	return summary, nil
}

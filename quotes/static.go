package quotes

import (
	"context"
	"strings"
	"sync"
)

// Static serves quotes from a fixed in-memory table. Used for local
// development without an API key and throughout the tests.
type Static struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

func NewStatic(quotes map[string]Quote) *Static {
	table := make(map[string]Quote, len(quotes))
	for sym, q := range quotes {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		q.Symbol = sym
		table[sym] = q
	}
	return &Static{quotes: table}
}

func (s *Static) Set(q Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
	s.quotes[q.Symbol] = q
}

func (s *Static) Lookup(ctx context.Context, symbol string) (Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return Quote{}, ErrInvalidSymbol
	}
	return q, nil
}

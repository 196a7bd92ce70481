package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AlphaVantageResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

// AlphaVantage fetches live quotes from the Alpha Vantage GLOBAL_QUOTE endpoint.
type AlphaVantage struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewAlphaVantage(apiKey string) *AlphaVantage {
	return &AlphaVantage{
		APIKey:  apiKey,
		BaseURL: "https://www.alphavantage.co/query",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *AlphaVantage) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return Quote{}, ErrInvalidSymbol
	}

	u := fmt.Sprintf("%s?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		a.BaseURL, url.QueryEscape(symbol), url.QueryEscape(a.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result AlphaVantageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Alpha Vantage returns an empty quote block for symbols it does not know.
	if result.GlobalQuote.Price == "" {
		return Quote{}, ErrInvalidSymbol
	}

	price, err := decimal.NewFromString(result.GlobalQuote.Price)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: bad price %q", ErrUnavailable, result.GlobalQuote.Price)
	}

	return Quote{Symbol: symbol, Name: symbol, Price: price}, nil
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TradeInput accepts shares as a JSON number or string; malformed values are
// reported as an invalid quantity, never silently defaulted.
type TradeInput struct {
	Symbol string          `json:"symbol"`
	Shares json.RawMessage `json:"shares"`
}

// rawShares normalizes the loosely typed shares field to a string for the
// engine to validate.
func (in TradeInput) rawShares() string {
	raw := string(in.Shares)
	if s, err := strconv.Unquote(raw); err == nil {
		return s
	}
	return raw
}

// Portfolio returns the user's open positions valued at live prices, the
// cash balance, and the grand total.
func (h *Handler) Portfolio(c *gin.Context) {
	summary, err := h.Engine.Portfolio(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// BuyForm returns what a buy form needs: the available cash balance.
func (h *Handler) BuyForm(c *gin.Context) {
	cash, err := h.Store.Cash(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cash": cash})
}

func (h *Handler) Buy(c *gin.Context) {
	var input TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	txn, err := h.Engine.Buy(c.Request.Context(), userID(c), input.Symbol, input.rawShares())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// SellForm returns what a sell form needs: the user's open holdings.
func (h *Handler) SellForm(c *gin.Context) {
	holdings, err := h.Store.HoldingsForUser(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

func (h *Handler) Sell(c *gin.Context) {
	var input TradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	txn, err := h.Engine.Sell(c.Request.Context(), userID(c), input.Symbol, input.rawShares())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// History lists the user's full transaction ledger, newest first.
func (h *Handler) History(c *gin.Context) {
	txns, err := h.Store.TransactionsForUser(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	// The store returns chronological order; present newest first.
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuoteInput struct {
	Symbol string `json:"symbol"`
}

// Quote is a price lookup passthrough. The symbol comes from the query
// string on GET or the body on POST.
func (h *Handler) Quote(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		var input QuoteInput
		if err := c.ShouldBindJSON(&input); err == nil {
			symbol = input.Symbol
		}
	}

	q, err := h.Quotes.Lookup(c.Request.Context(), symbol)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, q)
}

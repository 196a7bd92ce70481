package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paper-trader/quotes"
	"paper-trader/store"
	"paper-trader/trading"
)

// Handler carries the dependencies for every route. No package globals; the
// authenticated user always arrives via the request context.
type Handler struct {
	Store        store.Store
	Engine       *trading.Engine
	Quotes       quotes.Provider
	Rdb          *redis.Client
	JWTSecret    string
	StartingCash decimal.Decimal
	Logger       *zap.Logger
}

func New(st store.Store, engine *trading.Engine, provider quotes.Provider, rdb *redis.Client, jwtSecret string, startingCash decimal.Decimal, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Store:        st,
		Engine:       engine,
		Quotes:       provider,
		Rdb:          rdb,
		JWTSecret:    jwtSecret,
		StartingCash: startingCash,
		Logger:       logger,
	}
}

func userID(c *gin.Context) uint {
	return c.MustGet("user_id").(uint)
}

// fail maps error kinds to HTTP statuses. User input errors keep their
// message; storage errors stay generic.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trading.ErrInvalidQuantity),
		errors.Is(err, quotes.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, trading.ErrInsufficientFunds),
		errors.Is(err, trading.ErrInsufficientShares):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, quotes.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "quote service unavailable"})
	case errors.Is(err, store.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

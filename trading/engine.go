package trading

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paper-trader/models"
	"paper-trader/quotes"
	"paper-trader/store"
)

var (
	ErrInvalidQuantity    = errors.New("share quantity must be a positive whole number")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
)

// Publisher receives every committed trade. Implemented by events.Publisher;
// may be nil when no broker is configured.
type Publisher interface {
	PublishTrade(ctx context.Context, txn models.Transaction) error
}

// Engine validates and executes buy/sell orders against the ledger and the
// user's cash balance.
type Engine struct {
	store  store.Store
	quotes quotes.Provider
	events Publisher
	logger *zap.Logger

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewEngine(st store.Store, provider quotes.Provider, events Publisher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:  st,
		quotes: provider,
		events: events,
		logger: logger,
		locks:  make(map[uint]*sync.Mutex),
	}
}

// userLock serializes check-then-commit per user so that two concurrent
// orders cannot both pass the cash or holding check on a stale read.
func (e *Engine) userLock(userID uint) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.locks[userID]; !ok {
		e.locks[userID] = &sync.Mutex{}
	}
	return e.locks[userID]
}

// parseShares rejects missing, non-integer, and non-positive quantities
// before any money moves. Quantities arrive loosely typed from the request.
func parseShares(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidQuantity
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}

// Buy executes a buy order at the current quoted price. The cash debit and
// the ledger append commit atomically.
func (e *Engine) Buy(ctx context.Context, userID uint, symbol, shares string) (models.Transaction, error) {
	n, err := parseShares(shares)
	if err != nil {
		return models.Transaction{}, err
	}

	q, err := e.quotes.Lookup(ctx, symbol)
	if err != nil {
		return models.Transaction{}, err
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cash, err := e.store.Cash(ctx, userID)
	if err != nil {
		return models.Transaction{}, err
	}

	total := q.Price.Mul(decimal.NewFromInt(n))
	if cash.LessThan(total) {
		return models.Transaction{}, ErrInsufficientFunds
	}

	txn := models.Transaction{
		Ref:       uuid.NewString(),
		UserID:    userID,
		Symbol:    q.Symbol,
		ShareName: q.Name,
		Type:      models.TypeBuy,
		Shares:    n,
		Price:     q.Price,
		Total:     total,
	}

	committed, err := e.store.ExecuteTrade(ctx, userID, cash.Sub(total), txn)
	if err != nil {
		return models.Transaction{}, err
	}

	e.publish(ctx, committed)
	return committed, nil
}

// Sell executes a sell order against the user's current aggregated holding.
// The holding check and the commit run under the per-user lock.
func (e *Engine) Sell(ctx context.Context, userID uint, symbol, shares string) (models.Transaction, error) {
	n, err := parseShares(shares)
	if err != nil {
		return models.Transaction{}, err
	}

	q, err := e.quotes.Lookup(ctx, symbol)
	if err != nil {
		return models.Transaction{}, err
	}

	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	held, err := e.store.HoldingForSymbol(ctx, userID, q.Symbol)
	if err != nil {
		return models.Transaction{}, err
	}
	if n > held {
		return models.Transaction{}, ErrInsufficientShares
	}

	cash, err := e.store.Cash(ctx, userID)
	if err != nil {
		return models.Transaction{}, err
	}

	proceeds := q.Price.Mul(decimal.NewFromInt(n))
	txn := models.Transaction{
		Ref:       uuid.NewString(),
		UserID:    userID,
		Symbol:    q.Symbol,
		ShareName: q.Name,
		Type:      models.TypeSell,
		Shares:    -n,
		Price:     q.Price,
		Total:     proceeds.Neg(),
	}

	committed, err := e.store.ExecuteTrade(ctx, userID, cash.Add(proceeds), txn)
	if err != nil {
		return models.Transaction{}, err
	}

	e.publish(ctx, committed)
	return committed, nil
}

func (e *Engine) publish(ctx context.Context, txn models.Transaction) {
	if e.events == nil {
		return
	}
	if err := e.events.PublishTrade(ctx, txn); err != nil {
		// The trade is already committed; an event failure must not undo it.
		e.logger.Warn("publish trade event",
			zap.String("ref", txn.Ref),
			zap.Error(err),
		)
	}
}

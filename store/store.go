package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"paper-trader/models"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	// ErrStorage wraps persistence failures so handlers can keep them
	// distinct from user input errors.
	ErrStorage = errors.New("storage error")
)

// Store is the persistence contract for users and the trade ledger. The
// ledger is append-only; holdings are always derived from it at read time.
type Store interface {
	CreateUser(ctx context.Context, username, hash string, cash decimal.Decimal) (models.User, error)
	UserByUsername(ctx context.Context, username string) (models.User, error)
	UserByID(ctx context.Context, id uint) (models.User, error)
	Cash(ctx context.Context, userID uint) (decimal.Decimal, error)

	// ExecuteTrade commits the cash mutation and the ledger append in a
	// single database transaction. No partial state survives a failure.
	ExecuteTrade(ctx context.Context, userID uint, newCash decimal.Decimal, txn models.Transaction) (models.Transaction, error)

	// TransactionsForUser returns the ledger in chronological order.
	TransactionsForUser(ctx context.Context, userID uint) ([]models.Transaction, error)

	// HoldingsForUser aggregates the ledger per symbol. Symbols with a net
	// quantity of zero (closed positions) are excluded.
	HoldingsForUser(ctx context.Context, userID uint) ([]models.Holding, error)
	HoldingForSymbol(ctx context.Context, userID uint, symbol string) (int64, error)
}

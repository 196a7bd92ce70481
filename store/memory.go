package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"paper-trader/models"
)

// Memory is an in-memory implementation of Store, safe for concurrent use.
// Backs the tests and local development without PostgreSQL.
type Memory struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	txns   []models.Transaction
	nextID uint
}

func NewMemory() *Memory {
	return &Memory{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (m *Memory) CreateUser(ctx context.Context, username, hash string, cash decimal.Decimal) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return models.User{}, ErrDuplicateUsername
		}
	}

	user := models.User{
		Username: username,
		Hash:     hash,
		Cash:     cash,
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	m.users[user.ID] = &user
	return user, nil
}

func (m *Memory) UserByUsername(ctx context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return *u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (m *Memory) UserByID(ctx context.Context, id uint) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

func (m *Memory) Cash(ctx context.Context, userID uint) (decimal.Decimal, error) {
	user, err := m.UserByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Cash, nil
}

func (m *Memory) ExecuteTrade(ctx context.Context, userID uint, newCash decimal.Decimal, txn models.Transaction) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return models.Transaction{}, ErrUserNotFound
	}

	txn.ID = m.nextID
	txn.CreatedAt = time.Now()
	m.nextID++

	// Both mutations happen under one lock, mirroring the single database
	// transaction of the Postgres implementation.
	u.Cash = newCash
	m.txns = append(m.txns, txn)
	return txn, nil
}

func (m *Memory) TransactionsForUser(ctx context.Context, userID uint) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Transaction
	for _, t := range m.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) HoldingsForUser(ctx context.Context, userID uint) ([]models.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	totals := make(map[string]*models.Holding)
	for _, t := range m.txns {
		if t.UserID != userID {
			continue
		}
		h, ok := totals[t.Symbol]
		if !ok {
			h = &models.Holding{Symbol: t.Symbol, ShareName: t.ShareName}
			totals[t.Symbol] = h
		}
		h.Shares += t.Shares
	}

	var out []models.Holding
	for _, h := range totals {
		if h.Shares != 0 {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (m *Memory) HoldingForSymbol(ctx context.Context, userID uint, symbol string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var shares int64
	for _, t := range m.txns {
		if t.UserID == userID && t.Symbol == symbol {
			shares += t.Shares
		}
	}
	return shares, nil
}

var _ Store = (*Memory)(nil)

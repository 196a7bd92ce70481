package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypeBuy  = "buy"
	TypeSell = "sell"
)

type User struct {
	gorm.Model
	Username string          `gorm:"uniqueIndex" json:"username"`
	Hash     string          `json:"-"`
	Cash     decimal.Decimal `gorm:"type:numeric(20,2)" json:"cash"`
}

// Transaction is one row of the append-only trade ledger. Shares is signed:
// positive for a buy, negative for a sell. Price and Total are captured at
// execution time; rows are never updated or deleted.
type Transaction struct {
	gorm.Model
	Ref       string          `gorm:"uniqueIndex" json:"ref"`
	UserID    uint            `gorm:"index" json:"user_id"`
	Symbol    string          `gorm:"index" json:"symbol"`
	ShareName string          `json:"share_name"`
	Type      string          `json:"type"` // buy/sell
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `gorm:"type:numeric(20,2)" json:"price"`
	Total     decimal.Decimal `gorm:"type:numeric(20,2)" json:"total"`
}

// Holding is derived from the ledger, never stored.
type Holding struct {
	Symbol    string `json:"symbol"`
	ShareName string `json:"share_name"`
	Shares    int64  `json:"shares"`
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"paper-trader/models"
)

// Postgres implements Store on top of gorm.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) CreateUser(ctx context.Context, username, hash string, cash decimal.Decimal) (models.User, error) {
	var existing models.User
	err := p.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return models.User{}, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	user := models.User{
		Username: username,
		Hash:     hash,
		Cash:     cash,
	}
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

func (p *Postgres) UserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := p.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

func (p *Postgres) UserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := p.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return user, nil
}

func (p *Postgres) Cash(ctx context.Context, userID uint) (decimal.Decimal, error) {
	user, err := p.UserByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.Cash, nil
}

func (p *Postgres) ExecuteTrade(ctx context.Context, userID uint, newCash decimal.Decimal, txn models.Transaction) (models.Transaction, error) {
	tx := p.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return models.Transaction{}, fmt.Errorf("%w: %v", ErrStorage, tx.Error)
	}

	res := tx.Model(&models.User{}).Where("id = ?", userID).Update("cash", newCash)
	if res.Error != nil {
		tx.Rollback()
		return models.Transaction{}, fmt.Errorf("%w: %v", ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return models.Transaction{}, ErrUserNotFound
	}

	if err := tx.Create(&txn).Error; err != nil {
		tx.Rollback()
		return models.Transaction{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if err := tx.Commit().Error; err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return txn, nil
}

func (p *Postgres) TransactionsForUser(ctx context.Context, userID uint) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return txns, nil
}

func (p *Postgres) HoldingsForUser(ctx context.Context, userID uint) ([]models.Holding, error) {
	var holdings []models.Holding
	err := p.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("symbol, MAX(share_name) AS share_name, SUM(shares) AS shares").
		Where("user_id = ?", userID).
		Group("symbol").
		Having("SUM(shares) <> 0").
		Order("symbol").
		Scan(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return holdings, nil
}

func (p *Postgres) HoldingForSymbol(ctx context.Context, userID uint, symbol string) (int64, error) {
	var shares int64
	err := p.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(shares), 0)").
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Scan(&shares).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return shares, nil
}

var _ Store = (*Postgres)(nil)

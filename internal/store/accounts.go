package store

import (
	"context"
	"errors"

	"github.com/AndreyZherdetskiy/balance-hub/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// WithTx returns a copy of the store bound to the given transaction.
func (s *AccountStore) WithTx(tx *gorm.DB) *AccountStore {
	return &AccountStore{db: tx}
}

// FindOwned returns the account only if it exists AND belongs to the given
// user. A webhook claiming someone else's account id must not match here.
func (s *AccountStore) FindOwned(ctx context.Context, accountID, userID uint64) (*models.Account, error) {
	var acc models.Account
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *AccountStore) CreateForUser(ctx context.Context, userID uint64) (*models.Account, error) {
	acc := models.Account{UserID: userID, Balance: decimal.New(0, -2)}
	if err := s.db.WithContext(ctx).Create(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *AccountStore) ListOwned(ctx context.Context, userID uint64, limit, offset int) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Credit adds amount to the account balance and persists the new value.
// Must run inside the same transaction as the payment insert.
func (s *AccountStore) Credit(ctx context.Context, account *models.Account, amount decimal.Decimal) error {
	account.Balance = account.Balance.Add(amount).Round(2)
	return s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", account.ID).
		Update("balance", account.Balance).Error
}

package store

import (
	"context"
	"errors"

	"github.com/AndreyZherdetskiy/balance-hub/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

func (s *PaymentStore) WithTx(tx *gorm.DB) *PaymentStore {
	return &PaymentStore{db: tx}
}

func (s *PaymentStore) FindByTransaction(ctx context.Context, transactionID string) (*models.Payment, error) {
	var p models.Payment
	err := s.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts an immutable payment record. The unique index on
// transaction_id makes this the authoritative duplicate check.
func (s *PaymentStore) Create(ctx context.Context, transactionID string, userID, accountID uint64, amount decimal.Decimal) (*models.Payment, error) {
	p := models.Payment{
		TransactionID: transactionID,
		UserID:        userID,
		AccountID:     accountID,
		Amount:        amount.Round(2),
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListForUser returns payments in insertion order (id ASC).
func (s *PaymentStore) ListForUser(ctx context.Context, userID uint64, limit, offset int) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

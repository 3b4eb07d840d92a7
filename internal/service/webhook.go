package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AndreyZherdetskiy/balance-hub/internal/models"
	"github.com/AndreyZherdetskiy/balance-hub/internal/store"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const transactionIDMaxLength = 64

// TopupInput is a webhook payload after signature verification. AccountID 0
// means the sender did not name an account.
type TopupInput struct {
	TransactionID string
	AccountID     uint64
	UserID        uint64
	Amount        decimal.Decimal
}

// Validate checks the business rules the schema layer cannot express.
func (in TopupInput) Validate() error {
	if !in.Amount.IsPositive() {
		return ErrInvalidPaymentData
	}
	if in.UserID < 1 {
		return ErrInvalidPaymentData
	}
	id := strings.TrimSpace(in.TransactionID)
	if id == "" || len(in.TransactionID) > transactionIDMaxLength {
		return ErrInvalidPaymentData
	}
	return nil
}

// WebhookService processes top-up notifications from the external payment
// system.
type WebhookService struct {
	db       *gorm.DB
	accounts *store.AccountStore
	payments *store.PaymentStore
	users    *store.UserStore
}

func NewWebhookService(db *gorm.DB, accounts *store.AccountStore, payments *store.PaymentStore, users *store.UserStore) *WebhookService {
	return &WebhookService{db: db, accounts: accounts, payments: payments, users: users}
}

// ProcessTopup applies a verified top-up exactly once per transaction id.
//
// The early FindByTransaction lookup only short-circuits the common duplicate
// cheaply; the unique index on payments.transaction_id is what closes the
// race. A concurrent duplicate that slips past the pre-check fails on commit
// with gorm.ErrDuplicatedKey, the whole transaction rolls back, and the
// caller sees the same ErrDuplicateTransaction either way.
func (s *WebhookService) ProcessTopup(ctx context.Context, in TopupInput) (*models.Payment, error) {
	amount := in.Amount.Round(2)

	var payment *models.Payment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		payments := s.payments.WithTx(tx)
		users := s.users.WithTx(tx)

		existing, err := payments.FindByTransaction(ctx, in.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateTransaction
		}

		// Resolve the target account. An id of 0 or an account owned by a
		// different user both fall through to creating a fresh account for
		// the claimed user, so a webhook can never credit someone else.
		var account *models.Account
		if in.AccountID != 0 {
			account, err = accounts.FindOwned(ctx, in.AccountID, in.UserID)
			if err != nil {
				return err
			}
		}
		if account == nil {
			user, err := users.GetByID(ctx, in.UserID)
			if err != nil {
				return err
			}
			if user == nil {
				return ErrUserNotFound
			}
			account, err = accounts.CreateForUser(ctx, in.UserID)
			if err != nil {
				return err
			}
		}

		payment, err = payments.Create(ctx, in.TransactionID, in.UserID, account.ID, amount)
		if err != nil {
			return err
		}
		return accounts.Credit(ctx, account, amount)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTransaction
		}
		return nil, err
	}
	return payment, nil
}

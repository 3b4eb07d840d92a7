package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an application user, regular or admin. Email uniqueness is enforced
// by the database index so concurrent registrations cannot produce duplicates.
type User struct {
	ID             uint64 `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex;size:254;not null"`
	FullName       string `gorm:"size:100;not null"`
	HashedPassword string `gorm:"size:60;not null"`
	IsAdmin        bool   `gorm:"not null;default:false"`
	CreatedAt      time.Time

	Accounts []Account `gorm:"constraint:OnDelete:CASCADE"`
	Payments []Payment `gorm:"constraint:OnDelete:CASCADE"`
}

// Account holds a single user's balance, kept at two decimal places.
// Top-ups are the only mutation, so the balance never goes negative.
type Account struct {
	ID        uint64          `gorm:"primaryKey"`
	UserID    uint64          `gorm:"index;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time
}

// Payment records one external top-up. TransactionID is the idempotency key:
// the unique index guarantees at most one payment per external transaction,
// even when duplicate deliveries race past the advisory pre-check.
type Payment struct {
	ID            uint64          `gorm:"primaryKey"`
	TransactionID string          `gorm:"uniqueIndex;size:64;not null"`
	UserID        uint64          `gorm:"index;not null"`
	AccountID     uint64          `gorm:"index;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt     time.Time
}

package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/AndreyZherdetskiy/balance-hub/internal/models"
	"github.com/AndreyZherdetskiy/balance-hub/internal/service"
	"github.com/AndreyZherdetskiy/balance-hub/internal/store"
	"github.com/AndreyZherdetskiy/balance-hub/internal/testutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newWebhookService(db *gorm.DB) *service.WebhookService {
	return service.NewWebhookService(
		db,
		store.NewAccountStore(db),
		store.NewPaymentStore(db),
		store.NewUserStore(db),
	)
}

func accountBalance(t *testing.T, db *gorm.DB, id uint64) decimal.Decimal {
	t.Helper()
	var acc models.Account
	if err := db.First(&acc, id).Error; err != nil {
		t.Fatalf("load account %d: %v", id, err)
	}
	return acc.Balance
}

func TestProcessTopupCreatesAccountWhenNoneGiven(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@test.com", "password1", false)
	svc := newWebhookService(db)

	payment, err := svc.ProcessTopup(context.Background(), service.TopupInput{
		TransactionID: "tx-2",
		AccountID:     0,
		UserID:        user.ID,
		Amount:        decimal.RequireFromString("75.00"),
	})
	if err != nil {
		t.Fatalf("ProcessTopup: %v", err)
	}
	if payment.UserID != user.ID {
		t.Errorf("payment user = %d, want %d", payment.UserID, user.ID)
	}

	bal := accountBalance(t, db, payment.AccountID)
	if bal.StringFixed(2) != "75.00" {
		t.Errorf("new account balance = %s, want 75.00", bal.StringFixed(2))
	}
}

func TestProcessTopupCreditsExistingAccount(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@test.com", "password1", false)
	accounts := store.NewAccountStore(db)
	acc, err := accounts.CreateForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if err := accounts.Credit(context.Background(), acc, decimal.RequireFromString("100.00")); err != nil {
		t.Fatalf("prefund account: %v", err)
	}

	svc := newWebhookService(db)
	payment, err := svc.ProcessTopup(context.Background(), service.TopupInput{
		TransactionID: "tx-1",
		AccountID:     acc.ID,
		UserID:        user.ID,
		Amount:        decimal.RequireFromString("50.25"),
	})
	if err != nil {
		t.Fatalf("ProcessTopup: %v", err)
	}
	if payment.AccountID != acc.ID {
		t.Errorf("payment account = %d, want %d", payment.AccountID, acc.ID)
	}

	bal := accountBalance(t, db, acc.ID)
	if bal.StringFixed(2) != "150.25" {
		t.Errorf("balance = %s, want 150.25", bal.StringFixed(2))
	}
}

func TestProcessTopupDuplicateTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@test.com", "password1", false)
	svc := newWebhookService(db)

	first, err := svc.ProcessTopup(context.Background(), service.TopupInput{
		TransactionID: "tx-1",
		UserID:        user.ID,
		Amount:        decimal.RequireFromString("50.25"),
	})
	if err != nil {
		t.Fatalf("first ProcessTopup: %v", err)
	}

	// Replay with a different amount and account must still conflict.
	_, err = svc.ProcessTopup(context.Background(), service.TopupInput{
		TransactionID: "tx-1",
		AccountID:     first.AccountID,
		UserID:        user.ID,
		Amount:        decimal.RequireFromString("999.99"),
	})
	if !errors.Is(err, service.ErrDuplicateTransaction) {
		t.Fatalf("replay error = %v, want ErrDuplicateTransaction", err)
	}

	bal := accountBalance(t, db, first.AccountID)
	if bal.StringFixed(2) != "50.25" {
		t.Errorf("balance after replay = %s, want 50.25", bal.StringFixed(2))
	}
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 1 {
		t.Errorf("payment count = %d, want 1", count)
	}
}

func TestProcessTopupOwnershipIsolation(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner@test.com", "password1", false)
	claimer := testutil.CreateUser(t, db, "claimer@test.com", "password1", false)

	accounts := store.NewAccountStore(db)
	ownerAcc, err := accounts.CreateForUser(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	svc := newWebhookService(db)
	payment, err := svc.ProcessTopup(context.Background(), service.TopupInput{
		TransactionID: "tx-1",
		AccountID:     ownerAcc.ID, // belongs to someone else
		UserID:        claimer.ID,
		Amount:        decimal.RequireFromString("10.00"),
	})
	if err != nil {
		t.Fatalf("ProcessTopup: %v", err)
	}

	if payment.AccountID == ownerAcc.ID {
		t.Fatal("credited an account owned by a different user")
	}
	if bal := accountBalance(t, db, ownerAcc.ID); !bal.IsZero() {
		t.Errorf("owner balance = %s, want 0.00", bal.StringFixed(2))
	}
	if bal := accountBalance(t, db, payment.AccountID); bal.StringFixed(2) != "10.00" {
		t.Errorf("claimer balance = %s, want 10.00", bal.StringFixed(2))
	}
}

func TestProcessTopupUnknownUser(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newWebhookService(db)

	_, err := svc.ProcessTopup(context.Background(), service.TopupInput{
		TransactionID: "tx-1",
		UserID:        42,
		Amount:        decimal.RequireFromString("10.00"),
	})
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("payment count = %d, want 0", count)
	}
}

func TestProcessTopupBalanceExactness(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@test.com", "password1", false)
	accounts := store.NewAccountStore(db)
	acc, err := accounts.CreateForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	svc := newWebhookService(db)
	amounts := []string{"0.10", "0.20", "0.30", "19.99", "100.01", "3.33"}
	expected := decimal.Zero
	for i, a := range amounts {
		amt := decimal.RequireFromString(a)
		expected = expected.Add(amt)
		_, err := svc.ProcessTopup(context.Background(), service.TopupInput{
			TransactionID: fmt.Sprintf("tx-%d", i),
			AccountID:     acc.ID,
			UserID:        user.ID,
			Amount:        amt,
		})
		if err != nil {
			t.Fatalf("top-up %d: %v", i, err)
		}
	}

	bal := accountBalance(t, db, acc.ID)
	if !bal.Equal(expected) {
		t.Errorf("balance = %s, want %s", bal.String(), expected.String())
	}
}

func TestProcessTopupConcurrentDuplicates(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@test.com", "password1", false)
	accounts := store.NewAccountStore(db)
	acc, err := accounts.CreateForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	svc := newWebhookService(db)
	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ProcessTopup(context.Background(), service.TopupInput{
				TransactionID: "tx-race",
				AccountID:     acc.ID,
				UserID:        user.ID,
				Amount:        decimal.RequireFromString("25.00"),
			})
		}(i)
	}
	wg.Wait()

	var succeeded, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrDuplicateTransaction):
			duplicates++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("succeeded = %d, want exactly 1", succeeded)
	}
	if duplicates != n-1 {
		t.Errorf("duplicates = %d, want %d", duplicates, n-1)
	}

	var count int64
	db.Model(&models.Payment{}).Where("transaction_id = ?", "tx-race").Count(&count)
	if count != 1 {
		t.Errorf("payment count = %d, want 1", count)
	}
	if bal := accountBalance(t, db, acc.ID); bal.StringFixed(2) != "25.00" {
		t.Errorf("balance = %s, want 25.00 (credited once)", bal.StringFixed(2))
	}
}

func TestTopupInputValidate(t *testing.T) {
	valid := service.TopupInput{
		TransactionID: "tx-1",
		UserID:        1,
		Amount:        decimal.RequireFromString("1.00"),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*service.TopupInput)
	}{
		{"zero amount", func(in *service.TopupInput) { in.Amount = decimal.Zero }},
		{"negative amount", func(in *service.TopupInput) { in.Amount = decimal.RequireFromString("-5.00") }},
		{"zero user id", func(in *service.TopupInput) { in.UserID = 0 }},
		{"empty transaction id", func(in *service.TopupInput) { in.TransactionID = "" }},
		{"blank transaction id", func(in *service.TopupInput) { in.TransactionID = "   " }},
		{"overlong transaction id", func(in *service.TopupInput) {
			long := make([]byte, 65)
			for i := range long {
				long[i] = 'a'
			}
			in.TransactionID = string(long)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if err := in.Validate(); !errors.Is(err, service.ErrInvalidPaymentData) {
				t.Errorf("error = %v, want ErrInvalidPaymentData", err)
			}
		})
	}
}

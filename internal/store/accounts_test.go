package store_test

import (
	"context"
	"testing"

	"github.com/AndreyZherdetskiy/balance-hub/internal/store"
	"github.com/AndreyZherdetskiy/balance-hub/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestAccountStoreFindOwned(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner@test.com", "password1", false)
	other := testutil.CreateUser(t, db, "other@test.com", "password1", false)

	accounts := store.NewAccountStore(db)
	acc, err := accounts.CreateForUser(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("CreateForUser: %v", err)
	}
	if !acc.Balance.IsZero() {
		t.Errorf("new account balance = %s, want 0.00", acc.Balance.String())
	}

	found, err := accounts.FindOwned(context.Background(), acc.ID, owner.ID)
	if err != nil {
		t.Fatalf("FindOwned: %v", err)
	}
	if found == nil || found.ID != acc.ID {
		t.Errorf("FindOwned by owner = %+v, want account %d", found, acc.ID)
	}

	// Existing account, wrong owner: must not match.
	found, err = accounts.FindOwned(context.Background(), acc.ID, other.ID)
	if err != nil {
		t.Fatalf("FindOwned: %v", err)
	}
	if found != nil {
		t.Errorf("FindOwned matched account %d for non-owner", acc.ID)
	}

	found, err = accounts.FindOwned(context.Background(), 9999, owner.ID)
	if err != nil {
		t.Fatalf("FindOwned: %v", err)
	}
	if found != nil {
		t.Error("FindOwned matched a missing account")
	}
}

func TestAccountStoreCredit(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@test.com", "password1", false)
	accounts := store.NewAccountStore(db)
	acc, err := accounts.CreateForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("CreateForUser: %v", err)
	}

	if err := accounts.Credit(context.Background(), acc, decimal.RequireFromString("10.555")); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	// Quantized to two places at the write boundary.
	if acc.Balance.StringFixed(2) != "10.56" {
		t.Errorf("balance = %s, want 10.56", acc.Balance.StringFixed(2))
	}

	reloaded, err := accounts.FindOwned(context.Background(), acc.ID, user.ID)
	if err != nil {
		t.Fatalf("FindOwned: %v", err)
	}
	if reloaded.Balance.StringFixed(2) != "10.56" {
		t.Errorf("persisted balance = %s, want 10.56", reloaded.Balance.StringFixed(2))
	}
}

func TestAccountStoreListOwnedPagination(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "user@test.com", "password1", false)
	accounts := store.NewAccountStore(db)

	var ids []uint64
	for i := 0; i < 5; i++ {
		acc, err := accounts.CreateForUser(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("CreateForUser: %v", err)
		}
		ids = append(ids, acc.ID)
	}

	page, err := accounts.ListOwned(context.Background(), user.ID, 2, 1)
	if err != nil {
		t.Fatalf("ListOwned: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	if page[0].ID != ids[1] || page[1].ID != ids[2] {
		t.Errorf("page ids = %d,%d; want %d,%d", page[0].ID, page[1].ID, ids[1], ids[2])
	}
}

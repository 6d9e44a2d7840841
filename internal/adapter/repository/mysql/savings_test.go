package mysql

import (
	"context"
	"testing"
	"time"

	savingsDomain "microfin-backend/internal/domain/savings"
)

func TestSavingsListByUserID_StoredOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewSavingsRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []*savingsDomain.Entry{
		{UserID: 2, Amount: 5_000, Type: savingsDomain.TypeDeposit, Date: now.AddDate(0, 0, -2)},
		{UserID: 2, Amount: 2_000, Type: savingsDomain.TypeWithdrawal, Date: now.AddDate(0, 0, -1)},
		{UserID: 7, Amount: 900, Type: savingsDomain.TypeDeposit, Date: now},
	}
	for _, e := range seed {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	entries, err := repo.ListByUserID(ctx, 2)
	if err != nil {
		t.Fatalf("ListByUserID: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("rows = %d, want 2", len(entries))
	}
	if entries[0].ID > entries[1].ID {
		t.Fatal("entries not in stored (id ascending) order")
	}
	if got := savingsDomain.Balance(entries); got != 3_000 {
		t.Fatalf("balance over stored entries = %d, want 3000", got)
	}
}

func TestSavingsSaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewSavingsRepository(db)
	ctx := context.Background()

	e := &savingsDomain.Entry{UserID: 2, Amount: 1_000, Type: savingsDomain.TypeDeposit, Date: time.Now().UTC()}
	if err := repo.Create(ctx, e); err != nil {
		t.Fatalf("Create: %v", err)
	}

	e.Amount = 1_500
	e.Description = "corrected"
	if err := repo.Save(ctx, e); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Amount != 1_500 || got.Description != "corrected" {
		t.Fatalf("update not persisted: %+v", got)
	}
}
